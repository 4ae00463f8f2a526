package curve

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// DefaultCacheSize is the number of slots of a store's position cache.
const DefaultCacheSize = 64

// CacheStats reports position cache effectiveness.
type CacheStats struct {
	Size   int
	Hits   uint64
	Misses uint64
}

// HitRate returns Hits / (Hits + Misses), or 0 before the first lookup.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

type cacheEntry struct {
	when  Time
	gen   uint64
	index int
	set   bool
}

// positionCache is a direct-mapped cache from query time to the index
// resolved by Store.lastIndex. Entries are tagged with the store generation
// they were computed in; any mutation bumps the generation so every entry
// goes stale at once.
type positionCache struct {
	slots  []cacheEntry
	mask   uint64
	hits   uint64
	misses uint64
}

func newPositionCache(size int) *positionCache {
	if size <= 0 || size&(size-1) != 0 {
		violation(ErrInvalidCacheSize, "got %d", size)
	}
	return &positionCache{
		slots: make([]cacheEntry, size),
		mask:  uint64(size - 1),
	}
}

func (c *positionCache) slot(when Time) *cacheEntry {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(float64(when)))
	return &c.slots[xxhash.Sum64(buf[:])&c.mask]
}

func (c *positionCache) lookup(when Time, gen uint64) (int, bool) {
	e := c.slot(when)
	if e.set && e.gen == gen && e.when == when {
		c.hits++
		return e.index, true
	}
	c.misses++
	return 0, false
}

func (c *positionCache) store(when Time, gen uint64, index int) {
	*c.slot(when) = cacheEntry{when: when, gen: gen, index: index, set: true}
}

func (c *positionCache) stats() CacheStats {
	return CacheStats{Size: len(c.slots), Hits: c.hits, Misses: c.misses}
}
