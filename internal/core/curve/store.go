package curve

import (
	"slices"
	"sort"

	"github.com/google/uuid"

	"github.com/zeusync/curve/internal/core/observability/log"
)

type node[T any] struct {
	id uint64
	Keyframe[T]
}

// Store is the ordered keyframe sequence of a single attribute.
//
// Keyframes are kept in non-decreasing time order. A keyframe inserted at a
// time that is already present is placed after the existing ones, so the
// most recently inserted keyframe wins for queries at that time.
//
// A Store is not safe for concurrent use, queries included: lookups write
// to the position cache. See Locked for a serialized wrapper.
type Store[T any] struct {
	id     uuid.UUID
	frames []node[T]
	nextID uint64
	gen    uint64
	cache  *positionCache
	timeOf func(T) Time
	logger log.Log
}

// NewStore creates an empty store.
func NewStore[T any](opts ...Option) *Store[T] {
	o := buildOptions(opts)
	logger := o.logger
	if o.name != "" {
		logger = logger.With(log.String("curve", o.name))
	}
	return &Store[T]{
		id:     uuid.New(),
		cache:  newPositionCache(o.cacheSize),
		logger: logger,
	}
}

// NewEventStore creates a store whose records carry their own logical time.
// Event iteration scans the whole store and filters on timeOf(value)
// instead of the ordering key.
func NewEventStore[T any](timeOf func(T) Time, opts ...Option) *Store[T] {
	s := NewStore[T](opts...)
	s.timeOf = timeOf
	return s
}

// ID identifies the store. Positions carry it to detect foreign handles.
func (s *Store[T]) ID() uuid.UUID {
	return s.id
}

// Len returns the number of stored keyframes.
func (s *Store[T]) Len() int {
	return len(s.frames)
}

// Stats returns position cache counters.
func (s *Store[T]) Stats() CacheStats {
	return s.cache.stats()
}

// Insert stores a keyframe, keeping time order, and returns its position.
// Non-finite times are rejected.
func (s *Store[T]) Insert(t Time, value T) Position {
	if !t.isFinite() {
		violation(ErrInvalidTime, "insert at %v", float64(t))
	}

	n := len(s.frames)
	idx := n
	if n > 0 && s.frames[n-1].Time > t {
		idx = s.firstAfter(t, 0, n)
	}

	s.nextID++
	s.frames = slices.Insert(s.frames, idx, node[T]{
		id:       s.nextID,
		Keyframe: Keyframe[T]{Time: t, Value: value},
	})
	s.gen++

	return s.position(idx)
}

// Last returns the latest keyframe with time <= t. It reports false when t
// precedes the first keyframe or the store is empty.
func (s *Store[T]) Last(t Time) (Position, bool) {
	return s.LastHint(t, Position{})
}

// LastHint is Last with a resumption point. The search gallops outward from
// hint instead of bisecting the whole store; the result is identical to Last.
// A zero hint is ignored.
func (s *Store[T]) LastHint(t Time, hint Position) (Position, bool) {
	mustQueryTime(t)

	h := -1
	if !hint.IsZero() {
		h = s.resolve(hint)
	}

	idx := s.lastIndex(t, h)
	if idx < 0 {
		return Position{}, false
	}
	return s.position(idx), true
}

// First returns the earliest keyframe.
func (s *Store[T]) First() (Position, bool) {
	if len(s.frames) == 0 {
		return Position{}, false
	}
	return s.position(0), true
}

// Next returns the keyframe following p.
func (s *Store[T]) Next(p Position) (Position, bool) {
	i := s.resolve(p) + 1
	if i >= len(s.frames) {
		return Position{}, false
	}
	return s.position(i), true
}

// At returns the keyframe referenced by p.
func (s *Store[T]) At(p Position) Keyframe[T] {
	return s.frames[s.resolve(p)].Keyframe
}

// Erase removes exactly the keyframe referenced by p.
func (s *Store[T]) Erase(p Position) {
	i := s.resolve(p)
	s.frames = slices.Delete(s.frames, i, i+1)
	s.gen++
}

// EraseAfter removes every keyframe with time strictly greater than the time
// of p and returns how many were removed. Keyframes sharing p's time stay.
func (s *Store[T]) EraseAfter(p Position) int {
	i := s.resolve(p)
	return s.truncate(s.firstAfter(p.time, i+1, len(s.frames)), p.time)
}

// Truncate removes every keyframe with time >= t, equal times included, and
// returns how many were removed.
func (s *Store[T]) Truncate(t Time) int {
	mustQueryTime(t)
	return s.truncate(s.firstAtOrAfter(t), t)
}

func (s *Store[T]) truncate(cut int, at Time) int {
	removed := len(s.frames) - cut
	if removed == 0 {
		return 0
	}

	clear(s.frames[cut:])
	s.frames = s.frames[:cut]
	s.gen++

	if s.logger.Enabled(log.LevelDebug) {
		s.logger.Debug("keyframes erased",
			log.Float64("after", float64(at)),
			log.Int("removed", removed),
			log.Int("remaining", len(s.frames)),
		)
	}
	return removed
}

// Count returns the number of keyframes Iterate(from, to) yields: the one in
// effect at from, if any, plus every later keyframe before to.
func (s *Store[T]) Count(from, to Time) int {
	mustRange(from, to)
	lo, hi := s.sustainedWindow(from, to)
	return hi - lo
}

// Empty reports whether Count(from, to) is zero.
func (s *Store[T]) Empty(from, to Time) bool {
	return s.Count(from, to) == 0
}

// EventCount returns the number of keyframes Events(from, to) yields.
func (s *Store[T]) EventCount(from, to Time) int {
	count := 0
	for it := s.Events(from, to); it.Valid(); it.Next() {
		count++
	}
	return count
}

// Iterate walks the sustained values over [from, to). It starts at the
// keyframe in effect at from. When several keyframes share a time inside the
// range they are all yielded, although only the last of them is ever in
// effect; a run sharing the time in effect at from yields only its last one.
func (s *Store[T]) Iterate(from, to Time) *Iterator[T] {
	return newIterator(s, Sustained, from, to)
}

// Events walks the keyframes whose own time lies in [from, to).
func (s *Store[T]) Events(from, to Time) *Iterator[T] {
	return newIterator(s, Event, from, to)
}

// Export copies the sustained range [from, to).
func (s *Store[T]) Export(from, to Time) []Keyframe[T] {
	mustRange(from, to)
	lo, hi := s.sustainedWindow(from, to)
	out := make([]Keyframe[T], 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, s.frames[i].Keyframe)
	}
	return out
}

func (s *Store[T]) position(idx int) Position {
	n := &s.frames[idx]
	return Position{
		store: s.id,
		id:    n.id,
		time:  n.Time,
		index: idx,
		gen:   s.gen,
	}
}

// resolve maps p to its current index, panicking when p is foreign or erased.
func (s *Store[T]) resolve(p Position) int {
	if p.store != s.id {
		violation(ErrInvalidHandle, "%s belongs to store %s, not %s", p, p.store, s.id)
	}
	idx, ok := s.tryResolve(p)
	if !ok {
		violation(ErrInvalidHandle, "%s is no longer stored", p)
	}
	return idx
}

func (s *Store[T]) tryResolve(p Position) (int, bool) {
	if p.store != s.id || p.IsZero() {
		return -1, false
	}
	if p.gen == s.gen && p.index < len(s.frames) && s.frames[p.index].id == p.id {
		return p.index, true
	}
	for i := s.firstAtOrAfter(p.time); i < len(s.frames) && s.frames[i].Time == p.time; i++ {
		if s.frames[i].id == p.id {
			return i, true
		}
	}
	return -1, false
}

// lastIndex returns the index of the latest keyframe with time <= t, or -1.
// hint is an index to gallop from, or -1 to bisect the whole store.
func (s *Store[T]) lastIndex(t Time, hint int) int {
	if idx, ok := s.cache.lookup(t, s.gen); ok {
		return idx
	}

	var idx int
	if hint >= 0 && hint < len(s.frames) {
		idx = s.gallop(t, hint)
	} else {
		idx = s.firstAfter(t, 0, len(s.frames)) - 1
	}

	s.cache.store(t, s.gen, idx)
	return idx
}

// gallop doubles its step away from h until it brackets t, then bisects the
// bracket.
func (s *Store[T]) gallop(t Time, h int) int {
	n := len(s.frames)
	if s.frames[h].Time <= t {
		lo, hi, step := h, h+1, 1
		for hi < n && s.frames[hi].Time <= t {
			lo = hi
			step <<= 1
			hi = h + step
		}
		hi = min(hi, n)
		return s.firstAfter(t, lo+1, hi) - 1
	}

	lo, hi, step := h-1, h, 1
	for lo >= 0 && s.frames[lo].Time > t {
		hi = lo
		step <<= 1
		lo = h - step
	}
	lo = max(lo, -1)
	return s.firstAfter(t, lo+1, hi) - 1
}

// firstAfter returns the smallest index in [lo, hi) with time > t, or hi.
func (s *Store[T]) firstAfter(t Time, lo, hi int) int {
	return lo + sort.Search(hi-lo, func(i int) bool {
		return s.frames[lo+i].Time > t
	})
}

// firstAtOrAfter returns the smallest index with time >= t, or Len().
func (s *Store[T]) firstAtOrAfter(t Time) int {
	return sort.Search(len(s.frames), func(i int) bool {
		return s.frames[i].Time >= t
	})
}

// sustainedWindow returns the index range [lo, hi) of keyframes whose value
// is in effect somewhere in [from, to).
func (s *Store[T]) sustainedWindow(from, to Time) (int, int) {
	lo := max(s.lastIndex(from, -1), 0)
	hi := max(s.firstAtOrAfter(to), lo)
	return lo, hi
}

func mustQueryTime(t Time) {
	if t.isNaN() {
		violation(ErrInvalidTime, "query at NaN")
	}
}

func mustRange(from, to Time) {
	if !(from < to) {
		violation(ErrInvalidRange, "[%v, %v)", float64(from), float64(to))
	}
}
