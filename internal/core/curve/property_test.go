package curve

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// model is the brute-force reference the store is checked against.
type model struct {
	frames []Keyframe[int] // ordered by time, then insertion
}

func (m *model) insert(at Time, v int) {
	i := sort.Search(len(m.frames), func(i int) bool { return m.frames[i].Time > at })
	m.frames = append(m.frames[:i], append([]Keyframe[int]{{Time: at, Value: v}}, m.frames[i:]...)...)
}

func (m *model) last(at Time) (int, bool) {
	idx := -1
	for i, kf := range m.frames {
		if kf.Time <= at {
			idx = i
		}
	}
	return idx, idx >= 0
}

func (m *model) count(from, to Time) int {
	start, ok := m.last(from)
	if !ok {
		start = 0
	}
	n := 0
	for i := start; i < len(m.frames); i++ {
		if m.frames[i].Time < to {
			n++
		}
	}
	return n
}

func (m *model) events(from, to Time) int {
	n := 0
	for _, kf := range m.frames {
		if kf.Time >= from && kf.Time < to {
			n++
		}
	}
	return n
}

func (m *model) eraseAfter(at Time) {
	keep := m.frames[:0]
	for _, kf := range m.frames {
		if kf.Time <= at {
			keep = append(keep, kf)
		}
	}
	m.frames = keep
}

func (m *model) erase(v int) {
	for i, kf := range m.frames {
		if kf.Value == v {
			m.frames = append(m.frames[:i], m.frames[i+1:]...)
			return
		}
	}
}

type fixture struct {
	rng   *rand.Rand
	store *Store[int]
	model *model
	next  int
}

func newFixture(seed uint64, cacheSize int) *fixture {
	return &fixture{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		store: NewStore[int](WithCacheSize(cacheSize)),
		model: &model{},
	}
}

// insertRandom inserts n keyframes on a coarse grid so equal times are common.
func (f *fixture) insertRandom(n int) {
	for i := 0; i < n; i++ {
		at := Time(f.rng.IntN(40)) / 2
		f.store.Insert(at, f.next)
		f.model.insert(at, f.next)
		f.next++
	}
}

func (f *fixture) queryTime() Time {
	if f.rng.IntN(3) == 0 {
		return Time(f.rng.IntN(46)-3) / 2
	}
	return Time(f.rng.Float64()*26 - 3)
}

func (f *fixture) requireEqual(t *testing.T) {
	t.Helper()
	require.Equal(t, f.model.frames, contents(f.store))
}

func (f *fixture) randomPosition() Position {
	p, _ := f.store.First()
	for range f.rng.IntN(f.store.Len()) {
		p, _ = f.store.Next(p)
	}
	return p
}

var seeds = []uint64{1, 2, 3, 42, 1337, 90210}

func TestProperty_LastMatchesModel(t *testing.T) {
	for _, seed := range seeds {
		f := newFixture(seed, 8)
		f.insertRandom(60)
		f.requireEqual(t)

		for range 500 {
			at := f.queryTime()
			want, ok := f.model.last(at)
			p, got := f.store.Last(at)
			require.Equal(t, ok, got, "seed=%d at=%v", seed, at)
			if ok {
				require.Equal(t, f.model.frames[want], f.store.At(p), "seed=%d at=%v", seed, at)
				require.LessOrEqual(t, float64(p.Time()), float64(at))
			}
		}
	}
}

func TestProperty_HintNeverChangesResult(t *testing.T) {
	for _, seed := range seeds {
		f := newFixture(seed, 8)
		f.insertRandom(50)

		var hints []Position
		for p, ok := f.store.First(); ok; p, ok = f.store.Next(p) {
			hints = append(hints, p)
		}

		for range 100 {
			at := f.queryTime()
			want, wantOK := f.store.Last(at)
			bisect := f.store.firstAfter(at, 0, f.store.Len()) - 1

			for h, hint := range hints {
				got, gotOK := f.store.LastHint(at, hint)
				require.Equal(t, wantOK, gotOK)
				if wantOK {
					require.True(t, want.Equal(got), "seed=%d at=%v hint=%s", seed, at, hint)
				}
				// the cache answers LastHint above, check the gallop itself too
				require.Equal(t, bisect, f.store.gallop(at, h), "seed=%d at=%v hint=%d", seed, at, h)
			}
		}
	}
}

func TestProperty_CountMatchesIteration(t *testing.T) {
	for _, seed := range seeds {
		f := newFixture(seed, 16)
		f.insertRandom(40)

		for range 300 {
			a, b := f.queryTime(), f.queryTime()
			if a == b {
				continue
			}
			if a > b {
				a, b = b, a
			}

			iterated := len(collect(f.store.Iterate(a, b)))
			require.Equal(t, f.model.count(a, b), iterated, "seed=%d [%v,%v)", seed, a, b)
			require.Equal(t, iterated, f.store.Count(a, b))
			require.Equal(t, iterated == 0, f.store.Empty(a, b))
			require.Len(t, f.store.Export(a, b), iterated)

			require.Equal(t, f.model.events(a, b), f.store.EventCount(a, b), "seed=%d [%v,%v)", seed, a, b)
		}
	}
}

func TestProperty_BackwardWalkMirrorsForward(t *testing.T) {
	for _, seed := range seeds {
		f := newFixture(seed, 16)
		f.insertRandom(30)

		for range 50 {
			a := f.queryTime()
			b := a + Time(f.rng.Float64()*10) + 0.01
			for _, it := range []*Iterator[int]{f.store.Iterate(a, b), f.store.Events(a, b)} {
				forward := collect(it)
				var backward []Keyframe[int]
				for it.Prev(); it.Valid(); it.Prev() {
					backward = append(backward, it.Keyframe())
				}
				require.Len(t, backward, len(forward))
				for i := range forward {
					require.Equal(t, forward[i], backward[len(backward)-1-i])
				}
			}
		}
	}
}

func TestProperty_EraseOperations(t *testing.T) {
	for _, seed := range seeds {
		f := newFixture(seed, 4)
		f.insertRandom(40)

		for round := 0; f.store.Len() > 0 && round < 30; round++ {
			p := f.randomPosition()
			kf := f.store.At(p)

			if f.rng.IntN(4) == 0 {
				removed := f.store.EraseAfter(p)
				before := len(f.model.frames)
				f.model.eraseAfter(kf.Time)
				require.Equal(t, before-len(f.model.frames), removed)
			} else {
				f.store.Erase(p)
				f.model.erase(kf.Value)
			}
			f.requireEqual(t)

			at := f.queryTime()
			want, ok := f.model.last(at)
			got, gotOK := f.store.Last(at)
			require.Equal(t, ok, gotOK)
			if ok {
				require.Equal(t, f.model.frames[want], f.store.At(got))
			}

			f.insertRandom(f.rng.IntN(3))
			f.requireEqual(t)
		}
	}
}

func TestProperty_QueriesDoNotMutate(t *testing.T) {
	for _, seed := range seeds {
		f := newFixture(seed, 8)
		f.insertRandom(30)

		c := &Discrete[int]{timeline: timeline[int]{store: f.store}}
		before := contents(f.store)
		for range 200 {
			at := f.queryTime()
			v1, err1 := c.Get(at)
			v2, err2 := c.Get(at)
			require.Equal(t, v1, v2)
			require.Equal(t, err1, err2)
		}
		require.Equal(t, before, contents(f.store))
	}
}
