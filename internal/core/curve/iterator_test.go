package curve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collect[T any](it *Iterator[T]) []Keyframe[T] {
	var out []Keyframe[T]
	for kf := range it.All() {
		out = append(out, kf)
	}
	return out
}

func timesOf[T any](frames []Keyframe[T]) []Time {
	out := make([]Time, 0, len(frames))
	for _, kf := range frames {
		out = append(out, kf.Time)
	}
	return out
}

func valuesOf[T any](frames []Keyframe[T]) []T {
	out := make([]T, 0, len(frames))
	for _, kf := range frames {
		out = append(out, kf.Value)
	}
	return out
}

func newTestStore(times ...Time) *Store[int] {
	s := NewStore[int]()
	for i, at := range times {
		s.Insert(at, i)
	}
	return s
}

func TestIterator_Sustained(t *testing.T) {
	s := newTestStore(0, 1, 10, 20)

	require.Equal(t, []Time{1, 10}, timesOf(collect(s.Iterate(5, 15))), "starts at the value in effect at from")
	require.Equal(t, []Time{0, 1}, timesOf(collect(s.Iterate(-3, 5))))
	require.Equal(t, []Time{20}, timesOf(collect(s.Iterate(25, 30))), "the last value holds past the end")
	require.Equal(t, []Time{10}, timesOf(collect(s.Iterate(10, 20))), "to is exclusive")
	require.Empty(t, collect(s.Iterate(-3, -1)))
}

func TestIterator_SustainedEqualTimeRun(t *testing.T) {
	s := newTestStore(0, 5, 5, 5, 9)

	require.Equal(t, []int{0, 1, 2, 3}, valuesOf(collect(s.Iterate(4, 6))), "a run inside the range is yielded whole")
	require.Equal(t, []int{3}, valuesOf(collect(s.Iterate(5, 6))), "only the last of a run is in effect at from")
	require.Equal(t, 4, s.Count(4, 6))
	require.Equal(t, 1, s.Count(5, 6))
}

func TestIterator_Bidirectional(t *testing.T) {
	s := newTestStore(0, 1, 2, 3, 4)
	it := s.Iterate(1.5, 3.5)

	require.True(t, it.Valid())
	require.Equal(t, Time(1), it.Time())
	it.Next()
	require.Equal(t, Time(2), it.Time())
	it.Next()
	require.Equal(t, Time(3), it.Time())
	it.Next()
	require.False(t, it.Valid())

	it.Next()
	require.False(t, it.Valid(), "advancing an exhausted iterator is a no-op")

	it.Prev()
	require.True(t, it.Valid())
	require.Equal(t, Time(3), it.Time(), "stepping back from the end lands on the last in-range keyframe")
	it.Prev()
	it.Prev()
	require.Equal(t, Time(1), it.Time())
	it.Prev()
	require.False(t, it.Valid())
	it.Prev()
	require.False(t, it.Valid())

	it.Next()
	require.True(t, it.Valid())
	require.Equal(t, Time(1), it.Time(), "advancing from before the start lands on the first in-range keyframe")
}

func TestIterator_EqualityIgnoresRange(t *testing.T) {
	s := newTestStore(0, 1, 2, 3)

	a := s.Iterate(0, 1)
	b := s.Iterate(0, 3)
	require.True(t, a.Equal(b), "both start on the keyframe at 0")

	b.Next()
	require.False(t, a.Equal(b))

	for a.Valid() {
		a.Next()
	}
	for b.Valid() {
		b.Next()
	}
	require.True(t, a.Equal(b), "exhausted iterators compare equal whatever their range")

	other := newTestStore(0, 1, 2, 3)
	c := other.Iterate(0, 1)
	for c.Valid() {
		c.Next()
	}
	require.False(t, a.Equal(c), "iterators of different stores never compare equal")
}

func TestIterator_Events(t *testing.T) {
	s := newTestStore(0, 1, 5, 10)

	require.Equal(t, []Time{5}, timesOf(collect(s.Events(2, 10))), "the keyframe in effect at from is not an event in range")
	require.Equal(t, []Time{1, 5, 10}, timesOf(collect(s.Events(1, 11))))
	require.Empty(t, collect(s.Events(6, 9)))
	require.Equal(t, 1, s.EventCount(2, 10))
	require.Equal(t, 2, s.Count(2, 10))
}

type shot struct {
	firedAt Time
	id      string
}

func TestIterator_EventsWithLogicalTime(t *testing.T) {
	// records keyed by arrival time but carrying the time they happened at
	s := NewEventStore(func(v shot) Time { return v.firedAt })
	s.Insert(1, shot{firedAt: 0.5, id: "a"})
	s.Insert(2, shot{firedAt: 3.5, id: "b"})
	s.Insert(3, shot{firedAt: 2.5, id: "c"})
	s.Insert(4, shot{firedAt: 9, id: "d"})

	var ids []string
	for kf := range s.Events(2, 4).All() {
		ids = append(ids, kf.Value.id)
	}
	require.Equal(t, []string{"b", "c"}, ids)

	it := s.Events(2, 4)
	it.Next()
	it.Next()
	require.False(t, it.Valid())
	it.Prev()
	require.Equal(t, "c", it.Value().id)
}

func TestIterator_PositionAndKind(t *testing.T) {
	s := newTestStore(0, 1, 2)
	it := s.Iterate(0.5, 2)

	require.Equal(t, Sustained, it.Kind())
	from, to := it.Range()
	require.Equal(t, Time(0.5), from)
	require.Equal(t, Time(2), to)

	p := it.Position()
	require.Equal(t, Keyframe[int]{Time: 0, Value: 0}, s.At(p))
	require.Equal(t, "event", s.Events(0, 1).Kind().String())
}

func TestIterator_StaleAfterMutation(t *testing.T) {
	s := newTestStore(0, 1, 2)
	it := s.Iterate(0, 3)
	s.Insert(5, 5)

	requireViolation(t, ErrStaleIterator, func() { it.Valid() })
	requireViolation(t, ErrStaleIterator, func() { it.Next() })
}

func TestIterator_DereferenceExhausted(t *testing.T) {
	s := newTestStore(0)
	it := s.Iterate(-2, -1)

	require.False(t, it.Valid())
	requireViolation(t, ErrExhausted, func() { it.Keyframe() })
	requireViolation(t, ErrExhausted, func() { it.Position() })
}

func TestIterator_AllStopsEarly(t *testing.T) {
	s := newTestStore(0, 1, 2, 3)
	it := s.Iterate(0, 4)

	for kf := range it.All() {
		if kf.Time == 1 {
			break
		}
	}
	require.True(t, it.Valid())
	require.Equal(t, Time(1), it.Time(), "breaking out leaves the iterator on the last yielded keyframe")
}
