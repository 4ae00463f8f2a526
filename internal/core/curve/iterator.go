package curve

import "iter"

// Kind selects which keyframes an Iterator considers in range.
type Kind uint8

const (
	// Sustained yields the keyframe in effect at from and every later one
	// before to. Used to walk a value curve.
	Sustained Kind = iota
	// Event yields only keyframes whose own time lies in [from, to).
	Event
)

func (k Kind) String() string {
	switch k {
	case Sustained:
		return "sustained"
	case Event:
		return "event"
	default:
		return "unknown"
	}
}

// Iterator is a bidirectional cursor over a store bounded by [from, to).
// A valid iterator always points at an in-range keyframe; Next and Prev skip
// keyframes that are out of range.
//
// Exhausting forward parks the iterator on the store end, exhausting
// backward parks it before the first keyframe. Equal compares only that
// underlying position, so exhausted iterators are equal whatever range
// built them.
//
// An iterator is only usable until its store is next mutated.
type Iterator[T any] struct {
	store *Store[T]
	gen   uint64
	kind  Kind
	from  Time
	to    Time
	lo    int
	hi    int
	pos   int
}

func newIterator[T any](s *Store[T], kind Kind, from, to Time) *Iterator[T] {
	mustRange(from, to)

	it := &Iterator[T]{
		store: s,
		gen:   s.gen,
		kind:  kind,
		from:  from,
		to:    to,
	}

	switch {
	case kind == Sustained:
		it.lo, it.hi = s.sustainedWindow(from, to)
	case s.timeOf == nil:
		it.lo = s.firstAtOrAfter(from)
		it.hi = max(s.firstAtOrAfter(to), it.lo)
	default:
		// logical times are not ordered by the key
		it.lo, it.hi = 0, len(s.frames)
	}

	it.seekForward(it.lo)
	return it
}

// Kind returns the validity policy of the iterator.
func (it *Iterator[T]) Kind() Kind {
	return it.kind
}

// Range returns the bounds the iterator was built with.
func (it *Iterator[T]) Range() (Time, Time) {
	return it.from, it.to
}

// Valid reports whether the iterator points at a keyframe.
func (it *Iterator[T]) Valid() bool {
	it.check()
	return it.pos >= 0 && it.pos < len(it.store.frames)
}

// Next advances to the next in-range keyframe. On an exhausted iterator it
// is a no-op; on an iterator parked before the start it moves to the first
// in-range keyframe.
func (it *Iterator[T]) Next() {
	it.check()
	switch {
	case it.pos >= len(it.store.frames):
		return
	case it.pos < 0:
		it.seekForward(it.lo)
	default:
		it.seekForward(it.pos + 1)
	}
}

// Prev steps back to the previous in-range keyframe. From the store end it
// moves to the last in-range keyframe.
func (it *Iterator[T]) Prev() {
	it.check()
	switch {
	case it.pos < 0:
		return
	case it.pos >= len(it.store.frames):
		it.seekBackward(it.hi - 1)
	default:
		it.seekBackward(it.pos - 1)
	}
}

// Keyframe returns the current keyframe. It panics on an invalid iterator.
func (it *Iterator[T]) Keyframe() Keyframe[T] {
	if !it.Valid() {
		violation(ErrExhausted, "%s iterator over [%v, %v)", it.kind, float64(it.from), float64(it.to))
	}
	return it.store.frames[it.pos].Keyframe
}

// Time returns the ordering time of the current keyframe.
func (it *Iterator[T]) Time() Time {
	return it.Keyframe().Time
}

// Value returns the value of the current keyframe.
func (it *Iterator[T]) Value() T {
	return it.Keyframe().Value
}

// Position returns a handle to the current keyframe.
func (it *Iterator[T]) Position() Position {
	if !it.Valid() {
		violation(ErrExhausted, "%s iterator over [%v, %v)", it.kind, float64(it.from), float64(it.to))
	}
	return it.store.position(it.pos)
}

// Equal reports whether both iterators point at the same place of the same
// store. Range bounds are ignored.
func (it *Iterator[T]) Equal(o *Iterator[T]) bool {
	return it.store == o.store && it.pos == o.pos
}

// All yields the remaining keyframes, advancing it.
func (it *Iterator[T]) All() iter.Seq[Keyframe[T]] {
	return func(yield func(Keyframe[T]) bool) {
		for ; it.Valid(); it.Next() {
			if !yield(it.Keyframe()) {
				return
			}
		}
	}
}

func (it *Iterator[T]) inRange(i int) bool {
	if it.kind == Sustained {
		return true
	}
	kf := it.store.frames[i]
	t := kf.Time
	if it.store.timeOf != nil {
		t = it.store.timeOf(kf.Value)
	}
	return t >= it.from && t < it.to
}

func (it *Iterator[T]) seekForward(i int) {
	for i < it.hi && !it.inRange(i) {
		i++
	}
	if i >= it.hi {
		it.pos = len(it.store.frames)
		return
	}
	it.pos = i
}

func (it *Iterator[T]) seekBackward(i int) {
	for i >= it.lo && !it.inRange(i) {
		i--
	}
	if i < it.lo {
		it.pos = -1
		return
	}
	it.pos = i
}

func (it *Iterator[T]) check() {
	if it.gen != it.store.gen {
		violation(ErrStaleIterator, "%s iterator over [%v, %v)", it.kind, float64(it.from), float64(it.to))
	}
}
