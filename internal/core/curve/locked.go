package curve

import "sync"

var _ Curve[int] = (*Locked[int])(nil)

// Locked serializes every access to a curve behind one mutex, for attributes
// shared between the simulation goroutine and readers elsewhere. Queries
// take the exclusive lock too since they update the position cache.
type Locked[T any] struct {
	mu    sync.Mutex
	curve Curve[T]
}

func NewLocked[T any](c Curve[T]) *Locked[T] {
	return &Locked[T]{curve: c}
}

func (l *Locked[T]) Get(t Time) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.curve.Get(t)
}

func (l *Locked[T]) GetOr(t Time, def T) T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.curve.GetOr(t, def)
}

func (l *Locked[T]) SetInsert(t Time, value T) Position {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.curve.SetInsert(t, value)
}

func (l *Locked[T]) SetDrop(t Time, value T) Position {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.curve.SetDrop(t, value)
}

// Store returns the wrapped store. Callers must go through Do to use it.
func (l *Locked[T]) Store() *Store[T] {
	return l.curve.Store()
}

// Do runs fn with the lock held, for range walks and other multi-step reads.
func (l *Locked[T]) Do(fn func(c Curve[T])) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.curve)
}

// Snapshot copies the sustained range [from, to) so it can be handed to
// other goroutines without holding the lock.
func (l *Locked[T]) Snapshot(from, to Time) []Keyframe[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.curve.Store().Export(from, to)
}
