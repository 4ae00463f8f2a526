package curve

import "github.com/zeusync/curve/internal/core/observability/log"

// Curve is the attribute surface shared by Continuous and Discrete.
type Curve[T any] interface {
	Get(t Time) (T, error)
	GetOr(t Time, def T) T
	SetInsert(t Time, value T) Position
	SetDrop(t Time, value T) Position
	Store() *Store[T]
}

// timeline holds the store of a curve and the hint that keeps tick-ordered
// queries from bisecting the whole store every time.
type timeline[T any] struct {
	store *Store[T]
	hint  Position
}

func newTimeline[T any](opts []Option) timeline[T] {
	return timeline[T]{store: NewStore[T](opts...)}
}

// Store exposes the underlying keyframes for range walks and cache stats.
func (tl *timeline[T]) Store() *Store[T] {
	return tl.store
}

// SetInsert adds a keyframe without touching later ones, extending a
// predicted trajectory.
func (tl *timeline[T]) SetInsert(t Time, value T) Position {
	return tl.store.Insert(t, value)
}

// SetDrop replaces every keyframe at or after t with a single keyframe at t.
// Used when an authoritative value invalidates predicted ones, including a
// prediction made for t itself.
func (tl *timeline[T]) SetDrop(t Time, value T) Position {
	if !t.isFinite() {
		violation(ErrInvalidTime, "drop at %v", float64(t))
	}
	dropped := tl.store.Truncate(t)
	p := tl.store.Insert(t, value)
	if dropped > 0 && tl.store.logger.Enabled(log.LevelDebug) {
		tl.store.logger.Debug("predictions dropped",
			log.Float64("time", float64(t)),
			log.Int("dropped", dropped),
		)
	}
	return p
}

// locate returns the index of the keyframe in effect at t, or -1.
func (tl *timeline[T]) locate(t Time) int {
	mustQueryTime(t)

	h := -1
	if idx, ok := tl.store.tryResolve(tl.hint); ok {
		h = idx
	}

	idx := tl.store.lastIndex(t, h)
	if idx >= 0 {
		tl.hint = tl.store.position(idx)
	}
	return idx
}
