package curve

var _ Curve[string] = (*Discrete[string])(nil)

// Discrete is a step curve: the value of a keyframe holds until the next one.
type Discrete[T any] struct {
	timeline[T]
}

func NewDiscrete[T any](opts ...Option) *Discrete[T] {
	return &Discrete[T]{timeline: newTimeline[T](opts)}
}

// Get returns the value of the latest keyframe at or before t, or ErrNoData.
func (d *Discrete[T]) Get(t Time) (T, error) {
	idx := d.locate(t)
	if idx < 0 {
		var zero T
		return zero, ErrNoData
	}
	return d.store.frames[idx].Value, nil
}

func (d *Discrete[T]) GetOr(t Time, def T) T {
	v, err := d.Get(t)
	if err != nil {
		return def
	}
	return v
}
