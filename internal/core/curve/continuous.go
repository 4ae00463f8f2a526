package curve

var _ Curve[float64] = (*Continuous[float64])(nil)

// Continuous is a curve whose value between two keyframes is linearly
// interpolated. After the last keyframe the value holds.
type Continuous[T any] struct {
	timeline[T]
	lerp Lerp[T]
}

// NewContinuous creates a continuous curve over a scalar type.
func NewContinuous[T Number](opts ...Option) *Continuous[T] {
	return NewContinuousFunc[T](LerpNumber[T], opts...)
}

// NewContinuousVector creates a continuous curve over a type implementing Vector.
func NewContinuousVector[T Vector[T]](opts ...Option) *Continuous[T] {
	return NewContinuousFunc[T](LerpVector[T], opts...)
}

// NewContinuousFunc creates a continuous curve using a custom interpolation.
func NewContinuousFunc[T any](lerp Lerp[T], opts ...Option) *Continuous[T] {
	return &Continuous[T]{
		timeline: newTimeline[T](opts),
		lerp:     lerp,
	}
}

// Get returns the value at t, or ErrNoData before the first keyframe.
func (c *Continuous[T]) Get(t Time) (T, error) {
	idx := c.locate(t)
	if idx < 0 {
		var zero T
		return zero, ErrNoData
	}

	frames := c.store.frames
	k0 := frames[idx]
	if idx+1 == len(frames) {
		return k0.Value, nil
	}

	k1 := frames[idx+1]
	return c.lerp(k0.Value, k1.Value, t-k0.Time, k1.Time-k0.Time), nil
}

// GetOr is Get with a caller supplied value for times without data.
func (c *Continuous[T]) GetOr(t Time, def T) T {
	v, err := c.Get(t)
	if err != nil {
		return def
	}
	return v
}
