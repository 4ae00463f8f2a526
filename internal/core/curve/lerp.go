package curve

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Lerp interpolates between a and b, elapsed of span time units past a.
// span is always positive and elapsed lies in [0, span).
type Lerp[T any] func(a, b T, elapsed, span Time) T

// Number is the set of scalar types Continuous can interpolate natively.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Vector is implemented by value types with their own arithmetic.
type Vector[T any] interface {
	Add(T) T
	Sub(T) T
	Scale(float64) T
}

// LerpNumber computes a + (b-a)*elapsed/span in float64. Integer results
// are truncated toward zero.
func LerpNumber[T Number](a, b T, elapsed, span Time) T {
	fa := float64(a)
	return T(fa + (float64(b)-fa)*float64(elapsed)/float64(span))
}

// LerpVector interpolates componentwise through the Vector methods.
func LerpVector[T Vector[T]](a, b T, elapsed, span Time) T {
	return a.Add(b.Sub(a).Scale(float64(elapsed) / float64(span)))
}

// LerpVec2 interpolates planar positions.
func LerpVec2(a, b r2.Vec, elapsed, span Time) r2.Vec {
	return r2.Add(a, r2.Scale(float64(elapsed)/float64(span), r2.Sub(b, a)))
}

// LerpVec3 interpolates spatial positions.
func LerpVec3(a, b r3.Vec, elapsed, span Time) r3.Vec {
	return r3.Add(a, r3.Scale(float64(elapsed)/float64(span), r3.Sub(b, a)))
}
