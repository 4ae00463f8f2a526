package curve

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Time is simulation time. It is not tied to the wall clock.
type Time float64

var (
	MinTime = Time(math.Inf(-1))
	MaxTime = Time(math.Inf(1))
)

func (t Time) isNaN() bool {
	return math.IsNaN(float64(t))
}

func (t Time) isFinite() bool {
	return !math.IsNaN(float64(t)) && !math.IsInf(float64(t), 0)
}

// Keyframe is a single stored (time, value) record.
type Keyframe[T any] struct {
	Time  Time
	Value T
}

func (k Keyframe[T]) String() string {
	return fmt.Sprintf("%g=%v", float64(k.Time), k.Value)
}

// Position is an opaque reference to one keyframe of one store. It stays
// valid across insertions and removals of other keyframes and is invalidated
// only by erasing the keyframe itself. The zero Position refers to nothing.
//
// Compare positions with Equal; the struct also carries a lookup shortcut
// that differs between copies taken at different store generations.
type Position struct {
	store uuid.UUID
	id    uint64
	time  Time
	index int
	gen   uint64
}

// Equal reports whether p and o refer to the same keyframe.
func (p Position) Equal(o Position) bool {
	return p.store == o.store && p.id == o.id
}

// IsZero reports whether p refers to no keyframe.
func (p Position) IsZero() bool {
	return p.id == 0
}

// Time returns the time of the referenced keyframe.
func (p Position) Time() Time {
	return p.time
}

func (p Position) String() string {
	if p.IsZero() {
		return "position(none)"
	}
	return fmt.Sprintf("position(%d@%g)", p.id, float64(p.time))
}
