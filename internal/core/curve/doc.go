// Package curve stores attribute values as timelines of keyframes.
//
// Every simulated attribute (a position, a speed, a life count) is a curve
// rather than a mutable field, so past, present and predicted values can be
// queried at once. The simulation extends predictions with SetInsert; when an
// authoritative update arrives for time t, SetDrop replaces everything after
// t with the new value.
//
// A Store keeps keyframes ordered by time and answers "latest keyframe at or
// before t". Continuous interpolates linearly between neighbours, Discrete
// holds the latest value. Iterators walk bounded ranges either as sustained
// values or as point-in-time events.
//
// Queries before the first keyframe return ErrNoData. Misuse (foreign or
// erased positions, empty ranges, non-finite keyframe times, iterators kept
// across mutations) panics with an error wrapping ErrInvalidHandle,
// ErrInvalidRange, ErrInvalidTime or ErrStaleIterator.
package curve
