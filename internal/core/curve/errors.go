package curve

import (
	"errors"
	"fmt"
)

var (
	// Query errors

	// ErrNoData is returned by point queries before the first keyframe or on an empty curve.
	ErrNoData = errors.New("no data at requested time")

	// Precondition violations. These are raised with panic and never returned.

	ErrInvalidHandle = errors.New("position does not belong to this store")
	ErrInvalidRange  = errors.New("invalid time range")
	ErrInvalidTime   = errors.New("invalid keyframe time")
	ErrStaleIterator = errors.New("iterator used after store mutation")
	ErrExhausted     = errors.New("iterator is exhausted")

	// Configuration errors

	ErrInvalidCacheSize = errors.New("cache size must be a positive power of two")
)

func violation(err error, format string, args ...any) {
	panic(fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)))
}
