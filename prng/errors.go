package prng

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned by RestoreState when SaveState was never called.
var ErrInvalidState = errors.New("no saved state to restore")

// InvalidSeedError reports a seed that is not nil, a string or a number.
type InvalidSeedError struct {
	Value any
}

func (e *InvalidSeedError) Error() string {
	return fmt.Sprintf("invalid seed %#v (%T)", e.Value, e.Value)
}

// InvalidRangeError reports a RandInt call with max < min.
type InvalidRangeError struct {
	Min, Max int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: max %d is less than min %d", e.Max, e.Min)
}
