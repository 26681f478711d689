package wave

import "errors"

// Sentinel errors for the wave package.
var (
	// ErrInvalidParameter is returned by New for bad construction arguments.
	ErrInvalidParameter = errors.New("wave: invalid parameter")

	// ErrInvalidArgument is returned by Update for a negative time delta.
	ErrInvalidArgument = errors.New("wave: invalid argument")

	// ErrOutOfRange is returned by Disturb for indices outside the interior.
	ErrOutOfRange = errors.New("wave: index out of range")
)
