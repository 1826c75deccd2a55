package consumption

import "errors"

var (
	// ErrInvalidConfig indicates a negative frequency, duration, power level,
	// or a receive duty cycle outside [0,1].
	ErrInvalidConfig = errors.New("consumption: invalid configuration")

	// ErrInvalidDutyCycle indicates a schedule whose active time exceeds the
	// simulation horizon, which would otherwise yield negative sleep or idle
	// energy.
	ErrInvalidDutyCycle = errors.New("consumption: duty cycle exceeds horizon")

	// ErrZeroEfficiency indicates that the derating factors multiply to
	// zero, making the derated total undefined.
	ErrZeroEfficiency = errors.New("consumption: zero efficiency factor")
)
