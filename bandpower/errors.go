package bandpower

import "errors"

var (
	// ErrInvalidParameter reports a malformed band, a non-positive window
	// length, or a non-positive sampling rate.
	ErrInvalidParameter = errors.New("invalid band power parameter")
	// ErrDivisionByZero reports relative normalisation against a zero total
	// power.
	ErrDivisionByZero = errors.New("total power is zero")
)
