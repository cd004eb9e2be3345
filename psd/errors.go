package psd

import "errors"

var (
	// ErrInvalidParameter reports a non-positive sampling rate, a degenerate
	// segment configuration, or an unknown estimation method.
	ErrInvalidParameter = errors.New("invalid estimation parameter")
	// ErrInsufficientData reports a signal too short for the chosen segment
	// or taper configuration.
	ErrInsufficientData = errors.New("signal too short for configuration")
)
