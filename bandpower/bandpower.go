package bandpower

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/psd"
)

// Config holds whole-signal band power parameters.
type Config struct {
	// SampleRate is the signal sampling frequency in Hz. Must be > 0.
	SampleRate float64
	// Method selects the PSD estimator. The zero value is Welch.
	Method psd.Method
	// WindowSec is the Welch segment length in seconds. The zero value
	// derives it as 2 / band.Low, so at least two cycles of the lowest
	// frequency of interest fit in one segment. Ignored by multitaper.
	WindowSec float64
	// Relative divides the band power by the full-spectrum power.
	Relative bool
}

// Compute estimates the PSD of the signal and integrates it over the band.
//
// Callers querying several bands against the same signal should estimate
// once with [psd.Estimate] and call [FromSpectrum] per band instead of
// re-estimating per call.
func Compute(signal []float64, band Band, cfg Config) (float64, error) {
	if err := band.Validate(); err != nil {
		return 0, err
	}

	sp, err := estimate(signal, band.Low, cfg)
	if err != nil {
		return 0, err
	}

	return FromSpectrum(sp, band, cfg.Relative)
}

// Ratio returns the power ratio between two bands, both integrated against a
// single shared PSD estimate (e.g. the delta/beta ratio). A zero denominator
// power is [ErrDivisionByZero].
func Ratio(signal []float64, num, den Band, cfg Config) (float64, error) {
	if err := num.Validate(); err != nil {
		return 0, err
	}
	if err := den.Validate(); err != nil {
		return 0, err
	}

	lowest := num.Low
	if den.Low < lowest {
		lowest = den.Low
	}

	sp, err := estimate(signal, lowest, cfg)
	if err != nil {
		return 0, err
	}

	numPower, err := FromSpectrum(sp, num, cfg.Relative)
	if err != nil {
		return 0, err
	}

	denPower, err := FromSpectrum(sp, den, cfg.Relative)
	if err != nil {
		return 0, err
	}

	if denPower <= 0 {
		return 0, fmt.Errorf("ratio denominator band %v has zero power: %w", den, ErrDivisionByZero)
	}

	return numPower / denPower, nil
}

// estimate runs the configured estimator, deriving the default Welch window
// length from the lowest frequency of interest when none is set.
func estimate(signal []float64, lowestHz float64, cfg Config) (psd.Spectrum, error) {
	windowSec := cfg.WindowSec
	if windowSec == 0 && cfg.Method == psd.MethodWelch {
		if lowestHz <= 0 {
			return psd.Spectrum{}, fmt.Errorf(
				"cannot derive window length from band edge %f Hz, set WindowSec explicitly: %w",
				lowestHz, ErrInvalidParameter)
		}

		windowSec = 2 / lowestHz
	}

	return psd.Estimate(signal, cfg.Method, psd.Config{
		SampleRate: cfg.SampleRate,
		WindowSec:  windowSec,
	})
}
