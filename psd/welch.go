package psd

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectral/window"
)

// Welch estimates the PSD by averaging modified periodograms over
// overlapping tapered segments (Welch's method).
//
// The signal is split into segments of round(WindowSec * SampleRate)
// samples with the configured overlap (50% by default). Each segment has its
// mean removed, is tapered, zero-padded to the next power of two, and
// transformed; the squared magnitudes are averaged across segments and
// scaled to a one-sided density.
func Welch(signal []float64, cfg Config) (Spectrum, error) {
	if cfg.SampleRate <= 0 {
		return Spectrum{}, fmt.Errorf("welch sample rate must be > 0: %f: %w", cfg.SampleRate, ErrInvalidParameter)
	}
	if cfg.WindowSec <= 0 {
		return Spectrum{}, fmt.Errorf("welch window seconds must be > 0: %f: %w", cfg.WindowSec, ErrInvalidParameter)
	}
	if cfg.Overlap < 0 || cfg.Overlap >= 1 {
		return Spectrum{}, fmt.Errorf("welch overlap must be in [0,1): %f: %w", cfg.Overlap, ErrInvalidParameter)
	}

	overlap := cfg.Overlap
	if overlap == 0 {
		overlap = 0.5
	}

	segmentLen := int(math.Round(cfg.WindowSec * cfg.SampleRate))
	if segmentLen < 1 {
		return Spectrum{}, fmt.Errorf("welch segment shorter than 1 sample (%f s at %f Hz): %w",
			cfg.WindowSec, cfg.SampleRate, ErrInvalidParameter)
	}
	if len(signal) < segmentLen {
		return Spectrum{}, fmt.Errorf("welch needs at least %d samples, got %d: %w",
			segmentLen, len(signal), ErrInsufficientData)
	}

	step := segmentLen - int(math.Round(overlap*float64(segmentLen)))
	if step < 1 {
		step = 1
	}

	coeffs := window.Generate(cfg.WindowType, segmentLen, window.WithPeriodic())

	fftSize := nextPowerOf2(segmentLen)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Spectrum{}, fmt.Errorf("welch: failed to create FFT plan: %w", err)
	}

	binCount := fftSize/2 + 1

	acc := make([]float64, binCount)
	power := make([]float64, binCount)
	re := make([]float64, binCount)
	im := make([]float64, binCount)
	segment := make([]float64, segmentLen)
	in := make([]complex128, fftSize)
	out := make([]complex128, fftSize)

	segments := 0
	for start := 0; start+segmentLen <= len(signal); start += step {
		copy(segment, signal[start:start+segmentLen])
		removeMean(segment)
		vecmath.MulBlockInPlace(segment, coeffs)

		for i := range in {
			in[i] = 0
		}
		for i, v := range segment {
			in[i] = complex(v, 0)
		}

		if err := plan.Forward(out, in); err != nil {
			return Spectrum{}, fmt.Errorf("welch segment transform: %w", err)
		}

		for i := range binCount {
			re[i] = real(out[i])
			im[i] = imag(out[i])
		}

		vecmath.Power(power, re, im)
		vecmath.AddBlockInPlace(acc, power)
		segments++
	}

	// Density scaling: divide by fs * sum(w^2) and the segment count, then
	// fold negative frequencies into the interior bins.
	vecmath.ScaleBlockInPlace(acc, 1/(cfg.SampleRate*window.SquaredSum(coeffs)*float64(segments)))
	for i := 1; i < binCount-1; i++ {
		acc[i] *= 2
	}

	return Spectrum{
		Freqs:  binFreqs(binCount, cfg.SampleRate, fftSize),
		Values: acc,
	}, nil
}
