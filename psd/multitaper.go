package psd

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectral/internal/dpss"
	"github.com/cwbudde/algo-spectral/window"
)

const (
	// multitaperNW is the time-half-bandwidth product. NW=4 with 2*NW-1
	// tapers is the conventional default for EEG-length recordings.
	multitaperNW     = 4.0
	multitaperTapers = 7

	adaptiveMaxIterations = 100
	adaptiveTolerance     = 1e-10
)

// Multitaper estimates the PSD using Slepian tapers with adaptive weighting.
//
// The analysis bandwidth is self-determined from the signal length
// (time-half-bandwidth product 4, seven tapers), so no window length
// parameter exists; cfg.WindowSec and cfg.WindowType are ignored. Per-taper
// eigenspectra are combined with the iterative adaptive weights of Percival
// and Walden, which suppress broadband leakage from the less concentrated
// tapers.
func Multitaper(signal []float64, cfg Config) (Spectrum, error) {
	if cfg.SampleRate <= 0 {
		return Spectrum{}, fmt.Errorf("multitaper sample rate must be > 0: %f: %w", cfg.SampleRate, ErrInvalidParameter)
	}

	n := len(signal)
	if n < 2*multitaperTapers {
		return Spectrum{}, fmt.Errorf("multitaper needs at least %d samples, got %d: %w",
			2*multitaperTapers, n, ErrInsufficientData)
	}

	tapers, concentration, err := dpss.Tapers(n, multitaperTapers, multitaperNW/float64(n))
	if err != nil {
		return Spectrum{}, fmt.Errorf("multitaper tapers: %w", err)
	}

	demeaned := make([]float64, n)
	copy(demeaned, signal)
	removeMean(demeaned)

	variance := 0.0
	for _, v := range demeaned {
		variance += v * v
	}
	variance /= float64(n)

	fftSize := nextPowerOf2(n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Spectrum{}, fmt.Errorf("multitaper: failed to create FFT plan: %w", err)
	}

	binCount := fftSize/2 + 1

	eigenspectra, err := computeEigenspectra(plan, demeaned, tapers, fftSize, binCount, cfg.SampleRate)
	if err != nil {
		return Spectrum{}, err
	}

	values := combineAdaptive(eigenspectra, concentration, variance/cfg.SampleRate, binCount)

	for i := 1; i < binCount-1; i++ {
		values[i] *= 2
	}

	return Spectrum{
		Freqs:  binFreqs(binCount, cfg.SampleRate, fftSize),
		Values: values,
	}, nil
}

// computeEigenspectra returns the per-taper one-sided density estimates
// (without the one-sided doubling, which is applied after combination).
func computeEigenspectra(plan *algofft.Plan[complex128], signal []float64, tapers [][]float64,
	fftSize, binCount int, sampleRate float64,
) ([][]float64, error) {
	in := make([]complex128, fftSize)
	out := make([]complex128, fftSize)
	re := make([]float64, binCount)
	im := make([]float64, binCount)

	eigenspectra := make([][]float64, len(tapers))
	for k, taper := range tapers {
		tapered, err := window.ApplyCoefficients(signal, taper)
		if err != nil {
			return nil, fmt.Errorf("multitaper taper %d: %w", k, err)
		}

		for i := range in {
			in[i] = 0
		}
		for i, v := range tapered {
			in[i] = complex(v, 0)
		}

		if err := plan.Forward(out, in); err != nil {
			return nil, fmt.Errorf("multitaper eigenspectrum %d: %w", k, err)
		}

		for i := range binCount {
			re[i] = real(out[i])
			im[i] = imag(out[i])
		}

		spectrum := make([]float64, binCount)
		vecmath.Power(spectrum, re, im)
		vecmath.ScaleBlockInPlace(spectrum, 1/sampleRate)
		eigenspectra[k] = spectrum
	}

	return eigenspectra, nil
}

// combineAdaptive merges eigenspectra with the Percival-Walden adaptive
// weights. varDensity is the process variance expressed as a density, the
// broadband bias reference for weakly concentrated tapers.
func combineAdaptive(eigenspectra [][]float64, concentration []float64, varDensity float64, binCount int) []float64 {
	k := len(eigenspectra)

	// Start from the plain average of the two most concentrated tapers.
	estimate := make([]float64, binCount)
	for i := range estimate {
		estimate[i] = (eigenspectra[0][i] + eigenspectra[1][i]) / 2
	}

	next := make([]float64, binCount)
	for range adaptiveMaxIterations {
		maxChange := 0.0

		for i := range estimate {
			num := 0.0
			den := 0.0

			for j := 0; j < k; j++ {
				lam := concentration[j]
				bias := (1 - lam) * varDensity

				denom := lam*estimate[i] + bias
				if denom <= 0 {
					continue
				}

				d := estimate[i] / denom
				w := d * d * lam

				num += w * eigenspectra[j][i]
				den += w
			}

			if den > 0 {
				next[i] = num / den
			} else {
				next[i] = estimate[i]
			}

			change := math.Abs(next[i] - estimate[i])
			if ref := math.Abs(estimate[i]); ref > 0 {
				change /= ref
			}
			if change > maxChange {
				maxChange = change
			}
		}

		estimate, next = next, estimate

		if maxChange < adaptiveTolerance {
			break
		}
	}

	return estimate
}
