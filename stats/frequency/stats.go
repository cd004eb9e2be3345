// Package frequency computes summary statistics of power spectral density
// estimates, the single-number descriptors used by reporting layers
// alongside per-band power: total power, peak and mean frequency, and
// spectral edge frequencies.
package frequency

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/internal/quad"
	"github.com/cwbudde/algo-spectral/psd"
)

// Stats holds summary statistics of a PSD estimate.
type Stats struct {
	BinCount int
	// TotalPower is the integral of the density over all bins (signal
	// units squared).
	TotalPower float64
	// PeakFrequency is the frequency of the largest density bin (Hz).
	PeakFrequency float64
	// PeakValue is the density at the peak bin.
	PeakValue float64
	// MeanFrequency is the power-weighted mean frequency (Hz).
	MeanFrequency float64
	// MedianFrequency is the 50% spectral edge (Hz).
	MedianFrequency float64
	// SpectralEdge95 is the frequency below which 95% of total power lies
	// (SEF95, Hz).
	SpectralEdge95 float64
}

// Calculate computes all summary statistics from a PSD estimate. Spectra
// with fewer than two bins yield zero statistics.
func Calculate(sp psd.Spectrum) Stats {
	n := sp.Len()
	if n < 2 {
		return Stats{BinCount: n}
	}

	var s Stats
	s.BinCount = n
	s.TotalPower = quad.Simpson(sp.Values, sp.Resolution())

	s.PeakValue = sp.Values[0]
	s.PeakFrequency = sp.Freqs[0]
	for i, v := range sp.Values {
		if v > s.PeakValue {
			s.PeakValue = v
			s.PeakFrequency = sp.Freqs[i]
		}
	}

	if s.TotalPower > 0 {
		weighted := 0.0
		sum := 0.0
		for i, v := range sp.Values {
			weighted += sp.Freqs[i] * v
			sum += v
		}
		if sum > 0 {
			s.MeanFrequency = weighted / sum
		}

		s.MedianFrequency, _ = SpectralEdge(sp, 0.5)
		s.SpectralEdge95, _ = SpectralEdge(sp, 0.95)
	}

	return s
}

// SpectralEdge returns the frequency below which the given fraction (0..1]
// of total spectral power lies, interpolated linearly within the crossing
// bin. A zero-power spectrum yields 0.
func SpectralEdge(sp psd.Spectrum, fraction float64) (float64, error) {
	if !(fraction > 0 && fraction <= 1) {
		return 0, fmt.Errorf("spectral edge fraction must be in (0,1]: %f", fraction)
	}

	n := sp.Len()
	if n < 2 {
		return 0, nil
	}

	dx := sp.Resolution()

	total := quad.Trapezoid(sp.Values, dx)
	if total <= 0 {
		return 0, nil
	}

	threshold := fraction * total
	cum := 0.0

	for i := 1; i < n; i++ {
		step := (sp.Values[i-1] + sp.Values[i]) / 2 * dx
		if cum+step >= threshold {
			if step <= 0 {
				return sp.Freqs[i], nil
			}

			t := (threshold - cum) / step

			return sp.Freqs[i-1] + t*dx, nil
		}
		cum += step
	}

	return sp.Freqs[n-1], nil
}
