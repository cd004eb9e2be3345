package psd

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/window"
)

// Spectrum is a one-sided power spectral density estimate over uniformly
// spaced frequency bins.
type Spectrum struct {
	// Freqs holds ascending bin frequencies in Hz, starting at DC.
	Freqs []float64
	// Values holds the density at each bin in signal units squared per Hz.
	Values []float64
}

// Len returns the number of frequency bins.
func (s Spectrum) Len() int {
	return len(s.Freqs)
}

// Resolution returns the uniform spacing between adjacent frequency bins in
// Hz, or 0 for spectra with fewer than two bins.
func (s Spectrum) Resolution() float64 {
	if len(s.Freqs) < 2 {
		return 0
	}

	return s.Freqs[1] - s.Freqs[0]
}

// Method selects a PSD estimation method.
type Method int

const (
	// MethodWelch averages periodograms over overlapping tapered segments.
	MethodWelch Method = iota
	// MethodMultitaper averages Slepian eigenspectra with adaptive weights.
	MethodMultitaper
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodWelch:
		return "welch"
	case MethodMultitaper:
		return "multitaper"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// Config holds estimation parameters shared by both methods.
type Config struct {
	// SampleRate is the signal sampling frequency in Hz. Must be > 0.
	SampleRate float64
	// WindowSec is the Welch segment length in seconds. Must be > 0 for
	// [MethodWelch]; ignored by [MethodMultitaper].
	WindowSec float64
	// Overlap is the fractional Welch segment overlap in [0,1). The zero
	// value selects the conventional 50%.
	Overlap float64
	// WindowType is the taper applied to each segment. The zero value is
	// the Hann window.
	WindowType window.Type
}

// Estimate computes a PSD estimate with the selected method.
func Estimate(signal []float64, method Method, cfg Config) (Spectrum, error) {
	switch method {
	case MethodWelch:
		return Welch(signal, cfg)
	case MethodMultitaper:
		return Multitaper(signal, cfg)
	default:
		return Spectrum{}, fmt.Errorf("unknown estimation method %d: %w", int(method), ErrInvalidParameter)
	}
}

// binFreqs returns the one-sided bin frequencies for an FFT of the given size.
func binFreqs(binCount int, sampleRate float64, fftSize int) []float64 {
	freqs := make([]float64, binCount)
	df := sampleRate / float64(fftSize)
	for i := range freqs {
		freqs[i] = float64(i) * df
	}

	return freqs
}

// removeMean subtracts the arithmetic mean in place.
func removeMean(buf []float64) {
	if len(buf) == 0 {
		return
	}

	sum := 0.0
	for _, v := range buf {
		sum += v
	}

	mean := sum / float64(len(buf))
	for i := range buf {
		buf[i] -= mean
	}
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
