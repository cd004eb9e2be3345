package frequency

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-spectral/internal/testutil"
	"github.com/cwbudde/algo-spectral/psd"
)

// spectrum builds a density over [0, (len(values)-1)*df] Hz.
func spectrum(df float64, values []float64) psd.Spectrum {
	freqs := make([]float64, len(values))
	for i := range freqs {
		freqs[i] = float64(i) * df
	}

	return psd.Spectrum{Freqs: freqs, Values: values}
}

func TestCalculateFlatSpectrum(t *testing.T) {
	// A flat density over 0-10 Hz: total 10*v, mean and median at 5 Hz,
	// SEF95 at 9.5 Hz.
	sp := spectrum(1, []float64{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2})

	s := Calculate(sp)

	if s.BinCount != 11 {
		t.Fatalf("bin count: got %d want 11", s.BinCount)
	}
	testutil.RequireNear(t, s.TotalPower, 20, 1e-12)
	testutil.RequireNear(t, s.MeanFrequency, 5, 1e-12)
	testutil.RequireNear(t, s.MedianFrequency, 5, 1e-12)
	testutil.RequireNear(t, s.SpectralEdge95, 9.5, 1e-12)
}

func TestCalculatePeak(t *testing.T) {
	values := []float64{0, 1, 2, 9, 2, 1, 0, 0, 0}
	sp := spectrum(0.5, values)

	s := Calculate(sp)

	testutil.RequireNear(t, s.PeakFrequency, 1.5, 1e-12)
	testutil.RequireNear(t, s.PeakValue, 9, 1e-12)
}

func TestCalculateSilentSpectrum(t *testing.T) {
	sp := spectrum(1, make([]float64, 16))

	s := Calculate(sp)

	if s.TotalPower != 0 || s.MeanFrequency != 0 || s.MedianFrequency != 0 || s.SpectralEdge95 != 0 {
		t.Fatalf("silent spectrum yields non-zero stats: %+v", s)
	}
}

func TestCalculateDegenerateSpectrum(t *testing.T) {
	s := Calculate(psd.Spectrum{Freqs: []float64{0}, Values: []float64{3}})
	if s.BinCount != 1 || s.TotalPower != 0 {
		t.Fatalf("single-bin spectrum yields non-trivial stats: %+v", s)
	}
}

func TestCalculateOnEstimatedSpectrum(t *testing.T) {
	// A 10 Hz tone: peak, mean and median all sit at 10 Hz.
	signal := testutil.Sine(10, 200, 1, 2000)

	sp, err := psd.Welch(signal, psd.Config{SampleRate: 200, WindowSec: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := Calculate(sp)

	testutil.RequireRelNear(t, s.TotalPower, 0.5, 0.05)
	testutil.RequireNear(t, s.PeakFrequency, 10, sp.Resolution())
	testutil.RequireNear(t, s.MeanFrequency, 10, 0.5)
	testutil.RequireNear(t, s.MedianFrequency, 10, 0.5)
}

func TestSpectralEdgeInterpolation(t *testing.T) {
	// Uniform density 1 over 0-4 Hz, total 4: the 25% edge falls exactly at
	// 1 Hz, between-bin fractions interpolate linearly.
	sp := spectrum(1, []float64{1, 1, 1, 1, 1})

	got, err := SpectralEdge(sp, 0.25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireNear(t, got, 1, 1e-12)

	got, err = SpectralEdge(sp, 0.375)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireNear(t, got, 1.5, 1e-12)

	got, err = SpectralEdge(sp, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireNear(t, got, 4, 1e-12)
}

func TestSpectralEdgeFractionValidation(t *testing.T) {
	sp := spectrum(1, []float64{1, 1, 1})

	for _, fraction := range []float64{0, -0.5, 1.1, math.NaN()} {
		if _, err := SpectralEdge(sp, fraction); err == nil {
			t.Fatalf("fraction %v: expected error", fraction)
		}
	}
}

func TestSpectralEdgeSilent(t *testing.T) {
	sp := spectrum(1, make([]float64, 8))

	got, err := SpectralEdge(sp, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("silent spectrum edge: got %v want 0", got)
	}
}
