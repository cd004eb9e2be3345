package psd

import (
	"errors"
	"strconv"
	"testing"

	"github.com/cwbudde/algo-spectral/internal/quad"
	"github.com/cwbudde/algo-spectral/internal/testutil"
)

func TestMultitaperSineBandPower(t *testing.T) {
	// The analysis bandwidth at NW=4 over 10 s is 0.8 Hz, so the 10 Hz tone
	// power stays inside [8, 12].
	signal := testutil.Sine(10, 200, 1, 2000)

	sp, err := Multitaper(signal, Config{SampleRate: 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireFinite(t, sp.Values)

	testutil.RequireRelNear(t, integrate(sp, 8, 12), 0.5, 0.1)

	if got := integrate(sp, 20, 30); got > 0.01 {
		t.Fatalf("off-band leakage too high: %v", got)
	}
}

func TestMultitaperNoiseTotalPower(t *testing.T) {
	signal := testutil.Noise(7, 1, 4000)

	sp, err := Multitaper(signal, Config{SampleRate: 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total := quad.Trapezoid(sp.Values, sp.Resolution())
	testutil.RequireRelNear(t, total, 1.0/3.0, 0.15)
}

func TestMultitaperFlatSignal(t *testing.T) {
	// Constant input has zero variance after mean removal; the estimate must
	// stay finite and essentially zero.
	signal := make([]float64, 256)
	for i := range signal {
		signal[i] = 3.5
	}

	sp, err := Multitaper(signal, Config{SampleRate: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireFinite(t, sp.Values)

	if total := quad.Trapezoid(sp.Values, sp.Resolution()); total > 1e-18 {
		t.Fatalf("flat signal carries power: %v", total)
	}
}

func TestMultitaperErrors(t *testing.T) {
	signal := testutil.Sine(10, 200, 1, 256)

	if _, err := Multitaper(signal, Config{}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("zero rate: got %v, want %v", err, ErrInvalidParameter)
	}

	short := testutil.Sine(10, 200, 1, 10)
	if _, err := Multitaper(short, Config{SampleRate: 200}); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("short signal: got %v, want %v", err, ErrInsufficientData)
	}
}

func BenchmarkMultitaper(b *testing.B) {
	sizes := []int{512, 2000, 8000}
	cfg := Config{SampleRate: 200}

	for _, n := range sizes {
		signal := testutil.Noise(1, 1, n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * 8))

			for range b.N {
				if _, err := Multitaper(signal, cfg); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
