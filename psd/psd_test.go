package psd

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-spectral/internal/testutil"
)

func TestEstimateDispatch(t *testing.T) {
	signal := testutil.Sine(10, 200, 1, 2000)

	welch, err := Estimate(signal, MethodWelch, Config{SampleRate: 200, WindowSec: 2})
	if err != nil {
		t.Fatalf("welch: unexpected error: %v", err)
	}
	direct, err := Welch(signal, Config{SampleRate: 200, WindowSec: 2})
	if err != nil {
		t.Fatalf("welch direct: unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, welch.Values, direct.Values, 0)

	mt, err := Estimate(signal, MethodMultitaper, Config{SampleRate: 200})
	if err != nil {
		t.Fatalf("multitaper: unexpected error: %v", err)
	}
	if mt.Len() == 0 {
		t.Fatalf("multitaper returned empty spectrum")
	}
}

func TestEstimateUnknownMethod(t *testing.T) {
	signal := testutil.Sine(10, 200, 1, 2000)

	_, err := Estimate(signal, Method(99), Config{SampleRate: 200, WindowSec: 2})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("got %v, want %v", err, ErrInvalidParameter)
	}
}

func TestMethodString(t *testing.T) {
	tests := []struct {
		method Method
		want   string
	}{
		{MethodWelch, "welch"},
		{MethodMultitaper, "multitaper"},
		{Method(99), "method(99)"},
	}

	for _, tc := range tests {
		if got := tc.method.String(); got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}
}

func TestSpectrumResolution(t *testing.T) {
	sp := Spectrum{Freqs: []float64{0, 0.5, 1, 1.5}, Values: []float64{1, 2, 3, 4}}
	if got := sp.Resolution(); got != 0.5 {
		t.Fatalf("resolution: got %v want 0.5", got)
	}
	if got := (Spectrum{Freqs: []float64{0}}).Resolution(); got != 0 {
		t.Fatalf("single-bin resolution: got %v want 0", got)
	}
	if sp.Len() != 4 {
		t.Fatalf("len: got %d want 4", sp.Len())
	}
}
