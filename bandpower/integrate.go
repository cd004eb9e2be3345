package bandpower

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-spectral/internal/quad"
	"github.com/cwbudde/algo-spectral/psd"
)

// FromSpectrum integrates the density over [band.Low, band.High] inclusive
// using composite trapezoid quadrature on the spectrum's uniform bin grid.
//
// Band and full-spectrum integrals use the same rule, so for non-negative
// densities a relative band power is always in [0, 1] and bands that share
// edges tile the spectrum without double counting (the shared edge bin
// contributes half its weight to each neighbour).
//
// A band that selects fewer than two bins (entirely outside the spectrum's
// range, or narrower than the bin spacing) integrates to zero; that is an
// expected edge condition, not an error. With relative set, the result is
// divided by the full-spectrum integral; a zero full-spectrum integral is
// [ErrDivisionByZero].
func FromSpectrum(sp psd.Spectrum, band Band, relative bool) (float64, error) {
	if err := band.Validate(); err != nil {
		return 0, err
	}

	power := integrateBand(sp, band)
	if !relative {
		return power, nil
	}

	total := quad.Trapezoid(sp.Values, sp.Resolution())
	if total <= 0 {
		return 0, fmt.Errorf("relative power of band %v: %w", band, ErrDivisionByZero)
	}

	return power / total, nil
}

// integrateBand integrates the density over the bins inside the band.
func integrateBand(sp psd.Spectrum, band Band) float64 {
	lo := sort.SearchFloat64s(sp.Freqs, band.Low)
	hi := sort.Search(len(sp.Freqs), func(i int) bool { return sp.Freqs[i] > band.High })

	if hi-lo < 2 {
		return 0
	}

	return quad.Trapezoid(sp.Values[lo:hi], sp.Resolution())
}
