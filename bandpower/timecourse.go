package bandpower

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-spectral/psd"
	"github.com/cwbudde/algo-spectral/window"
)

// TimeCourseConfig holds time-resolved band power parameters.
type TimeCourseConfig struct {
	// SampleRate is the signal sampling frequency in Hz. Must be > 0.
	SampleRate float64
	// WindowSec is the analysis window length in seconds. Must be > 0.
	WindowSec float64
	// WindowType is the taper applied to each window. The zero value is
	// the Hann window.
	WindowType window.Type
	// Relative divides each window's band powers by that window's summed
	// power over the requested bands (not by the full-spectrum power).
	Relative bool
}

// TimeWindow is one analysis window [Start, End) in seconds with the power
// per band, ordered like the input band collection.
type TimeWindow struct {
	Start  float64
	End    float64
	Powers []float64
}

// TimeCourse partitions the signal into consecutive non-overlapping windows
// of WindowSec seconds, estimates a short-time PSD per window, and
// integrates it over each band in input order. A trailing partial window is
// dropped rather than zero-padded. A signal shorter than one window yields
// an empty sequence, not an error.
//
// With Relative set, each window is normalised by the summed power of the
// requested bands within that window, so relative values are comparable
// within a window but sum to 1 only when the bands tile the analysed
// spectrum. A window whose requested bands carry zero total power is
// [ErrDivisionByZero].
//
// Windows are evaluated concurrently; the returned sequence is ordered by
// window index regardless of execution order.
func TimeCourse(signal []float64, bands Bands, cfg TimeCourseConfig) ([]TimeWindow, error) {
	if err := bands.Validate(); err != nil {
		return nil, err
	}
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("time course sample rate must be > 0: %f: %w", cfg.SampleRate, ErrInvalidParameter)
	}
	if cfg.WindowSec <= 0 {
		return nil, fmt.Errorf("time course window seconds must be > 0: %f: %w", cfg.WindowSec, ErrInvalidParameter)
	}

	segmentLen := int(math.Round(cfg.WindowSec * cfg.SampleRate))
	if segmentLen < 1 {
		return nil, fmt.Errorf("time course window shorter than 1 sample (%f s at %f Hz): %w",
			cfg.WindowSec, cfg.SampleRate, ErrInvalidParameter)
	}

	count := len(signal) / segmentLen
	if count == 0 {
		return nil, nil
	}

	estimatorCfg := psd.Config{
		SampleRate: cfg.SampleRate,
		WindowSec:  cfg.WindowSec,
		WindowType: cfg.WindowType,
	}

	results := make([]TimeWindow, count)

	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i := range count {
		group.Go(func() error {
			segment := signal[i*segmentLen : (i+1)*segmentLen]

			// One segment of exactly the window length, so Welch reduces
			// to a single tapered periodogram.
			sp, err := psd.Welch(segment, estimatorCfg)
			if err != nil {
				return fmt.Errorf("window %d: %w", i, err)
			}

			powers := make([]float64, len(bands))
			for j, nb := range bands {
				powers[j] = integrateBand(sp, nb.Band)
			}

			if cfg.Relative {
				total := 0.0
				for _, p := range powers {
					total += p
				}
				if total <= 0 {
					return fmt.Errorf("window %d: requested bands carry no power: %w", i, ErrDivisionByZero)
				}
				for j := range powers {
					powers[j] /= total
				}
			}

			start := float64(i) * cfg.WindowSec
			results[i] = TimeWindow{
				Start:  start,
				End:    start + cfg.WindowSec,
				Powers: powers,
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
