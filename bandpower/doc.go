// Package bandpower computes signal power within named frequency bands.
//
// Band power is the integral of a power spectral density estimate over a
// closed frequency interval. The package offers three entry points:
// [FromSpectrum] integrates an existing [psd.Spectrum] (cheap to call per
// band against one shared estimate), [Compute] estimates and integrates in
// one step for a single band, and [TimeCourse] produces a per-window band
// power sequence over consecutive short-time windows, the spectrogram-style
// representation consumed by plotting layers and sequence predictors.
//
// Relative normalisation differs between the whole-signal and time-resolved
// paths: [FromSpectrum] and [Compute] divide by the full-spectrum power,
// while [TimeCourse] divides each window by the summed power of the
// requested bands within that window. See the respective function docs.
package bandpower
