// Package psd estimates the power spectral density of real-valued signals.
//
// Two estimators are provided. [Welch] averages modified periodograms over
// overlapping tapered segments and trades frequency resolution for variance
// reduction through the segment length. [Multitaper] averages eigenspectra
// over orthogonal Slepian tapers with adaptive weighting and needs no
// segment-length choice at all, at a higher compute cost.
//
// All estimates are one-sided densities in signal units squared per hertz,
// so integrating a [Spectrum] over frequency recovers signal power.
package psd
