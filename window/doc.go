// Package window generates taper functions for spectral estimation.
//
// The package covers the tapers commonly used for periodogram averaging:
// rectangular, Hann, Hamming, Blackman, flat-top, and Tukey. Windows can be
// generated in symmetric (filter design) or periodic (FFT framing) form.
package window
