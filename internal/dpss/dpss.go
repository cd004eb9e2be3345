// Package dpss generates discrete prolate spheroidal (Slepian) sequences,
// the orthogonal tapers used by multitaper spectral estimation.
//
// The sequences are computed as eigenvectors of the symmetric tridiagonal
// matrix of Percival & Walden (1993, §8.3), which is numerically stable for
// all practical lengths. The spectral concentration of each taper is
// evaluated exactly through the Dirichlet kernel quadratic form, applied via
// FFT convolution.
package dpss

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
)

// Tapers returns the first k Slepian tapers of length n for half-bandwidth w
// (in cycles per sample, 0 < w < 0.5), ordered by decreasing spectral
// concentration, together with the concentration of each taper.
//
// Each taper has unit energy: sum(v[i]^2) == 1.
func Tapers(n, k int, w float64) ([][]float64, []float64, error) {
	if n < 2 {
		return nil, nil, fmt.Errorf("dpss length must be >= 2: %d", n)
	}
	if k < 1 || k > n {
		return nil, nil, fmt.Errorf("dpss taper count must be in [1,%d]: %d", n, k)
	}
	if w <= 0 || w >= 0.5 {
		return nil, nil, fmt.Errorf("dpss half-bandwidth must be in (0,0.5): %f", w)
	}

	diag, offdiag := tridiagonal(n, w)

	tapers := make([][]float64, k)
	for j := range k {
		// Eigenvalues of the tridiagonal matrix are distinct; the j-th
		// taper corresponds to the j-th largest one.
		lambda := eigenvalueByIndex(diag, offdiag, n-1-j)

		v := inverseIteration(diag, offdiag, lambda)
		orthogonalize(v, tapers[:j])
		normalize(v)
		fixSign(v, j)
		tapers[j] = v
	}

	conc, err := concentrations(tapers, w)
	if err != nil {
		return nil, nil, err
	}

	return tapers, conc, nil
}

// tridiagonal returns the diagonal and off-diagonal of the commuting
// tridiagonal matrix whose eigenvectors are the Slepian sequences.
func tridiagonal(n int, w float64) (diag, offdiag []float64) {
	diag = make([]float64, n)
	offdiag = make([]float64, n-1)

	c := math.Cos(2 * math.Pi * w)
	half := float64(n-1) / 2

	for i := range diag {
		d := half - float64(i)
		diag[i] = c * d * d
	}

	for i := range offdiag {
		offdiag[i] = float64(i+1) * float64(n-1-i) / 2
	}

	return diag, offdiag
}

// sturmCount returns the number of eigenvalues strictly below x.
func sturmCount(diag, offdiag []float64, x float64) int {
	const tiny = 1e-300

	count := 0
	q := diag[0] - x
	if q < 0 {
		count++
	}

	for i := 1; i < len(diag); i++ {
		if q == 0 {
			q = tiny
		}
		q = diag[i] - x - offdiag[i-1]*offdiag[i-1]/q
		if q < 0 {
			count++
		}
	}

	return count
}

// eigenvalueByIndex locates the eigenvalue with the given ascending index
// via bisection on the Sturm sequence count.
func eigenvalueByIndex(diag, offdiag []float64, index int) float64 {
	// Gershgorin bounds.
	lo := diag[0]
	hi := diag[0]
	for i := range diag {
		r := 0.0
		if i > 0 {
			r += math.Abs(offdiag[i-1])
		}
		if i < len(offdiag) {
			r += math.Abs(offdiag[i])
		}
		lo = math.Min(lo, diag[i]-r)
		hi = math.Max(hi, diag[i]+r)
	}

	for range 200 {
		mid := (lo + hi) / 2
		if mid == lo || mid == hi {
			break
		}
		if sturmCount(diag, offdiag, mid) <= index {
			lo = mid
		} else {
			hi = mid
		}
	}

	return (lo + hi) / 2
}

// inverseIteration refines the eigenvector for an accurate eigenvalue
// estimate by repeatedly solving (T - lambda*I) x = b.
func inverseIteration(diag, offdiag []float64, lambda float64) []float64 {
	n := len(diag)

	v := make([]float64, n)
	for i := range v {
		// Deterministic non-degenerate start vector.
		v[i] = 1 + 1e-3*float64(i%7)
	}
	normalize(v)

	for range 3 {
		v = solveShiftedTridiagonal(diag, offdiag, lambda, v)
		normalize(v)
	}

	return v
}

// solveShiftedTridiagonal solves (T - lambda*I) x = b using Gaussian
// elimination with partial pivoting. Pivoting introduces fill-in on a second
// superdiagonal, which is carried explicitly.
func solveShiftedTridiagonal(diag, offdiag []float64, lambda float64, b []float64) []float64 {
	const tiny = 1e-300

	n := len(diag)

	sub := make([]float64, n)   // subdiagonal, sub[i] couples rows i-1 and i
	main := make([]float64, n)  // main diagonal
	sup := make([]float64, n)   // first superdiagonal
	sup2 := make([]float64, n)  // fill-in second superdiagonal
	rhs := make([]float64, n)

	for i := range main {
		main[i] = diag[i] - lambda
	}
	for i := 0; i < n-1; i++ {
		sub[i+1] = offdiag[i]
		sup[i] = offdiag[i]
	}
	copy(rhs, b)

	// Forward elimination with row swaps.
	for i := 0; i < n-1; i++ {
		if math.Abs(sub[i+1]) > math.Abs(main[i]) {
			main[i], sub[i+1] = sub[i+1], main[i]
			sup[i], main[i+1] = main[i+1], sup[i]
			sup2[i], sup[i+1] = sup[i+1], sup2[i]
			rhs[i], rhs[i+1] = rhs[i+1], rhs[i]
		}

		if main[i] == 0 {
			main[i] = tiny
		}

		m := sub[i+1] / main[i]
		main[i+1] -= m * sup[i]
		sup[i+1] -= m * sup2[i]
		rhs[i+1] -= m * rhs[i]
	}

	if main[n-1] == 0 {
		main[n-1] = tiny
	}

	// Back substitution.
	x := make([]float64, n)
	x[n-1] = rhs[n-1] / main[n-1]
	if n >= 2 {
		x[n-2] = (rhs[n-2] - sup[n-2]*x[n-1]) / main[n-2]
	}
	for i := n - 3; i >= 0; i-- {
		x[i] = (rhs[i] - sup[i]*x[i+1] - sup2[i]*x[i+2]) / main[i]
	}

	return x
}

// orthogonalize removes the components of v along the given unit vectors
// (modified Gram-Schmidt pass).
func orthogonalize(v []float64, basis [][]float64) {
	for _, u := range basis {
		dot := 0.0
		for i := range v {
			dot += v[i] * u[i]
		}
		for i := range v {
			v[i] -= dot * u[i]
		}
	}
}

func normalize(v []float64) {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}

	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] *= inv
	}
}

// fixSign applies the usual polarity convention: symmetric tapers (even
// order) have positive mean, antisymmetric tapers (odd order) have positive
// first-moment slope.
func fixSign(v []float64, order int) {
	n := len(v)

	s := 0.0
	if order%2 == 0 {
		for _, x := range v {
			s += x
		}
	} else {
		for i, x := range v {
			s += float64(n-1-2*i) * x
		}
	}

	if s < 0 {
		for i := range v {
			v[i] = -v[i]
		}
	}
}

// concentrations evaluates lambda_j = v_j' S v_j, where S is the Dirichlet
// kernel matrix S[i][j] = sin(2*pi*w*(i-j)) / (pi*(i-j)). The matrix-vector
// product is a convolution and is applied via FFT.
func concentrations(tapers [][]float64, w float64) ([]float64, error) {
	n := len(tapers[0])
	fftSize := nextPowerOf2(2*n - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("dpss: failed to create FFT plan: %w", err)
	}

	// Circularly arranged even kernel: lag m at index m, lag -m at fftSize-m.
	kernel := make([]complex128, fftSize)
	kernel[0] = complex(2*w, 0)
	for m := 1; m < n; m++ {
		r := math.Sin(2*math.Pi*w*float64(m)) / (math.Pi * float64(m))
		kernel[m] = complex(r, 0)
		kernel[fftSize-m] = complex(r, 0)
	}

	kernelFreq := make([]complex128, fftSize)
	if err := plan.Forward(kernelFreq, kernel); err != nil {
		return nil, err
	}

	in := make([]complex128, fftSize)
	freq := make([]complex128, fftSize)
	out := make([]complex128, fftSize)

	conc := make([]float64, len(tapers))
	for j, v := range tapers {
		for i := range in {
			in[i] = 0
		}
		for i, x := range v {
			in[i] = complex(x, 0)
		}

		if err := plan.Forward(freq, in); err != nil {
			return nil, err
		}
		for i := range freq {
			freq[i] *= kernelFreq[i]
		}
		if err := plan.Inverse(out, freq); err != nil {
			return nil, err
		}

		dot := 0.0
		for i, x := range v {
			dot += x * real(out[i])
		}

		conc[j] = math.Min(1, math.Max(0, dot))
	}

	return conc, nil
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
