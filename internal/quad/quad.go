// Package quad provides composite quadrature rules for uniformly sampled
// functions, as needed by band-limited spectral integration.
package quad

// Trapezoid integrates values sampled with uniform spacing dx using the
// composite trapezoidal rule. Fewer than two samples integrate to zero.
func Trapezoid(values []float64, dx float64) float64 {
	n := len(values)
	if n < 2 || dx <= 0 {
		return 0
	}

	sum := (values[0] + values[n-1]) / 2
	for i := 1; i < n-1; i++ {
		sum += values[i]
	}

	return sum * dx
}

// Simpson integrates values sampled with uniform spacing dx using the
// composite Simpson rule.
//
// Simpson's rule requires an even number of intervals. When the sample count
// is even, the largest odd prefix is integrated with Simpson and the final
// interval is closed with a trapezoid. Fewer than three samples fall back to
// [Trapezoid].
func Simpson(values []float64, dx float64) float64 {
	n := len(values)
	if n < 3 || dx <= 0 {
		return Trapezoid(values, dx)
	}

	// Largest prefix with an even interval count.
	m := n
	if m%2 == 0 {
		m--
	}

	sum := values[0] + values[m-1]
	for i := 1; i < m-1; i++ {
		if i%2 == 1 {
			sum += 4 * values[i]
		} else {
			sum += 2 * values[i]
		}
	}

	total := sum * dx / 3

	if m < n {
		total += (values[n-2] + values[n-1]) / 2 * dx
	}

	return total
}
