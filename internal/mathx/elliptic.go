package mathx

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// EllipticF computes Legendre's incomplete elliptic integral of the first
// kind F(phi|m) for any real amplitude phi and parameter 0 <= m < 1.
//
// gonum's mathext.EllipticF is restricted to amplitudes in [0, pi/2]; the
// amplitudes arising from the elliptic comoving distance formula come from
// arccos and reach pi, so the quasi-periodicity
//
//	F(phi + n*pi | m) = 2n K(m) + F(phi | m)
//
// together with oddness in phi is used to reduce the amplitude first.
func EllipticF(phi, m float64) float64 {
	n := math.Round(phi / math.Pi)
	phi -= n * math.Pi // now in [-pi/2, pi/2]

	var v float64
	if n != 0 {
		v = 2 * n * mathext.CompleteK(m)
	}
	if phi >= 0 {
		return v + mathext.EllipticF(phi, m)
	}
	return v - mathext.EllipticF(-phi, m)
}

// Clamp restricts x to [lo, hi]. It keeps inverse trigonometric arguments
// that drift past their domain by rounding inside it.
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
