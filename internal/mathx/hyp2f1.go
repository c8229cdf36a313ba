// Package mathx supplies the special functions needed by the closed-form
// distance expressions: the Gauss hypergeometric function 2F1 for real
// negative argument, and Legendre's incomplete elliptic integral of the
// first kind extended beyond the first quadrant.
package mathx

import "math"

const (
	seriesTol      = 1e-16
	seriesMaxTerms = 500
)

// Hyp2F1 computes the Gauss hypergeometric function 2F1(a, b; c; z) for
// real parameters and z < 1. The comoving distance expression for flat
// matter-dominated models evaluates it at z = -x^3 <= 0, so the negative
// axis is the case that matters; it is handled with the Pfaff
// transformation for moderate arguments and the large-argument connection
// formula when z < -1.
//
// c must not be a non-positive integer. Outside z < 1 the function returns
// NaN.
func Hyp2F1(a, b, c, z float64) float64 {
	switch {
	case z >= 1:
		return math.NaN()
	case z == 0:
		return 1
	case z < -1:
		return hyp2f1LargeNeg(a, b, c, z)
	case z < 0:
		// Pfaff: 2F1(a,b;c;z) = (1-z)^(-a) 2F1(a, c-b; c; z/(z-1)).
		// For z in [-1, 0) the transformed argument lies in (0, 1/2].
		w := z / (z - 1)
		return math.Pow(1-z, -a) * hyp2f1Series(a, c-b, c, w)
	default:
		return hyp2f1Series(a, b, c, z)
	}
}

// hyp2f1Series sums the defining power series. Convergence requires |z| < 1;
// callers arrange |z| <= 1/2 so the series terminates quickly.
func hyp2f1Series(a, b, c, z float64) float64 {
	sum, term := 1.0, 1.0
	for n := 0; n < seriesMaxTerms; n++ {
		fn := float64(n)
		term *= (a + fn) * (b + fn) / ((c + fn) * (fn + 1)) * z
		sum += term
		if math.Abs(term) < seriesTol*math.Abs(sum) {
			return sum
		}
	}
	return sum
}

// hyp2f1LargeNeg applies the |z| -> inf connection formula (DLMF 15.8.2),
// valid when a-b is not an integer:
//
//	2F1(a,b;c;z) = G(c)G(b-a)/(G(b)G(c-a)) (-z)^(-a) 2F1(a, a-c+1; a-b+1; 1/z)
//	             + G(c)G(a-b)/(G(a)G(c-b)) (-z)^(-b) 2F1(b, b-c+1; b-a+1; 1/z)
//
// The recursive calls see 1/z in (-1, 0) and take the Pfaff branch.
func hyp2f1LargeNeg(a, b, c, z float64) float64 {
	gc := math.Gamma(c)
	t1 := gc * math.Gamma(b-a) / (math.Gamma(b) * math.Gamma(c-a)) *
		math.Pow(-z, -a) * Hyp2F1(a, a-c+1, a-b+1, 1/z)
	t2 := gc * math.Gamma(a-b) / (math.Gamma(a) * math.Gamma(c-b)) *
		math.Pow(-z, -b) * Hyp2F1(b, b-c+1, b-a+1, 1/z)
	return t1 + t2
}
