package cosmology

import (
	"math"
	"math/cmplx"

	"github.com/rs/zerolog/log"

	apperrors "github.com/agbru/cosmocalc/internal/errors"
	"github.com/agbru/cosmocalc/internal/integrate"
	"github.com/agbru/cosmocalc/internal/mathx"
)

// Strategy method labels, also used for the metrics.
const (
	methodQuadrature = "quadrature"
	methodAnalytic   = "analytic"
)

// selectDistanceStrategies binds the comoving distance, age and lookback
// time implementations. The general case integrates 1/E numerically; a
// cosmological constant without radiation admits closed forms, which are
// substituted per parameter region:
//
//   - Om0 = 0, flat: de Sitter expressions.
//   - Om0 = 1, flat: Einstein-de Sitter expressions.
//   - 0 < Om0 < 1, flat: hypergeometric comoving distance and the
//     arcsinh age formula.
//   - Om0 > 1, flat (negative Ode0): the age formula still applies
//     through its complex continuation, the distance does not.
//   - curved: comoving distance via incomplete elliptic integrals where
//     the cubic root structure permits, quadrature otherwise.
func (c *FLRW) selectDistanceStrategies() {
	c.comovingFn = c.integralComovingZ1Z2
	c.ageFn = c.integralAge
	c.lookbackFn = c.integralLookback
	c.comovingMethod = methodQuadrature
	c.ageMethod = methodQuadrature
	c.lookbackMethod = methodQuadrature

	if c.shape != ShapeLambdaCDM || c.tcmb0 != 0 {
		return
	}

	if c.ok0 == 0 {
		switch {
		case c.om0 == 0:
			c.comovingFn = c.deSitterComovingZ1Z2
			c.ageFn = c.deSitterAge
			c.lookbackFn = c.deSitterLookback
			c.comovingMethod = methodAnalytic
		case c.om0 == 1:
			c.comovingFn = c.einsteinDeSitterComovingZ1Z2
			c.ageFn = c.einsteinDeSitterAge
			c.lookbackFn = c.einsteinDeSitterLookback
			c.comovingMethod = methodAnalytic
		default:
			c.ageFn = c.flatAge
			c.lookbackFn = c.flatLookback
			if c.om0 < 1 {
				c.comovingFn = c.hypergeometricComovingZ1Z2
				c.comovingMethod = methodAnalytic
			}
		}
		c.ageMethod = methodAnalytic
		c.lookbackMethod = methodAnalytic
		return
	}

	if c.om0 != 0 && c.ode0 != 0 {
		c.comovingFn = c.ellipticComovingZ1Z2
		c.comovingMethod = methodAnalytic
	}
}

// --- Comoving distance and friends -----------------------------------------

// ComovingDistance returns the line-of-sight comoving distance from z=0 to
// z in Mpc: the distance between two comoving objects remaining constant
// as the universe expands.
func (c *FLRW) ComovingDistance(z float64) (float64, error) {
	return c.ComovingDistanceZ1Z2(0, z)
}

// ComovingDistanceZ1Z2 returns the line-of-sight comoving distance between
// two redshifts in Mpc.
func (c *FLRW) ComovingDistanceZ1Z2(z1, z2 float64) (float64, error) {
	computations.WithLabelValues("comoving_distance", c.comovingMethod).Inc()
	d, err := c.comovingFn(z1, z2)
	if err != nil {
		computationFailures.Inc()
		return 0, apperrors.NewCalculationError("comoving distance", err)
	}
	return d, nil
}

// ComovingTransverseDistance returns the transverse comoving distance at z
// in Mpc: the comoving separation corresponding to a unit transverse
// angular separation. Equal to the line-of-sight distance when flat.
func (c *FLRW) ComovingTransverseDistance(z float64) (float64, error) {
	return c.ComovingTransverseDistanceZ1Z2(0, z)
}

// ComovingTransverseDistanceZ1Z2 returns the transverse comoving distance
// between two redshifts in Mpc.
func (c *FLRW) ComovingTransverseDistanceZ1Z2(z1, z2 float64) (float64, error) {
	dc, err := c.ComovingDistanceZ1Z2(z1, z2)
	if err != nil {
		return 0, err
	}
	if c.ok0 == 0 {
		return dc, nil
	}
	sqrtOk0 := math.Sqrt(math.Abs(c.ok0))
	x := sqrtOk0 * dc / c.hubbleDistance
	if c.ok0 > 0 {
		return c.hubbleDistance / sqrtOk0 * math.Sinh(x), nil
	}
	return c.hubbleDistance / sqrtOk0 * math.Sin(x), nil
}

// AngularDiameterDistance returns the angular diameter distance at z in
// Mpc: the ratio of an object's physical transverse size to its angular
// size. Not monotonic; it peaks near z ~ 1-2 and then declines.
func (c *FLRW) AngularDiameterDistance(z float64) (float64, error) {
	dm, err := c.ComovingTransverseDistance(z)
	if err != nil {
		return 0, err
	}
	return dm / (1 + z), nil
}

// AngularDiameterDistanceZ1Z2 returns the angular diameter distance
// between two redshifts in Mpc, as used in gravitational lensing. The
// result is negative for z2 < z1, which rarely means what the caller
// wants; a warning is logged when that happens.
func (c *FLRW) AngularDiameterDistanceZ1Z2(z1, z2 float64) (float64, error) {
	if z2 < z1 {
		log.Warn().Float64("z1", z1).Float64("z2", z2).
			Msg("angular diameter distance requested for z2 < z1; result will be negative")
	}
	dm, err := c.ComovingTransverseDistanceZ1Z2(z1, z2)
	if err != nil {
		return 0, err
	}
	return dm / (1 + z2), nil
}

// LuminosityDistance returns the luminosity distance at z in Mpc,
// relating bolometric flux to bolometric luminosity.
func (c *FLRW) LuminosityDistance(z float64) (float64, error) {
	dm, err := c.ComovingTransverseDistance(z)
	if err != nil {
		return 0, err
	}
	return (1 + z) * dm, nil
}

// DistMod returns the distance modulus at z in magnitudes,
// 5 log10(d_L / 10 pc).
func (c *FLRW) DistMod(z float64) (float64, error) {
	dl, err := c.LuminosityDistance(z)
	if err != nil {
		return 0, err
	}
	// d_L in Mpc; the +25 carries the conversion to 10 pc.
	return 5*math.Log10(math.Abs(dl)) + 25, nil
}

// LookbackDistance returns c times the lookback time in Mpc: the light
// travel distance to an object at redshift z.
func (c *FLRW) LookbackDistance(z float64) (float64, error) {
	t, err := c.LookbackTime(z)
	if err != nil {
		return 0, err
	}
	return t * gyrInSec * cCmPerS / mpcInCm, nil
}

// AbsorptionDistance returns the dimensionless absorption distance at z,
// used to predict the incidence of absorption line systems of constant
// comoving density crossing a sightline.
func (c *FLRW) AbsorptionDistance(z float64) (float64, error) {
	computations.WithLabelValues("absorption_distance", methodQuadrature).Inc()
	v, err := integrate.Quad(func(zp float64) float64 {
		opz := 1 + zp
		return opz * opz * c.invEfuncFn(zp)
	}, 0, z, integrate.Options{})
	if err != nil {
		computationFailures.Inc()
		return 0, apperrors.NewCalculationError("absorption distance", err)
	}
	return v, nil
}

// --- Ages and times --------------------------------------------------------

// Age returns the age of the universe at redshift z in Gyr.
func (c *FLRW) Age(z float64) (float64, error) {
	computations.WithLabelValues("age", c.ageMethod).Inc()
	t, err := c.ageFn(z)
	if err != nil {
		computationFailures.Inc()
		return 0, apperrors.NewCalculationError("age", err)
	}
	return t, nil
}

// LookbackTime returns the time in Gyr elapsed between redshift z and the
// present.
func (c *FLRW) LookbackTime(z float64) (float64, error) {
	computations.WithLabelValues("lookback_time", c.lookbackMethod).Inc()
	t, err := c.lookbackFn(z)
	if err != nil {
		computationFailures.Inc()
		return 0, apperrors.NewCalculationError("lookback time", err)
	}
	return t, nil
}

// --- Volumes ---------------------------------------------------------------

// ComovingVolume returns the comoving volume in Mpc^3 enclosed within a
// full sky out to redshift z.
func (c *FLRW) ComovingVolume(z float64) (float64, error) {
	if c.ok0 == 0 {
		dc, err := c.ComovingDistance(z)
		if err != nil {
			return 0, err
		}
		return 4 * math.Pi / 3 * dc * dc * dc, nil
	}

	dm, err := c.ComovingTransverseDistance(z)
	if err != nil {
		return 0, err
	}
	dh := c.hubbleDistance
	x := dm / dh
	sqrtAbsOk0 := math.Sqrt(math.Abs(c.ok0))
	term1 := 4 * math.Pi * dh * dh * dh / (2 * c.ok0)
	term2 := x * math.Sqrt(1+c.ok0*x*x)
	term3 := sqrtAbsOk0 * x
	if c.ok0 > 0 {
		return term1 * (term2 - math.Asinh(term3)/sqrtAbsOk0), nil
	}
	return term1 * (term2 - math.Asin(term3)/sqrtAbsOk0), nil
}

// DifferentialComovingVolume returns the differential comoving volume at
// redshift z in Mpc^3 per steradian per unit redshift.
func (c *FLRW) DifferentialComovingVolume(z float64) (float64, error) {
	dm, err := c.ComovingTransverseDistance(z)
	if err != nil {
		return 0, err
	}
	return c.hubbleDistance * dm * dm * c.invEfuncFn(z), nil
}

// --- Angular scales --------------------------------------------------------

// KpcComovingPerArcmin returns the comoving transverse separation in kpc
// corresponding to one arcminute at redshift z.
func (c *FLRW) KpcComovingPerArcmin(z float64) (float64, error) {
	dm, err := c.ComovingTransverseDistance(z)
	if err != nil {
		return 0, err
	}
	return dm * 1000 * arcminInRad, nil
}

// KpcProperPerArcmin returns the proper transverse separation in kpc
// corresponding to one arcminute at redshift z.
func (c *FLRW) KpcProperPerArcmin(z float64) (float64, error) {
	da, err := c.AngularDiameterDistance(z)
	if err != nil {
		return 0, err
	}
	return da * 1000 * arcminInRad, nil
}

// ArcsecPerKpcComoving returns the angular separation in arcsec
// corresponding to one comoving kpc at redshift z.
func (c *FLRW) ArcsecPerKpcComoving(z float64) (float64, error) {
	dm, err := c.ComovingTransverseDistance(z)
	if err != nil {
		return 0, err
	}
	return 1 / (dm * 1000 * arcsecInRad), nil
}

// ArcsecPerKpcProper returns the angular separation in arcsec
// corresponding to one proper kpc at redshift z.
func (c *FLRW) ArcsecPerKpcProper(z float64) (float64, error) {
	da, err := c.AngularDiameterDistance(z)
	if err != nil {
		return 0, err
	}
	return 1 / (da * 1000 * arcsecInRad), nil
}

// --- Quadrature strategies -------------------------------------------------

func (c *FLRW) integralComovingZ1Z2(z1, z2 float64) (float64, error) {
	v, err := integrate.Quad(c.invEfuncFn, z1, z2, integrate.Options{})
	if err != nil {
		return 0, err
	}
	return c.hubbleDistance * v, nil
}

// integralAge evaluates T_H int_z^inf dz' / ((1+z') E(z')) after the
// substitution u = 1/(1+z'), which maps the infinite tail onto (0, 1/(1+z)]
// with an integrable endpoint.
func (c *FLRW) integralAge(z float64) (float64, error) {
	v, err := integrate.Quad(func(u float64) float64 {
		return c.invEfuncFn(1/u-1) / u
	}, 0, 1/(1+z), integrate.Options{})
	if err != nil {
		return 0, err
	}
	return c.hubbleTime * v, nil
}

func (c *FLRW) integralLookback(z float64) (float64, error) {
	v, err := integrate.Quad(func(zp float64) float64 {
		return c.invEfuncFn(zp) / (1 + zp)
	}, 0, z, integrate.Options{})
	if err != nil {
		return 0, err
	}
	return c.hubbleTime * v, nil
}

// --- de Sitter strategies (flat, Om0 = 0, no radiation) --------------------

func (c *FLRW) deSitterComovingZ1Z2(z1, z2 float64) (float64, error) {
	return c.hubbleDistance * (z2 - z1), nil
}

func (c *FLRW) deSitterAge(float64) (float64, error) {
	// Exponential expansion has no beginning.
	return math.Inf(1), nil
}

func (c *FLRW) deSitterLookback(z float64) (float64, error) {
	return c.hubbleTime * math.Log1p(z), nil
}

// --- Einstein-de Sitter strategies (flat, Om0 = 1, no radiation) -----------

func (c *FLRW) einsteinDeSitterComovingZ1Z2(z1, z2 float64) (float64, error) {
	return 2 * c.hubbleDistance * (1/math.Sqrt(1+z1) - 1/math.Sqrt(1+z2)), nil
}

func (c *FLRW) einsteinDeSitterAge(z float64) (float64, error) {
	return 2. / 3 * c.hubbleTime * math.Pow(1+z, -1.5), nil
}

func (c *FLRW) einsteinDeSitterLookback(z float64) (float64, error) {
	return 2. / 3 * c.hubbleTime * (1 - math.Pow(1+z, -1.5)), nil
}

// --- Flat LambdaCDM closed forms (no radiation) ----------------------------

// hypergeometricT evaluates the auxiliary function
// T(x) = 2 sqrt(x) 2F1(1/6, 1/2; 7/6; -x^3) of Baes, Camps &
// Van De Putte (2017); differences of T give the comoving distance
// integral for flat matter plus cosmological constant models.
func hypergeometricT(x float64) float64 {
	return 2 * math.Sqrt(x) * mathx.Hyp2F1(1./6, 0.5, 7./6, -x*x*x)
}

func (c *FLRW) hypergeometricComovingZ1Z2(z1, z2 float64) (float64, error) {
	s := math.Cbrt((1 - c.om0) / c.om0)
	prefactor := c.hubbleDistance / math.Sqrt(s*c.om0)
	d := prefactor * (hypergeometricT(s/(1+z1)) - hypergeometricT(s/(1+z2)))
	if math.IsNaN(d) {
		return c.integralComovingZ1Z2(z1, z2)
	}
	return d, nil
}

// flatAge evaluates the closed-form age
//
//	t(z) = (2 T_H / 3 sqrt(1-Om0)) arcsinh(sqrt((1/Om0 - 1) / (1+z)^3))
//
// through its complex continuation. For Om0 > 1 both the prefactor and the
// arcsinh argument become imaginary and the imaginary parts cancel, so the
// same expression covers matter densities on either side of unity; only
// Om0 = 1 itself needs the separate Einstein-de Sitter form.
func (c *FLRW) flatAge(z float64) (float64, error) {
	opz := 1 + z
	prefactor := complex(2*c.hubbleTime/3, 0) / cmplx.Sqrt(complex(1-c.om0, 0))
	arg := cmplx.Asinh(cmplx.Sqrt(complex((1/c.om0-1)/(opz*opz*opz), 0)))
	return real(prefactor * arg), nil
}

func (c *FLRW) flatLookback(z float64) (float64, error) {
	t0, _ := c.flatAge(0)
	tz, _ := c.flatAge(z)
	return t0 - tz, nil
}

// --- Curved LambdaCDM elliptic strategy (no radiation) ---------------------

// ellipticComovingZ1Z2 evaluates the comoving distance for a curved
// cosmological-constant model in terms of incomplete elliptic integrals of
// the first kind (Kantowski, Kao & Thomas 2000; Baes, Camps & Van De Putte
// 2017). The reduction depends on the roots of a cubic through
//
//	b = -27/2 Om0^2 Ode0 / Ok0^3
//
// and covers b < 0, b > 2, and 0 < b < 2 with Om0 > Ode0. Parameter
// regions without a usable real root fall back to quadrature.
func (c *FLRW) ellipticComovingZ1Z2(z1, z2 float64) (float64, error) {
	b := -13.5 * c.om0 * c.om0 * c.ode0 / (c.ok0 * c.ok0 * c.ok0)
	absOk0 := math.Abs(c.ok0)

	var g, k2, phi1, phi2 float64
	switch {
	case b < 0 || b > 2:
		kappa := -1.0
		if b > 2 {
			kappa = 1.0
		}
		vk := math.Cbrt(kappa*(b-1) + math.Sqrt(b*(b-2)))
		y1 := (-1 + kappa*(vk+1/vk)) / 3
		a := math.Sqrt(y1 * (3*y1 + 2))
		g = 1 / math.Sqrt(a)
		k2 = (2*a + kappa*(1+3*y1)) / (4 * a)

		phi := func(z float64) float64 {
			t := (1 + z) * c.om0 / absOk0
			return math.Acos(mathx.Clamp((t+kappa*y1-a)/(t+kappa*y1+a), -1, 1))
		}
		phi1, phi2 = phi(z1), phi(z2)

	case b > 0 && c.om0 > c.ode0:
		theta := math.Acos(1-b) / 3
		yb := math.Cos(theta)
		yc := math.Sqrt(3) * math.Sin(theta)
		y1 := (-1 + yb + yc) / 3
		y2 := (-1 - 2*yb) / 3
		y3 := (-1 + yb - yc) / 3
		g = 2 / math.Sqrt(y1-y2)
		k2 = (y1 - y3) / (y1 - y2)

		phi := func(z float64) float64 {
			t := (1 + z) * c.om0 / absOk0
			return math.Asin(mathx.Clamp(math.Sqrt((y1-y2)/(t+y1)), -1, 1))
		}
		phi1, phi2 = phi(z1), phi(z2)

	default:
		return c.integralComovingZ1Z2(z1, z2)
	}

	if math.IsNaN(g) || math.IsNaN(k2) || k2 < 0 || k2 >= 1 {
		return c.integralComovingZ1Z2(z1, z2)
	}
	prefactor := c.hubbleDistance / math.Sqrt(absOk0)
	return prefactor * g * (mathx.EllipticF(phi1, k2) - mathx.EllipticF(phi2, k2)), nil
}
