package cosmology

import "math"

// selectKernels builds the E(z) and 1/E(z) closures. The squared Hubble
// function is
//
//	E^2(z) = (1+z)^2 [ (Or(z)(1+z) + Om0)(1+z) + Ok0 ] + Ode0 I(z)
//
// with the radiation term Or(z) constant for massless neutrinos and
// z-dependent for massive ones. The branch taken here fixes the closure
// for the lifetime of the model: no radiation, massless neutrinos, or
// massive neutrinos, each with the cosmological constant specialization
// that skips the density scale call.
func (c *FLRW) selectKernels() {
	om0, ok0, ode0 := c.om0, c.ok0, c.ode0
	isLambda := c.shape == ShapeLambdaCDM
	deScale := c.deScaleFn

	var esq func(float64) float64
	switch {
	case c.tcmb0 == 0:
		if isLambda {
			esq = func(z float64) float64 {
				opz := 1 + z
				return opz*opz*(opz*om0+ok0) + ode0
			}
		} else {
			esq = func(z float64) float64 {
				opz := 1 + z
				return opz*opz*(opz*om0+ok0) + ode0*deScale(z)
			}
		}

	case !c.massiveNu:
		or0 := c.ogamma0 + c.onu0
		if isLambda {
			esq = func(z float64) float64 {
				opz := 1 + z
				return opz*opz*((or0*opz+om0)*opz+ok0) + ode0
			}
		} else {
			esq = func(z float64) float64 {
				opz := 1 + z
				return opz*opz*((or0*opz+om0)*opz+ok0) + ode0*deScale(z)
			}
		}

	default:
		ogamma0 := c.ogamma0
		if isLambda {
			esq = func(z float64) float64 {
				opz := 1 + z
				or := ogamma0 * (1 + c.NuRelativeDensity(z))
				return opz*opz*((or*opz+om0)*opz+ok0) + ode0
			}
		} else {
			esq = func(z float64) float64 {
				opz := 1 + z
				or := ogamma0 * (1 + c.NuRelativeDensity(z))
				return opz*opz*((or*opz+om0)*opz+ok0) + ode0*deScale(z)
			}
		}
	}

	c.efuncFn = func(z float64) float64 { return math.Sqrt(esq(z)) }
	c.invEfuncFn = func(z float64) float64 { return 1 / math.Sqrt(esq(z)) }
}
