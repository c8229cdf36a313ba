package cosmology

import (
	"math"

	"github.com/agbru/cosmocalc/internal/integrate"
)

// selectDarkEnergy binds the equation of state w(z) and the closed-form
// dark energy density scale for the model's shape. The density scale is
//
//	I(z) = exp(3 int_0^z (1 + w(z')) / (1 + z') dz')
//
// which every supported shape admits in closed form; the generic
// quadrature version is kept only as a cross-check.
func (c *FLRW) selectDarkEnergy() {
	switch c.shape {
	case ShapeLambdaCDM:
		c.wFn = func(float64) float64 { return -1 }
		c.deScaleFn = func(float64) float64 { return 1 }

	case ShapeWCDM:
		w0 := c.w0
		c.wFn = func(float64) float64 { return w0 }
		c.deScaleFn = func(z float64) float64 {
			return math.Pow(1+z, 3*(1+w0))
		}

	case ShapeW0WaCDM:
		w0, wa := c.w0, c.wa
		c.wFn = func(z float64) float64 {
			return w0 + wa*z/(1+z)
		}
		c.deScaleFn = func(z float64) float64 {
			opz := 1 + z
			return math.Pow(opz, 3*(1+w0+wa)) * math.Exp(-3*wa*z/opz)
		}

	case ShapeWpWaCDM:
		wp, wa := c.wp, c.wa
		apiv := 1 / (1 + c.zp)
		c.wFn = func(z float64) float64 {
			return wp + wa*(apiv-1/(1+z))
		}
		c.deScaleFn = func(z float64) float64 {
			opz := 1 + z
			return math.Pow(opz, 3*(1+wp+apiv*wa)) * math.Exp(-3*wa*z/opz)
		}

	case ShapeW0WzCDM:
		w0, wz := c.w0, c.wz
		c.wFn = func(z float64) float64 {
			return w0 + wz*z
		}
		c.deScaleFn = func(z float64) float64 {
			return math.Pow(1+z, 3*(1+w0-wz)) * math.Exp(-3*wz*z)
		}
	}
}

// deScaleQuadrature evaluates the density scale integral directly. The
// closed forms above are tested against it.
func (c *FLRW) deScaleQuadrature(z float64) (float64, error) {
	v, err := integrate.Quad(func(zp float64) float64 {
		return (1 + c.wFn(zp)) / (1 + zp)
	}, 0, z, integrate.Options{})
	if err != nil {
		return 0, err
	}
	return math.Exp(3 * v), nil
}
