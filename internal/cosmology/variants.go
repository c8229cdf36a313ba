package cosmology

// Variant constructors. Each takes the primary parameters of its shape
// positionally; radiation, neutrinos, baryons and labeling come in through
// options. The zero-radiation default (Tcmb0 = 0) keeps the fast
// closed-form strategies available for the cosmological constant variants.

func applyOptions(p Parameters, opts []Option) Parameters {
	st := optionState{p: &p}
	for _, opt := range opts {
		opt(&st)
	}
	if len(st.metaPatch) > 0 {
		p.Meta = st.metaPatch
	}
	return p
}

// NewLambdaCDM builds a cosmological-constant model with curvature.
func NewLambdaCDM(h0, om0, ode0 float64, opts ...Option) (*FLRW, error) {
	p := DefaultParameters()
	p.H0, p.Om0, p.Ode0 = h0, om0, ode0
	return newFLRW(ShapeLambdaCDM, false, applyOptions(p, opts))
}

// NewFlatLambdaCDM builds a spatially flat cosmological-constant model;
// the dark energy density is derived from flatness.
func NewFlatLambdaCDM(h0, om0 float64, opts ...Option) (*FLRW, error) {
	p := DefaultParameters()
	p.H0, p.Om0 = h0, om0
	return newFLRW(ShapeLambdaCDM, true, applyOptions(p, opts))
}

// NewWCDM builds a constant equation-of-state model with curvature.
func NewWCDM(h0, om0, ode0, w0 float64, opts ...Option) (*FLRW, error) {
	p := DefaultParameters()
	p.H0, p.Om0, p.Ode0, p.W0 = h0, om0, ode0, w0
	return newFLRW(ShapeWCDM, false, applyOptions(p, opts))
}

// NewFlatWCDM builds a spatially flat constant equation-of-state model.
func NewFlatWCDM(h0, om0, w0 float64, opts ...Option) (*FLRW, error) {
	p := DefaultParameters()
	p.H0, p.Om0, p.W0 = h0, om0, w0
	return newFLRW(ShapeWCDM, true, applyOptions(p, opts))
}

// NewW0WaCDM builds a CPL model, w(a) = w0 + wa (1-a), with curvature.
func NewW0WaCDM(h0, om0, ode0, w0, wa float64, opts ...Option) (*FLRW, error) {
	p := DefaultParameters()
	p.H0, p.Om0, p.Ode0, p.W0, p.Wa = h0, om0, ode0, w0, wa
	return newFLRW(ShapeW0WaCDM, false, applyOptions(p, opts))
}

// NewFlatW0WaCDM builds a spatially flat CPL model.
func NewFlatW0WaCDM(h0, om0, w0, wa float64, opts ...Option) (*FLRW, error) {
	p := DefaultParameters()
	p.H0, p.Om0, p.W0, p.Wa = h0, om0, w0, wa
	return newFLRW(ShapeW0WaCDM, true, applyOptions(p, opts))
}

// NewWpWaCDM builds a pivot-anchored CPL model,
// w(a) = wp + wa (a_p - a) with a_p = 1/(1+zp), with curvature.
func NewWpWaCDM(h0, om0, ode0, wp, wa, zp float64, opts ...Option) (*FLRW, error) {
	p := DefaultParameters()
	p.H0, p.Om0, p.Ode0, p.Wp, p.Wa, p.Zp = h0, om0, ode0, wp, wa, zp
	return newFLRW(ShapeWpWaCDM, false, applyOptions(p, opts))
}

// NewFlatWpWaCDM builds a spatially flat pivot-anchored CPL model.
func NewFlatWpWaCDM(h0, om0, wp, wa, zp float64, opts ...Option) (*FLRW, error) {
	p := DefaultParameters()
	p.H0, p.Om0, p.Wp, p.Wa, p.Zp = h0, om0, wp, wa, zp
	return newFLRW(ShapeWpWaCDM, true, applyOptions(p, opts))
}

// NewW0WzCDM builds a model with w(z) = w0 + wz z and curvature.
func NewW0WzCDM(h0, om0, ode0, w0, wz float64, opts ...Option) (*FLRW, error) {
	p := DefaultParameters()
	p.H0, p.Om0, p.Ode0, p.W0, p.Wz = h0, om0, ode0, w0, wz
	return newFLRW(ShapeW0WzCDM, false, applyOptions(p, opts))
}

// NewFlatW0WzCDM builds a spatially flat model with w(z) = w0 + wz z.
func NewFlatW0WzCDM(h0, om0, w0, wz float64, opts ...Option) (*FLRW, error) {
	p := DefaultParameters()
	p.H0, p.Om0, p.W0, p.Wz = h0, om0, w0, wz
	return newFLRW(ShapeW0WzCDM, true, applyOptions(p, opts))
}
