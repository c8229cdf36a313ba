package cosmology

type optionState struct {
	p *Parameters

	// nameSet records an explicit WithName, which suppresses the
	// " (modified)" suffix on clones.
	nameSet bool
	// changed records whether any physical parameter was touched.
	changed bool

	metaPatch map[string]any
}

// Option adjusts a parameter before construction. Options are accepted by
// the variant constructors for the secondary parameters (radiation,
// neutrinos, baryons, labeling) and by Clone for every parameter.
type Option func(*optionState)

// WithName sets the model label.
func WithName(name string) Option {
	return func(s *optionState) {
		s.p.Name = name
		s.nameSet = true
	}
}

// WithMeta attaches metadata entries. On Clone the entries are merged over
// the existing metadata.
func WithMeta(meta map[string]any) Option {
	return func(s *optionState) {
		if s.metaPatch == nil {
			s.metaPatch = make(map[string]any, len(meta))
		}
		for k, v := range meta {
			s.metaPatch[k] = v
		}
	}
}

// WithTcmb0 sets the present-day CMB temperature in K. A non-zero value
// switches on photon and neutrino radiation.
func WithTcmb0(tcmb0 float64) Option {
	return func(s *optionState) {
		s.p.Tcmb0 = tcmb0
		s.changed = true
	}
}

// WithNeff sets the effective number of neutrino species.
func WithNeff(neff float64) Option {
	return func(s *optionState) {
		s.p.Neff = neff
		s.changed = true
	}
}

// WithMNu sets the neutrino masses in eV. A single mass is shared by every
// species; otherwise one mass per species is required.
func WithMNu(masses ...float64) Option {
	return func(s *optionState) {
		s.p.MNu = append([]float64(nil), masses...)
		s.changed = true
	}
}

// WithOb0 sets the baryon density parameter at z=0.
func WithOb0(ob0 float64) Option {
	return func(s *optionState) {
		v := ob0
		s.p.Ob0 = &v
		s.changed = true
	}
}

// WithH0 replaces the Hubble constant. Only meaningful on Clone.
func WithH0(h0 float64) Option {
	return func(s *optionState) {
		s.p.H0 = h0
		s.changed = true
	}
}

// WithOm0 replaces the matter density. Only meaningful on Clone.
func WithOm0(om0 float64) Option {
	return func(s *optionState) {
		s.p.Om0 = om0
		s.changed = true
	}
}

// WithOde0 replaces the dark energy density. Ignored by flat variants,
// which derive it.
func WithOde0(ode0 float64) Option {
	return func(s *optionState) {
		s.p.Ode0 = ode0
		s.changed = true
	}
}

// WithW0 replaces the present-day equation of state parameter.
func WithW0(w0 float64) Option {
	return func(s *optionState) {
		s.p.W0 = w0
		s.changed = true
	}
}

// WithWa replaces the evolution parameter of the CPL forms.
func WithWa(wa float64) Option {
	return func(s *optionState) {
		s.p.Wa = wa
		s.changed = true
	}
}

// WithWp replaces the pivot equation of state parameter.
func WithWp(wp float64) Option {
	return func(s *optionState) {
		s.p.Wp = wp
		s.changed = true
	}
}

// WithZp replaces the pivot redshift.
func WithZp(zp float64) Option {
	return func(s *optionState) {
		s.p.Zp = zp
		s.changed = true
	}
}

// WithWz replaces the linear-in-z evolution parameter.
func WithWz(wz float64) Option {
	return func(s *optionState) {
		s.p.Wz = wz
		s.changed = true
	}
}
