// Package cosmology implements homogeneous, isotropic FLRW
// (Friedmann-Lemaitre-Robertson-Walker) background cosmologies and the
// distance, age and density measures derived from them.
//
// A model is described by its Hubble constant, the present-day density
// parameters of its components (matter, dark energy, curvature, photons,
// neutrinos) and a dark energy equation of state. Five equation-of-state
// shapes are supported, each in a flat and a curved variant; flat variants
// derive the dark energy density from the requirement that the densities
// sum to unity.
//
// All models are immutable after construction. Construction selects
// closed-form evaluation strategies wherever the parameter combination
// admits them and falls back to adaptive quadrature otherwise, so a single
// call site gets the fastest correct method without caring which one runs.
package cosmology

import (
	"fmt"
	"math"
	"strings"

	apperrors "github.com/agbru/cosmocalc/internal/errors"
)

// Parameters collects the named construction parameters of a model.
// Zero values are meaningful (a cold, radiation-free universe has
// Tcmb0 = 0), so variant constructors fill in conventional defaults
// before applying options.
type Parameters struct {
	// H0 is the Hubble constant at z=0 in km/s/Mpc.
	H0 float64
	// Om0 is the non-relativistic matter density at z=0 in units of the
	// critical density.
	Om0 float64
	// Ode0 is the dark energy density at z=0 in units of the critical
	// density. Ignored by flat variants, which derive it.
	Ode0 float64

	// Equation of state parameters. Which of these are meaningful depends
	// on the variant shape.
	W0 float64 // constant or present-day equation of state
	Wa float64 // evolution parameter (CPL and pivot forms)
	Wp float64 // equation of state at the pivot redshift
	Zp float64 // pivot redshift
	Wz float64 // linear-in-z evolution parameter

	// Tcmb0 is the CMB temperature at z=0 in Kelvin. Zero disables all
	// radiation contributions.
	Tcmb0 float64
	// Neff is the effective number of neutrino species.
	Neff float64
	// MNu lists neutrino masses in eV. nil or empty means all species are
	// massless; a single element is broadcast to every species; otherwise
	// the length must equal floor(Neff).
	MNu []float64
	// Ob0 is the baryon density at z=0 in units of the critical density,
	// or nil when unknown.
	Ob0 *float64

	// Name is an optional label carried through clones and reports.
	Name string
	// Meta is arbitrary metadata. It never affects equality.
	Meta map[string]any
}

// DefaultParameters returns a Parameters value with the conventional
// defaults filled in: a cosmological-constant equation of state, the
// standard effective neutrino count and no radiation. Callers that build
// Parameters by hand (the registry, parameter files) should start from
// this value so that an omitted equation-of-state parameter means "the
// cosmological constant value" rather than zero.
func DefaultParameters() Parameters {
	return Parameters{
		W0:   -1,
		Wp:   -1,
		Neff: 3.04,
	}
}

// FLRW is an immutable FLRW cosmology realization. Values are created by
// the variant constructors (NewFlatLambdaCDM, NewW0WaCDM, ...), the
// registry (New) or a preset.
type FLRW struct {
	shape Shape
	flat  bool

	params Parameters

	// Primary parameters, unpacked for the hot paths.
	h0, om0, ode0, ok0 float64
	w0, wa, wp, zp, wz float64
	tcmb0, neff        float64
	ob0                float64
	hasOb0             bool

	// Derived quantities.
	h                float64 // dimensionless Hubble constant
	hubbleDistance   float64 // Mpc
	hubbleTime       float64 // Gyr
	criticalDensity0 float64 // g/cm^3
	ogamma0, onu0    float64
	tnu0             float64

	// Neutrino bookkeeping.
	nNu         int
	nMasslessNu int
	massiveNu   bool
	nuMasses    []float64 // masses of the massive species, eV
	nuY         []float64 // m_nu c^2 / (kB Tnu0) per massive species
	neffPerNu   float64

	// Evaluation strategies, selected once at construction.
	wFn        func(float64) float64
	deScaleFn  func(float64) float64
	efuncFn    func(float64) float64
	invEfuncFn func(float64) float64

	comovingFn func(z1, z2 float64) (float64, error)
	ageFn      func(z float64) (float64, error)
	lookbackFn func(z float64) (float64, error)

	comovingMethod string
	ageMethod      string
	lookbackMethod string
}

// newFLRW validates the parameters, computes the derived quantities and
// selects the evaluation strategies. It is the single construction path
// shared by every variant constructor, the registry and Clone.
func newFLRW(shape Shape, flat bool, p Parameters) (*FLRW, error) {
	if err := validate(shape, flat, p); err != nil {
		return nil, err
	}

	c := &FLRW{
		shape:  shape,
		flat:   flat,
		params: p,
		h0:     p.H0,
		om0:    p.Om0,
		w0:     p.W0,
		wa:     p.Wa,
		wp:     p.Wp,
		zp:     p.Zp,
		wz:     p.Wz,
		tcmb0:  p.Tcmb0,
		neff:   p.Neff,
	}
	if p.Ob0 != nil {
		c.ob0 = *p.Ob0
		c.hasOb0 = true
	}

	c.h = c.h0 / 100
	c.hubbleDistance = CLight / c.h0
	h0s := c.h0 * h0ToInvSec
	c.hubbleTime = 1 / h0s / gyrInSec
	c.criticalDensity0 = critdensConst * h0s * h0s

	c.selectDarkEnergy()
	c.setupNeutrinos()

	if flat {
		c.ode0 = 1 - c.om0 - c.ogamma0 - c.onu0
		c.ok0 = 0
	} else {
		c.ode0 = p.Ode0
		c.ok0 = 1 - c.om0 - c.ode0 - c.ogamma0 - c.onu0
	}

	c.selectKernels()
	c.selectDistanceStrategies()
	return c, nil
}

func validate(shape Shape, flat bool, p Parameters) error {
	if math.IsNaN(p.H0) || math.IsInf(p.H0, 0) || p.H0 <= 0 {
		return apperrors.NewValidationError("H0", "must be positive and finite", p.H0)
	}
	if math.IsNaN(p.Om0) || math.IsInf(p.Om0, 0) || p.Om0 < 0 {
		return apperrors.NewValidationError("Om0", "cannot be negative", p.Om0)
	}
	if !flat && (math.IsNaN(p.Ode0) || math.IsInf(p.Ode0, 0)) {
		return apperrors.NewValidationError("Ode0", "must be finite", p.Ode0)
	}
	if math.IsNaN(p.Tcmb0) || math.IsInf(p.Tcmb0, 0) || p.Tcmb0 < 0 {
		return apperrors.NewValidationError("Tcmb0", "cannot be negative", p.Tcmb0)
	}
	if math.IsNaN(p.Neff) || math.IsInf(p.Neff, 0) || p.Neff < 0 {
		return apperrors.NewValidationError("Neff", "cannot be negative", p.Neff)
	}
	for _, m := range p.MNu {
		if math.IsNaN(m) || m < 0 {
			return apperrors.NewValidationError("m_nu", "masses cannot be negative", m)
		}
	}
	if p.Tcmb0 > 0 && len(p.MNu) > 1 && len(p.MNu) != int(math.Floor(p.Neff)) {
		return apperrors.NewValidationError("m_nu",
			fmt.Sprintf("expected %d masses, got %d", int(math.Floor(p.Neff)), len(p.MNu)),
			len(p.MNu))
	}
	if p.Ob0 != nil {
		if math.IsNaN(*p.Ob0) || *p.Ob0 < 0 {
			return apperrors.NewValidationError("Ob0", "cannot be negative", *p.Ob0)
		}
		if *p.Ob0 > p.Om0 {
			return apperrors.NewValidationError("Ob0",
				"baryonic density cannot exceed total matter density", *p.Ob0)
		}
	}
	for _, eos := range shapeParamNames[shape] {
		v := eosValue(p, eos)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return apperrors.NewValidationError(eos, "must be finite", v)
		}
	}
	return nil
}

func eosValue(p Parameters, name string) float64 {
	switch name {
	case "w0":
		return p.W0
	case "wa":
		return p.Wa
	case "wp":
		return p.Wp
	case "zp":
		return p.Zp
	case "wz":
		return p.Wz
	}
	return 0
}

// Shape returns the equation-of-state shape of the model.
func (c *FLRW) Shape() Shape { return c.shape }

// IsFlat reports whether the model was constructed as spatially flat.
func (c *FLRW) IsFlat() bool { return c.flat }

// Name returns the model label; it may be empty.
func (c *FLRW) Name() string { return c.params.Name }

// Meta returns the metadata map attached at construction. The map is
// shared, not copied; treat it as read-only.
func (c *FLRW) Meta() map[string]any { return c.params.Meta }

// H0 returns the Hubble constant at z=0 in km/s/Mpc.
func (c *FLRW) H0() float64 { return c.h0 }

// LittleH returns the dimensionless Hubble constant h = H0 / 100.
func (c *FLRW) LittleH() float64 { return c.h }

// Om0 returns the matter density parameter at z=0.
func (c *FLRW) Om0() float64 { return c.om0 }

// Ode0 returns the dark energy density parameter at z=0; for flat variants
// it is the derived value.
func (c *FLRW) Ode0() float64 { return c.ode0 }

// Ok0 returns the curvature density parameter at z=0. It is exactly zero
// for flat variants.
func (c *FLRW) Ok0() float64 { return c.ok0 }

// Ogamma0 returns the photon density parameter at z=0.
func (c *FLRW) Ogamma0() float64 { return c.ogamma0 }

// Onu0 returns the neutrino density parameter at z=0, including the
// rest-mass contribution of massive species.
func (c *FLRW) Onu0() float64 { return c.onu0 }

// Tcmb0 returns the CMB temperature at z=0 in K.
func (c *FLRW) Tcmb0() float64 { return c.tcmb0 }

// Tnu0 returns the neutrino background temperature at z=0 in K.
func (c *FLRW) Tnu0() float64 { return c.tnu0 }

// Neff returns the effective number of neutrino species.
func (c *FLRW) Neff() float64 { return c.neff }

// HasMassiveNu reports whether any neutrino species carries mass (and the
// model includes radiation at all).
func (c *FLRW) HasMassiveNu() bool { return c.massiveNu }

// MNu returns the neutrino masses in eV, one entry per species. The slice
// is freshly allocated.
func (c *FLRW) MNu() []float64 {
	out := make([]float64, 0, c.nNu)
	for i := 0; i < c.nMasslessNu; i++ {
		out = append(out, 0)
	}
	out = append(out, c.nuMasses...)
	return out
}

// Ob0 returns the baryon density parameter at z=0. It fails when the model
// was constructed without one.
func (c *FLRW) Ob0() (float64, error) {
	if !c.hasOb0 {
		return 0, apperrors.NewValidationError("Ob0", "baryonic density not set for this cosmology", nil)
	}
	return c.ob0, nil
}

// Odm0 returns the dark-matter-only density parameter at z=0. It fails
// when no baryon density was given.
func (c *FLRW) Odm0() (float64, error) {
	ob0, err := c.Ob0()
	if err != nil {
		return 0, apperrors.NewValidationError("Odm0", "dark matter density requires Ob0", nil)
	}
	return c.om0 - ob0, nil
}

// HubbleDistance returns c/H0 in Mpc.
func (c *FLRW) HubbleDistance() float64 { return c.hubbleDistance }

// HubbleTime returns 1/H0 in Gyr.
func (c *FLRW) HubbleTime() float64 { return c.hubbleTime }

// CriticalDensity0 returns the critical density at z=0 in g/cm^3.
func (c *FLRW) CriticalDensity0() float64 { return c.criticalDensity0 }

// Efunc evaluates E(z) = H(z)/H0.
func (c *FLRW) Efunc(z float64) float64 { return c.efuncFn(z) }

// InvEfunc evaluates 1/E(z). It is computed directly rather than by
// dividing, since it sits inside every distance integrand.
func (c *FLRW) InvEfunc(z float64) float64 { return c.invEfuncFn(z) }

// H returns the Hubble parameter at redshift z in km/s/Mpc.
func (c *FLRW) H(z float64) float64 { return c.h0 * c.efuncFn(z) }

// ScaleFactor returns a = 1/(1+z), normalized to unity today.
func (c *FLRW) ScaleFactor(z float64) float64 { return 1 / (1 + z) }

// W evaluates the dark energy equation of state w(z).
func (c *FLRW) W(z float64) float64 { return c.wFn(z) }

// DeDensityScale evaluates the dark energy density at redshift z relative
// to its present value.
func (c *FLRW) DeDensityScale(z float64) float64 { return c.deScaleFn(z) }

// Tcmb returns the CMB temperature at redshift z in K.
func (c *FLRW) Tcmb(z float64) float64 { return c.tcmb0 * (1 + z) }

// Tnu returns the neutrino background temperature at redshift z in K.
func (c *FLRW) Tnu(z float64) float64 { return c.tnu0 * (1 + z) }

// CriticalDensity returns the critical density at redshift z in g/cm^3.
func (c *FLRW) CriticalDensity(z float64) float64 {
	e := c.efuncFn(z)
	return c.criticalDensity0 * e * e
}

// Om returns the matter density parameter at redshift z.
func (c *FLRW) Om(z float64) float64 {
	opz := 1 + z
	inv := c.invEfuncFn(z)
	return c.om0 * opz * opz * opz * inv * inv
}

// Ob returns the baryon density parameter at redshift z. It fails when the
// model carries no baryon density.
func (c *FLRW) Ob(z float64) (float64, error) {
	ob0, err := c.Ob0()
	if err != nil {
		return 0, err
	}
	opz := 1 + z
	inv := c.invEfuncFn(z)
	return ob0 * opz * opz * opz * inv * inv, nil
}

// Odm returns the dark matter density parameter at redshift z. It fails
// when the model carries no baryon density.
func (c *FLRW) Odm(z float64) (float64, error) {
	odm0, err := c.Odm0()
	if err != nil {
		return 0, err
	}
	opz := 1 + z
	inv := c.invEfuncFn(z)
	return odm0 * opz * opz * opz * inv * inv, nil
}

// Ok returns the curvature density parameter at redshift z.
func (c *FLRW) Ok(z float64) float64 {
	if c.ok0 == 0 {
		return 0
	}
	opz := 1 + z
	inv := c.invEfuncFn(z)
	return c.ok0 * opz * opz * inv * inv
}

// Ode returns the dark energy density parameter at redshift z.
func (c *FLRW) Ode(z float64) float64 {
	if c.ode0 == 0 {
		return 0
	}
	inv := c.invEfuncFn(z)
	return c.ode0 * c.deScaleFn(z) * inv * inv
}

// Ogamma returns the photon density parameter at redshift z.
func (c *FLRW) Ogamma(z float64) float64 {
	opz := 1 + z
	inv := c.invEfuncFn(z)
	return c.ogamma0 * opz * opz * opz * opz * inv * inv
}

// Onu returns the neutrino density parameter at redshift z. For massive
// species this tracks the full energy density, not just the relativistic
// part.
func (c *FLRW) Onu(z float64) float64 {
	if c.massiveNu {
		return c.Ogamma(z) * c.NuRelativeDensity(z)
	}
	opz := 1 + z
	inv := c.invEfuncFn(z)
	return c.onu0 * opz * opz * opz * opz * inv * inv
}

// Equal reports whether two models describe the same physics: the same
// variant shape and flatness with element-wise identical construction
// parameters. Names and metadata are ignored.
func (c *FLRW) Equal(o *FLRW) bool {
	if o == nil {
		return false
	}
	if c.shape != o.shape || c.flat != o.flat {
		return false
	}
	if c.h0 != o.h0 || c.om0 != o.om0 || c.tcmb0 != o.tcmb0 || c.neff != o.neff {
		return false
	}
	if !c.flat && c.ode0 != o.ode0 {
		return false
	}
	if c.hasOb0 != o.hasOb0 || (c.hasOb0 && c.ob0 != o.ob0) {
		return false
	}
	m1, m2 := c.MNu(), o.MNu()
	if len(m1) != len(m2) {
		return false
	}
	for i := range m1 {
		if m1[i] != m2[i] {
			return false
		}
	}
	for _, name := range shapeParamNames[c.shape] {
		if eosValue(c.params, name) != eosValue(o.params, name) {
			return false
		}
	}
	return true
}

// Clone derives a new model from this one with some parameters replaced.
// Calling Clone with no options returns the receiver itself. If any
// physical parameter changes and no explicit name is given, the clone's
// name gains a " (modified)" suffix.
func (c *FLRW) Clone(opts ...Option) (*FLRW, error) {
	if len(opts) == 0 {
		return c, nil
	}

	p := c.params
	p.MNu = append([]float64(nil), c.params.MNu...)
	if c.params.Ob0 != nil {
		v := *c.params.Ob0
		p.Ob0 = &v
	}

	st := optionState{p: &p}
	for _, opt := range opts {
		opt(&st)
	}
	if len(st.metaPatch) > 0 {
		merged := make(map[string]any, len(c.params.Meta)+len(st.metaPatch))
		for k, v := range c.params.Meta {
			merged[k] = v
		}
		for k, v := range st.metaPatch {
			merged[k] = v
		}
		p.Meta = merged
	}
	if st.changed && !st.nameSet && p.Name != "" {
		p.Name += " (modified)"
	}
	return newFLRW(c.shape, c.flat, p)
}

// String renders the model in a single line, e.g.
//
//	FlatLambdaCDM(name="Planck18", H0=67.66, Om0=0.30966, Tcmb0=2.7255, Neff=3.046, m_nu=[0 0 0.06], Ob0=0.04897)
func (c *FLRW) String() string {
	var b strings.Builder
	b.WriteString(c.shape.displayName(c.flat))
	b.WriteByte('(')
	if c.params.Name != "" {
		fmt.Fprintf(&b, "name=%q, ", c.params.Name)
	}
	fmt.Fprintf(&b, "H0=%g, Om0=%g", c.h0, c.om0)
	if !c.flat {
		fmt.Fprintf(&b, ", Ode0=%g", c.ode0)
	}
	for _, name := range shapeParamNames[c.shape] {
		fmt.Fprintf(&b, ", %s=%g", name, eosValue(c.params, name))
	}
	fmt.Fprintf(&b, ", Tcmb0=%g, Neff=%g, m_nu=%v", c.tcmb0, c.neff, c.MNu())
	if c.hasOb0 {
		fmt.Fprintf(&b, ", Ob0=%g", c.ob0)
	}
	b.WriteByte(')')
	return b.String()
}
