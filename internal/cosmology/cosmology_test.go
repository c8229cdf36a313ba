package cosmology

import (
	"errors"
	"math"
	"strings"
	"testing"

	apperrors "github.com/agbru/cosmocalc/internal/errors"
)

func almostEqual(t *testing.T, got, want, tol float64, what string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %.12g, want %.12g (tol %g)", what, got, want, tol)
	}
}

func relEqual(t *testing.T, got, want, tol float64, what string) {
	t.Helper()
	if math.Abs(got-want) > tol*math.Abs(want) {
		t.Errorf("%s = %.12g, want %.12g (rel tol %g)", what, got, want, tol)
	}
}

func TestConstructionValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		build func() (*FLRW, error)
		field string
	}{
		{
			name:  "negative H0",
			build: func() (*FLRW, error) { return NewFlatLambdaCDM(-70, 0.3) },
			field: "H0",
		},
		{
			name:  "zero H0",
			build: func() (*FLRW, error) { return NewFlatLambdaCDM(0, 0.3) },
			field: "H0",
		},
		{
			name:  "NaN H0",
			build: func() (*FLRW, error) { return NewFlatLambdaCDM(math.NaN(), 0.3) },
			field: "H0",
		},
		{
			name:  "negative Om0",
			build: func() (*FLRW, error) { return NewLambdaCDM(70, -0.1, 0.7) },
			field: "Om0",
		},
		{
			name:  "NaN Ode0 on curved variant",
			build: func() (*FLRW, error) { return NewLambdaCDM(70, 0.3, math.NaN()) },
			field: "Ode0",
		},
		{
			name:  "negative Tcmb0",
			build: func() (*FLRW, error) { return NewFlatLambdaCDM(70, 0.3, WithTcmb0(-2.7)) },
			field: "Tcmb0",
		},
		{
			name:  "negative Neff",
			build: func() (*FLRW, error) { return NewFlatLambdaCDM(70, 0.3, WithNeff(-1)) },
			field: "Neff",
		},
		{
			name: "negative neutrino mass",
			build: func() (*FLRW, error) {
				return NewFlatLambdaCDM(70, 0.3, WithTcmb0(2.7255), WithMNu(0, 0, -0.06))
			},
			field: "m_nu",
		},
		{
			name: "mass count does not match floor(Neff)",
			build: func() (*FLRW, error) {
				return NewFlatLambdaCDM(70, 0.3, WithTcmb0(2.7255), WithNeff(3.046), WithMNu(0, 0.06))
			},
			field: "m_nu",
		},
		{
			name:  "negative Ob0",
			build: func() (*FLRW, error) { return NewFlatLambdaCDM(70, 0.3, WithOb0(-0.01)) },
			field: "Ob0",
		},
		{
			name:  "Ob0 exceeds Om0",
			build: func() (*FLRW, error) { return NewFlatLambdaCDM(70, 0.3, WithOb0(0.4)) },
			field: "Ob0",
		},
		{
			name:  "non-finite w0",
			build: func() (*FLRW, error) { return NewFlatWCDM(70, 0.3, math.Inf(-1)) },
			field: "w0",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.build()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			var valErr apperrors.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if valErr.Field != tt.field {
				t.Errorf("error field = %q, want %q", valErr.Field, tt.field)
			}
		})
	}
}

func TestDerivedQuantities(t *testing.T) {
	t.Parallel()
	c, err := NewFlatLambdaCDM(70, 0.3)
	if err != nil {
		t.Fatal(err)
	}

	almostEqual(t, c.HubbleDistance(), 4282.7494, 1e-4, "HubbleDistance")
	almostEqual(t, c.HubbleTime(), 13.96896, 1e-4, "HubbleTime")
	almostEqual(t, c.LittleH(), 0.7, 1e-15, "LittleH")
	relEqual(t, c.CriticalDensity0(), 9.20439e-30, 1e-5, "CriticalDensity0")
	almostEqual(t, c.Ode0(), 0.7, 1e-15, "Ode0 (derived)")
	if c.Ok0() != 0 {
		t.Errorf("flat model must have Ok0 = 0 exactly, got %g", c.Ok0())
	}
	if c.Ogamma0() != 0 || c.Onu0() != 0 {
		t.Errorf("Tcmb0 = 0 must give zero radiation, got Ogamma0=%g Onu0=%g", c.Ogamma0(), c.Onu0())
	}
	if c.Efunc(0) != 1 {
		t.Errorf("E(0) = %g, want exactly 1", c.Efunc(0))
	}
	almostEqual(t, c.H(0), 70, 1e-12, "H(0)")
	almostEqual(t, c.ScaleFactor(1), 0.5, 1e-15, "ScaleFactor(1)")
}

func TestRadiationDensities(t *testing.T) {
	t.Parallel()
	c, err := NewFlatLambdaCDM(70, 0.3, WithTcmb0(2.7255), WithNeff(3.04))
	if err != nil {
		t.Fatal(err)
	}

	relEqual(t, c.Ogamma0(), 5.0469e-5, 1e-3, "Ogamma0")
	relEqual(t, c.Onu0(), nuDensityPrefac*3.04*c.Ogamma0(), 1e-12, "Onu0 (massless)")
	almostEqual(t, c.Tnu0(), tnuToTcmb*2.7255, 1e-12, "Tnu0")
	almostEqual(t, c.Tcmb(2), 3*2.7255, 1e-12, "Tcmb(2)")
	almostEqual(t, c.Tnu(1), 2*c.Tnu0(), 1e-12, "Tnu(1)")

	// Flatness must hold including the radiation sector.
	sum := c.Om0() + c.Ode0() + c.Ogamma0() + c.Onu0()
	almostEqual(t, sum, 1, 1e-14, "density sum (flat)")
}

func TestCurvedDensityBudget(t *testing.T) {
	t.Parallel()
	c, err := NewLambdaCDM(70, 0.3, 0.4, WithTcmb0(2.7255))
	if err != nil {
		t.Fatal(err)
	}
	sum := c.Om0() + c.Ode0() + c.Ok0() + c.Ogamma0() + c.Onu0()
	almostEqual(t, sum, 1, 1e-14, "density sum (curved)")

	// Density parameters at z sum to one as well.
	for _, z := range []float64{0, 0.5, 3, 20} {
		sumZ := c.Om(z) + c.Ode(z) + c.Ok(z) + c.Ogamma(z) + c.Onu(z)
		almostEqual(t, sumZ, 1, 1e-12, "density sum at z")
	}
}

func TestBaryonAccessors(t *testing.T) {
	t.Parallel()
	withOb, err := NewFlatLambdaCDM(70, 0.3, WithOb0(0.045))
	if err != nil {
		t.Fatal(err)
	}
	ob0, err := withOb.Ob0()
	if err != nil {
		t.Fatalf("Ob0: %v", err)
	}
	almostEqual(t, ob0, 0.045, 1e-15, "Ob0")
	odm0, err := withOb.Odm0()
	if err != nil {
		t.Fatalf("Odm0: %v", err)
	}
	almostEqual(t, odm0, 0.255, 1e-15, "Odm0")

	ob1, err := withOb.Ob(1)
	if err != nil {
		t.Fatalf("Ob(1): %v", err)
	}
	odm1, err := withOb.Odm(1)
	if err != nil {
		t.Fatalf("Odm(1): %v", err)
	}
	almostEqual(t, ob1+odm1, withOb.Om(1), 1e-14, "Ob+Odm = Om at z")

	withoutOb, err := NewFlatLambdaCDM(70, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := withoutOb.Ob0(); err == nil {
		t.Error("Ob0 should fail when no baryon density was given")
	}
	if _, err := withoutOb.Ob(1); err == nil {
		t.Error("Ob(z) should fail when no baryon density was given")
	}
	if _, err := withoutOb.Odm(1); err == nil {
		t.Error("Odm(z) should fail when no baryon density was given")
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()
	base, err := NewFlatLambdaCDM(70, 0.3, WithTcmb0(2.7255), WithMNu(0, 0, 0.06), WithNeff(3.046))
	if err != nil {
		t.Fatal(err)
	}

	same, err := NewFlatLambdaCDM(70, 0.3, WithTcmb0(2.7255), WithMNu(0, 0, 0.06), WithNeff(3.046),
		WithName("another label"), WithMeta(map[string]any{"origin": "test"}))
	if err != nil {
		t.Fatal(err)
	}
	if !base.Equal(same) {
		t.Error("models differing only in name and metadata must be equal")
	}

	differentMass, err := NewFlatLambdaCDM(70, 0.3, WithTcmb0(2.7255), WithMNu(0, 0, 0.05), WithNeff(3.046))
	if err != nil {
		t.Fatal(err)
	}
	if base.Equal(differentMass) {
		t.Error("different neutrino masses must not compare equal")
	}

	// A broadcast scalar mass equals the explicit per-species vector.
	scalar, err := NewFlatLambdaCDM(70, 0.3, WithTcmb0(2.7255), WithMNu(0.06), WithNeff(3.046))
	if err != nil {
		t.Fatal(err)
	}
	vector, err := NewFlatLambdaCDM(70, 0.3, WithTcmb0(2.7255), WithMNu(0.06, 0.06, 0.06), WithNeff(3.046))
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.Equal(vector) {
		t.Error("broadcast scalar mass must equal the equivalent mass vector")
	}

	// Flat and curved variants never compare equal, even at Ok0 = 0.
	curvedFlat, err := NewLambdaCDM(70, 0.3, 0.7)
	if err != nil {
		t.Fatal(err)
	}
	noRad, err := NewFlatLambdaCDM(70, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if noRad.Equal(curvedFlat) {
		t.Error("flat variant must not equal the explicitly curved variant")
	}

	// Different shapes with coinciding physics are still different models.
	wcdm, err := NewFlatWCDM(70, 0.3, -1)
	if err != nil {
		t.Fatal(err)
	}
	if noRad.Equal(wcdm) {
		t.Error("LambdaCDM must not equal wCDM even at w0 = -1")
	}

	if base.Equal(nil) {
		t.Error("Equal(nil) must be false")
	}
}

func TestCloneNoOp(t *testing.T) {
	t.Parallel()
	c, err := NewFlatLambdaCDM(70, 0.3, WithName("base"))
	if err != nil {
		t.Fatal(err)
	}
	clone, err := c.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if clone != c {
		t.Error("Clone with no options must return the receiver")
	}
}

func TestCloneChangesParameter(t *testing.T) {
	t.Parallel()
	c, err := NewFlatLambdaCDM(70, 0.3, WithName("base"), WithTcmb0(2.7255))
	if err != nil {
		t.Fatal(err)
	}

	clone, err := c.Clone(WithOm0(0.31))
	if err != nil {
		t.Fatal(err)
	}
	almostEqual(t, clone.Om0(), 0.31, 1e-15, "cloned Om0")
	if clone.Name() != "base (modified)" {
		t.Errorf("clone name = %q, want %q", clone.Name(), "base (modified)")
	}
	// The original is untouched.
	almostEqual(t, c.Om0(), 0.3, 1e-15, "original Om0")
	if c.Name() != "base" {
		t.Errorf("original name = %q, want %q", c.Name(), "base")
	}
	// Derived dark energy density follows the new matter density.
	if clone.Ode0() >= c.Ode0() {
		t.Error("raising Om0 in a flat model must lower the derived Ode0")
	}

	named, err := c.Clone(WithH0(72), WithName("raised H0"))
	if err != nil {
		t.Fatal(err)
	}
	if named.Name() != "raised H0" {
		t.Errorf("explicit name must win, got %q", named.Name())
	}

	// A clone equals the equivalent fresh construction.
	fresh, err := NewFlatLambdaCDM(70, 0.31, WithTcmb0(2.7255))
	if err != nil {
		t.Fatal(err)
	}
	if !clone.Equal(fresh) {
		t.Error("clone must equal the equivalent fresh construction")
	}
}

func TestCloneMetaMerge(t *testing.T) {
	t.Parallel()
	c, err := NewFlatLambdaCDM(70, 0.3, WithMeta(map[string]any{"a": 1, "b": 2}))
	if err != nil {
		t.Fatal(err)
	}
	clone, err := c.Clone(WithMeta(map[string]any{"b": 3, "c": 4}))
	if err != nil {
		t.Fatal(err)
	}
	meta := clone.Meta()
	if meta["a"] != 1 || meta["b"] != 3 || meta["c"] != 4 {
		t.Errorf("merged metadata = %v", meta)
	}
	if c.Meta()["b"] != 2 {
		t.Error("original metadata must be unchanged")
	}
	// Metadata alone is not a physical change.
	if clone.Name() != "" {
		t.Errorf("metadata-only clone must not rename, got %q", clone.Name())
	}
	if !c.Equal(clone) {
		t.Error("metadata-only clone must stay equal to the original")
	}
}

func TestCloneValidates(t *testing.T) {
	t.Parallel()
	c, err := NewFlatLambdaCDM(70, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Clone(WithOm0(-0.2)); err == nil {
		t.Error("cloning to invalid parameters must fail")
	}
}

func TestString(t *testing.T) {
	t.Parallel()
	c, err := NewFlatLambdaCDM(67.66, 0.30966, WithName("Planck18"), WithTcmb0(2.7255),
		WithNeff(3.046), WithMNu(0, 0, 0.06), WithOb0(0.04897))
	if err != nil {
		t.Fatal(err)
	}
	s := c.String()
	for _, want := range []string{"FlatLambdaCDM", `name="Planck18"`, "H0=67.66", "Om0=0.30966", "m_nu=[0 0 0.06]", "Ob0=0.04897"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
	if strings.Contains(s, "Ode0") {
		t.Errorf("flat variant must not report the derived Ode0: %q", s)
	}

	w, err := NewW0WaCDM(70, 0.3, 0.7, -0.9, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	ws := w.String()
	for _, want := range []string{"w0waCDM", "Ode0=0.7", "w0=-0.9", "wa=0.2"} {
		if !strings.Contains(ws, want) {
			t.Errorf("String() = %q, missing %q", ws, want)
		}
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()
	names := VariantNames()
	if len(names) != 10 {
		t.Fatalf("expected 10 registered variants, got %d: %v", len(names), names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("VariantNames not sorted at %d: %v", i, names)
		}
	}

	p := DefaultParameters()
	p.H0, p.Om0 = 70, 0.3
	fromRegistry, err := New("flat-lambda-cdm", p)
	if err != nil {
		t.Fatal(err)
	}
	direct, err := NewFlatLambdaCDM(70, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if !fromRegistry.Equal(direct) {
		t.Error("registry construction must match the typed constructor")
	}

	if _, err := New("einstein-static", p); err == nil {
		t.Error("unknown variant must be rejected")
	}
}

func TestShapeStrings(t *testing.T) {
	t.Parallel()
	tests := []struct {
		shape Shape
		flat  bool
		want  string
	}{
		{ShapeLambdaCDM, true, "FlatLambdaCDM"},
		{ShapeLambdaCDM, false, "LambdaCDM"},
		{ShapeWCDM, false, "wCDM"},
		{ShapeW0WaCDM, true, "Flatw0waCDM"},
		{ShapeWpWaCDM, false, "wpwaCDM"},
		{ShapeW0WzCDM, false, "w0wzCDM"},
	}
	for _, tt := range tests {
		tt := tt
		if got := tt.shape.displayName(tt.flat); got != tt.want {
			t.Errorf("displayName(%v, %v) = %q, want %q", tt.shape, tt.flat, got, tt.want)
		}
	}
}

func TestOver(t *testing.T) {
	t.Parallel()
	c, err := NewFlatLambdaCDM(70, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	zs := []float64{0, 0.5, 1, 2}

	es := Over(zs, c.Efunc)
	if len(es) != len(zs) {
		t.Fatalf("Over length = %d, want %d", len(es), len(zs))
	}
	for i, z := range zs {
		if es[i] != c.Efunc(z) {
			t.Errorf("Over[%d] = %g, want %g", i, es[i], c.Efunc(z))
		}
	}

	ages, err := OverErr(zs, c.Age)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(ages); i++ {
		if ages[i] >= ages[i-1] {
			t.Errorf("age must decrease with redshift: %v", ages)
		}
	}
}
