package cosmology

import (
	"sort"

	apperrors "github.com/agbru/cosmocalc/internal/errors"
)

// Shape identifies the dark energy equation-of-state family of a model.
// Together with the flatness flag it fully determines which construction
// parameters are meaningful and which evaluation strategies apply.
type Shape int

const (
	// ShapeLambdaCDM is a cosmological constant, w = -1.
	ShapeLambdaCDM Shape = iota
	// ShapeWCDM is a constant equation of state w0.
	ShapeWCDM
	// ShapeW0WaCDM is the CPL form w(a) = w0 + wa (1 - a).
	ShapeW0WaCDM
	// ShapeWpWaCDM is the CPL form re-anchored at a pivot redshift zp.
	ShapeWpWaCDM
	// ShapeW0WzCDM evolves linearly in redshift, w(z) = w0 + wz z.
	ShapeW0WzCDM
)

// shapeParamNames lists the equation-of-state parameters each shape adds
// on top of the common set. The order is the reporting order.
var shapeParamNames = map[Shape][]string{
	ShapeLambdaCDM: nil,
	ShapeWCDM:      {"w0"},
	ShapeW0WaCDM:   {"w0", "wa"},
	ShapeWpWaCDM:   {"wp", "wa", "zp"},
	ShapeW0WzCDM:   {"w0", "wz"},
}

func (s Shape) String() string {
	switch s {
	case ShapeLambdaCDM:
		return "LambdaCDM"
	case ShapeWCDM:
		return "wCDM"
	case ShapeW0WaCDM:
		return "w0waCDM"
	case ShapeWpWaCDM:
		return "wpwaCDM"
	case ShapeW0WzCDM:
		return "w0wzCDM"
	}
	return "unknown"
}

func (s Shape) displayName(flat bool) string {
	if flat {
		return "Flat" + s.String()
	}
	return s.String()
}

// variantInfo describes one registry entry: a shape/flatness pair and the
// construction parameters it consumes.
type variantInfo struct {
	shape Shape
	flat  bool
}

// variants is the static registry of constructible models, keyed by the
// names accepted on the command line and in parameter files. There is no
// runtime registration: the set of variants is fixed at compile time.
var variants = map[string]variantInfo{
	"lambda-cdm":      {shape: ShapeLambdaCDM, flat: false},
	"flat-lambda-cdm": {shape: ShapeLambdaCDM, flat: true},
	"w-cdm":           {shape: ShapeWCDM, flat: false},
	"flat-w-cdm":      {shape: ShapeWCDM, flat: true},
	"w0wa-cdm":        {shape: ShapeW0WaCDM, flat: false},
	"flat-w0wa-cdm":   {shape: ShapeW0WaCDM, flat: true},
	"wpwa-cdm":        {shape: ShapeWpWaCDM, flat: false},
	"flat-wpwa-cdm":   {shape: ShapeWpWaCDM, flat: true},
	"w0wz-cdm":        {shape: ShapeW0WzCDM, flat: false},
	"flat-w0wz-cdm":   {shape: ShapeW0WzCDM, flat: true},
}

// VariantNames returns the sorted registry keys.
func VariantNames() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New constructs a model by registry name. It is the entry point used by
// configuration-driven callers; code that knows its variant statically
// should prefer the typed constructors.
func New(variant string, p Parameters) (*FLRW, error) {
	info, ok := variants[variant]
	if !ok {
		return nil, apperrors.NewValidationError("variant", "unknown cosmology variant", variant)
	}
	return newFLRW(info.shape, info.flat, p)
}
