package cosmology

import (
	"sort"

	apperrors "github.com/agbru/cosmocalc/internal/errors"
)

// presetSpec carries published flat LambdaCDM parameter sets. All include
// the full radiation sector: CMB photons, two massless and one massive
// neutrino species for the Planck rows, all massless for WMAP.
type presetSpec struct {
	h0, om0, ob0 float64
	tcmb0, neff  float64
	mnu          []float64
	reference    string
}

var presets = map[string]presetSpec{
	"Planck18": {
		h0: 67.66, om0: 0.30966, ob0: 0.04897,
		tcmb0: 2.7255, neff: 3.046, mnu: []float64{0, 0, 0.06},
		reference: "Planck 2018 results. VI. (Paper VI), Table 2 (TT, TE, EE + lowE + lensing + BAO)",
	},
	"Planck15": {
		h0: 67.74, om0: 0.3089, ob0: 0.0486,
		tcmb0: 2.7255, neff: 3.046, mnu: []float64{0, 0, 0.06},
		reference: "Planck 2015 results. XIII. (Paper XIII), Table 4 (TT, TE, EE + lowP + lensing + ext)",
	},
	"Planck13": {
		h0: 67.77, om0: 0.30712, ob0: 0.048252,
		tcmb0: 2.7255, neff: 3.046, mnu: []float64{0, 0, 0.06},
		reference: "Planck 2013 results. XVI. (Paper XVI), Table 5 (Planck + WP + highL + BAO)",
	},
	"WMAP9": {
		h0: 69.32, om0: 0.2865, ob0: 0.04628,
		tcmb0: 2.725, neff: 3.04,
		reference: "Hinshaw et al. 2013, WMAP9 + eCMB + BAO + H0, last column of Table 4",
	},
	"WMAP7": {
		h0: 70.4, om0: 0.272, ob0: 0.0455,
		tcmb0: 2.725, neff: 3.04,
		reference: "Komatsu et al. 2011, WMAP7 + BAO + H0 ML, table 1",
	},
	"WMAP5": {
		h0: 70.2, om0: 0.277, ob0: 0.0459,
		tcmb0: 2.725, neff: 3.04,
		reference: "Komatsu et al. 2009, WMAP5 + BAO + SN ML, table 1",
	},
}

// Preset returns the named published cosmology as a flat LambdaCDM model.
func Preset(name string) (*FLRW, error) {
	spec, ok := presets[name]
	if !ok {
		return nil, apperrors.NewValidationError("preset", "unknown preset cosmology", name)
	}
	opts := []Option{
		WithTcmb0(spec.tcmb0),
		WithNeff(spec.neff),
		WithOb0(spec.ob0),
		WithName(name),
		WithMeta(map[string]any{"reference": spec.reference}),
	}
	if len(spec.mnu) > 0 {
		opts = append(opts, WithMNu(spec.mnu...))
	}
	return NewFlatLambdaCDM(spec.h0, spec.om0, opts...)
}

// PresetNames returns the sorted names of the published cosmologies.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
