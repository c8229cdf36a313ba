// Package config provides the configuration management for the cosmocalc
// application. This file loads cosmology parameter files.
package config

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/agbru/cosmocalc/internal/cosmology"
	apperrors "github.com/agbru/cosmocalc/internal/errors"
)

// paramsDocument is the YAML schema of a cosmology parameter file. All
// model parameters are pointers so that an omitted key keeps its
// conventional default rather than becoming zero.
//
// Example document:
//
//	variant: flat-lambda-cdm
//	name: my-survey-cosmology
//	h0: 67.66
//	om0: 0.30966
//	tcmb0: 2.7255
//	neff: 3.046
//	m_nu: [0, 0, 0.06]
//	ob0: 0.04897
//	meta:
//	  survey: DES-Y6
type paramsDocument struct {
	Variant string         `yaml:"variant"`
	Name    string         `yaml:"name"`
	H0      *float64       `yaml:"h0"`
	Om0     *float64       `yaml:"om0"`
	Ode0    *float64       `yaml:"ode0"`
	W0      *float64       `yaml:"w0"`
	Wa      *float64       `yaml:"wa"`
	Wp      *float64       `yaml:"wp"`
	Zp      *float64       `yaml:"zp"`
	Wz      *float64       `yaml:"wz"`
	Tcmb0   *float64       `yaml:"tcmb0"`
	Neff    *float64       `yaml:"neff"`
	MNu     []float64      `yaml:"m_nu"`
	Ob0     *float64       `yaml:"ob0"`
	Meta    map[string]any `yaml:"meta"`
}

// LoadParamsFile reads a YAML cosmology parameter file and returns the
// variant name and the construction parameters it describes. Unknown keys
// are rejected so that a typo cannot silently fall back to a default.
//
// Parameters:
//   - path: The path of the parameter file.
//
// Returns:
//   - string: The variant name to construct (cosmology registry key).
//   - cosmology.Parameters: The construction parameters.
//   - error: A ConfigError if the file cannot be read or parsed.
func LoadParamsFile(path string) (string, cosmology.Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", cosmology.Parameters{}, apperrors.NewConfigError("reading parameter file: %v", err)
	}
	return parseParams(data)
}

func parseParams(data []byte) (string, cosmology.Parameters, error) {
	var doc paramsDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return "", cosmology.Parameters{}, apperrors.NewConfigError("parsing parameter file: %v", err)
	}
	if doc.Variant == "" {
		return "", cosmology.Parameters{}, apperrors.NewConfigError("parameter file is missing the 'variant' key")
	}

	p := cosmology.DefaultParameters()
	p.Name = doc.Name
	p.Meta = doc.Meta
	p.MNu = doc.MNu
	p.Ob0 = doc.Ob0
	if doc.H0 != nil {
		p.H0 = *doc.H0
	}
	if doc.Om0 != nil {
		p.Om0 = *doc.Om0
	}
	if doc.Ode0 != nil {
		p.Ode0 = *doc.Ode0
	}
	if doc.W0 != nil {
		p.W0 = *doc.W0
	}
	if doc.Wa != nil {
		p.Wa = *doc.Wa
	}
	if doc.Wp != nil {
		p.Wp = *doc.Wp
	}
	if doc.Zp != nil {
		p.Zp = *doc.Zp
	}
	if doc.Wz != nil {
		p.Wz = *doc.Wz
	}
	if doc.Tcmb0 != nil {
		p.Tcmb0 = *doc.Tcmb0
	}
	if doc.Neff != nil {
		p.Neff = *doc.Neff
	}
	return doc.Variant, p, nil
}
