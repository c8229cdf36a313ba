package config

import (
	"io"
	"math"
	"os"
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParseConfig("cosmocalc", []string{}, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if cfg.Variant != DefaultVariant {
			t.Errorf("Expected default variant %q, got %q", DefaultVariant, cfg.Variant)
		}
		if cfg.H0 != DefaultH0 {
			t.Errorf("Expected default H0 %g, got %g", DefaultH0, cfg.H0)
		}
		if cfg.Om0 != DefaultOm0 {
			t.Errorf("Expected default Om0 %g, got %g", DefaultOm0, cfg.Om0)
		}
		if !math.IsNaN(cfg.Ode0) {
			t.Errorf("Expected Ode0 unset by default, got %g", cfg.Ode0)
		}
		if cfg.W0 != -1 {
			t.Errorf("Expected default w0 -1, got %g", cfg.W0)
		}
		if cfg.Timeout != DefaultTimeout {
			t.Errorf("Expected default Timeout %v, got %v", DefaultTimeout, cfg.Timeout)
		}
		if cfg.Steps != DefaultSteps {
			t.Errorf("Expected default Steps %d, got %d", DefaultSteps, cfg.Steps)
		}
	})

	t.Run("ValidFlags", func(t *testing.T) {
		t.Parallel()
		args := []string{
			"-variant", "w-cdm",
			"-H0", "67.66",
			"-Om0", "0.31",
			"-Ode0", "0.69",
			"-w0", "-0.9",
			"-z", "0.5, 1.0, 2.0",
			"-timeout", "10s",
			"-json",
			"-quiet",
		}
		cfg, err := ParseConfig("cosmocalc", args, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if cfg.Variant != "w-cdm" {
			t.Errorf("Expected variant 'w-cdm', got %q", cfg.Variant)
		}
		if cfg.H0 != 67.66 {
			t.Errorf("Expected H0 67.66, got %g", cfg.H0)
		}
		if cfg.Ode0 != 0.69 {
			t.Errorf("Expected Ode0 0.69, got %g", cfg.Ode0)
		}
		if cfg.W0 != -0.9 {
			t.Errorf("Expected w0 -0.9, got %g", cfg.W0)
		}
		if cfg.Timeout != 10*time.Second {
			t.Errorf("Expected Timeout 10s, got %v", cfg.Timeout)
		}
		if !cfg.JSONOutput || !cfg.Quiet {
			t.Error("Expected JSONOutput and Quiet true")
		}

		zs, err := cfg.Redshifts()
		if err != nil {
			t.Fatalf("Redshifts: %v", err)
		}
		if len(zs) != 3 || zs[0] != 0.5 || zs[1] != 1.0 || zs[2] != 2.0 {
			t.Errorf("Redshifts = %v, want [0.5 1 2]", zs)
		}
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		env := map[string]string{
			"COSMOCALC_VARIANT": "flat-w-cdm",
			"COSMOCALC_H0":      "73.0",
			"COSMOCALC_W0":      "-0.8",
			"COSMOCALC_TCMB0":   "2.7255",
			"COSMOCALC_M_NU":    "0,0,0.06",
			"COSMOCALC_Z":       "1.5",
			"COSMOCALC_TIMEOUT": "2m",
			"COSMOCALC_JSON":    "true",
			"COSMOCALC_QUIET":   "yes",
			"COSMOCALC_OUTPUT":  "out.txt",
		}
		for k, v := range env {
			os.Setenv(k, v)
		}
		defer func() {
			for k := range env {
				os.Unsetenv(k)
			}
		}()

		cfg, err := ParseConfig("cosmocalc", []string{}, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if cfg.Variant != "flat-w-cdm" {
			t.Errorf("Expected variant 'flat-w-cdm' from env, got %q", cfg.Variant)
		}
		if cfg.H0 != 73.0 {
			t.Errorf("Expected H0 73 from env, got %g", cfg.H0)
		}
		if cfg.W0 != -0.8 {
			t.Errorf("Expected w0 -0.8 from env, got %g", cfg.W0)
		}
		if cfg.MNu != "0,0,0.06" {
			t.Errorf("Expected m_nu list from env, got %q", cfg.MNu)
		}
		if cfg.Zs != "1.5" {
			t.Errorf("Expected z list from env, got %q", cfg.Zs)
		}
		if cfg.Timeout != 2*time.Minute {
			t.Errorf("Expected Timeout 2m from env, got %v", cfg.Timeout)
		}
		if !cfg.JSONOutput || !cfg.Quiet {
			t.Error("Expected JSONOutput and Quiet true from env")
		}
		if cfg.OutputFile != "out.txt" {
			t.Errorf("Expected OutputFile out.txt from env, got %q", cfg.OutputFile)
		}
	})

	t.Run("FlagBeatsEnv", func(t *testing.T) {
		os.Setenv("COSMOCALC_H0", "73.0")
		defer os.Unsetenv("COSMOCALC_H0")

		cfg, err := ParseConfig("cosmocalc", []string{"-H0", "70"}, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.H0 != 70 {
			t.Errorf("Expected explicit flag to win, got H0 %g", cfg.H0)
		}
	})

	t.Run("InvalidFlag", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseConfig("cosmocalc", []string{"-no-such-flag"}, io.Discard); err == nil {
			t.Fatal("Expected an error for an unknown flag")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()
	base := func() AppConfig {
		return AppConfig{
			Variant: DefaultVariant,
			H0:      DefaultH0,
			Om0:     DefaultOm0,
			Ode0:    unset,
			W0:      -1, Wp: -1,
			Neff:    DefaultNeff,
			Ob0:     unset,
			ZMax:    DefaultZMax,
			Steps:   DefaultSteps,
			Timeout: DefaultTimeout,
		}
	}

	testCases := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"valid defaults", func(c *AppConfig) {}, false},
		{"zero timeout", func(c *AppConfig) { c.Timeout = 0 }, true},
		{"unknown variant", func(c *AppConfig) { c.Variant = "static-universe" }, true},
		{"preset skips variant check", func(c *AppConfig) { c.Variant = ""; c.Preset = "Planck18" }, false},
		{"preset and params exclusive", func(c *AppConfig) { c.Preset = "Planck18"; c.ParamsFile = "x.yaml" }, true},
		{"zero steps", func(c *AppConfig) { c.Steps = 0 }, true},
		{"negative zmax", func(c *AppConfig) { c.ZMax = -1 }, true},
		{"explicit list ignores grid settings", func(c *AppConfig) { c.Zs = "0.5"; c.Steps = 0; c.ZMax = -1 }, false},
		{"redshift below -1", func(c *AppConfig) { c.Zs = "0.5,-1.5" }, true},
		{"unparsable redshift", func(c *AppConfig) { c.Zs = "0.5,sky" }, true},
		{"unparsable masses", func(c *AppConfig) { c.MNu = "0.06,heavy" }, true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("Expected a validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
		})
	}
}

func TestRedshiftGrid(t *testing.T) {
	t.Parallel()
	cfg := AppConfig{ZMax: 3, Steps: 4}
	zs, err := cfg.Redshifts()
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 1, 2, 3}
	if len(zs) != len(want) {
		t.Fatalf("got %d points, want %d", len(zs), len(want))
	}
	for i := range want {
		if math.Abs(zs[i]-want[i]) > 1e-12 {
			t.Errorf("zs[%d] = %g, want %g", i, zs[i], want[i])
		}
	}

	single := AppConfig{ZMax: 1.5, Steps: 1}
	zs, err = single.Redshifts()
	if err != nil {
		t.Fatal(err)
	}
	if len(zs) != 1 || zs[0] != 1.5 {
		t.Errorf("single-step grid = %v, want [1.5]", zs)
	}
}

func TestToParameters(t *testing.T) {
	t.Parallel()
	cfg := AppConfig{
		H0: 67.66, Om0: 0.30966, Ode0: unset,
		W0: -1, Wa: 0, Wp: -1, Zp: 0, Wz: 0,
		Tcmb0: 2.7255, Neff: 3.046,
		MNu: "0, 0, 0.06",
		Ob0: 0.04897,
	}
	p, err := cfg.ToParameters()
	if err != nil {
		t.Fatal(err)
	}
	if p.H0 != 67.66 || p.Om0 != 0.30966 {
		t.Errorf("densities not carried over: %+v", p)
	}
	if p.Ode0 != 0 {
		t.Errorf("unset Ode0 should keep the zero default, got %g", p.Ode0)
	}
	if len(p.MNu) != 3 || p.MNu[2] != 0.06 {
		t.Errorf("MNu = %v, want [0 0 0.06]", p.MNu)
	}
	if p.Ob0 == nil || *p.Ob0 != 0.04897 {
		t.Errorf("Ob0 not carried over: %v", p.Ob0)
	}

	cfg.Ob0 = unset
	cfg.MNu = ""
	p, err = cfg.ToParameters()
	if err != nil {
		t.Fatal(err)
	}
	if p.Ob0 != nil {
		t.Errorf("unset Ob0 should stay nil, got %v", *p.Ob0)
	}
	if p.MNu != nil {
		t.Errorf("empty mass list should stay nil, got %v", p.MNu)
	}
}
