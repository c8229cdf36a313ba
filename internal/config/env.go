// Package config provides the configuration management for the cosmocalc
// application. This file contains environment variable utilities for
// configuration override.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns the value of the environment variable with the given
// key (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvFloat64 returns the value of the environment variable with the given
// key (prefixed with EnvPrefix) parsed as float64, or the default value if
// not set or invalid.
func getEnvFloat64(key string, defaultVal float64) float64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int, or the default value if not set
// or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given
// key (prefixed with EnvPrefix) parsed as bool, or the default value if not
// set. Accepts "true", "1", "yes" as true; "false", "0", "no" as false
// (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the
// given key (prefixed with EnvPrefix) parsed as time.Duration, or the
// default value if not set or invalid. Accepts formats like "5m", "30s".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables:
//   - COSMOCALC_VARIANT: Cosmology variant (string)
//   - COSMOCALC_PRESET: Published parameter set (string)
//   - COSMOCALC_PARAMS: Path to a YAML parameter file (string)
//   - COSMOCALC_H0, COSMOCALC_OM0, COSMOCALC_ODE0: Density parameters (float)
//   - COSMOCALC_W0, COSMOCALC_WA, COSMOCALC_WP, COSMOCALC_ZP, COSMOCALC_WZ:
//     Equation-of-state parameters (float)
//   - COSMOCALC_TCMB0, COSMOCALC_NEFF, COSMOCALC_OB0: Radiation/baryon
//     parameters (float)
//   - COSMOCALC_M_NU: Comma-separated neutrino masses in eV (string)
//   - COSMOCALC_Z: Comma-separated redshifts (string)
//   - COSMOCALC_ZMAX: Upper end of the redshift grid (float)
//   - COSMOCALC_STEPS: Number of grid points (int)
//   - COSMOCALC_TIMEOUT: Computation timeout (duration: "5m", "30s")
//   - COSMOCALC_JSON: Enable JSON output (bool)
//   - COSMOCALC_QUIET: Enable quiet mode (bool)
//   - COSMOCALC_VERBOSE: Enable verbose logging (bool)
//   - COSMOCALC_NO_COLOR: Disable colored output (bool)
//   - COSMOCALC_OUTPUT: Output file path (string)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	applyModelOverrides(config, fs)
	applyGridOverrides(config, fs)
	applyOutputOverrides(config, fs)
}

func applyModelOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "variant") {
		config.Variant = getEnvString("VARIANT", config.Variant)
	}
	if !isFlagSet(fs, "preset") {
		config.Preset = getEnvString("PRESET", config.Preset)
	}
	if !isFlagSet(fs, "params") {
		config.ParamsFile = getEnvString("PARAMS", config.ParamsFile)
	}
	if !isFlagSet(fs, "H0") {
		config.H0 = getEnvFloat64("H0", config.H0)
	}
	if !isFlagSet(fs, "Om0") {
		config.Om0 = getEnvFloat64("OM0", config.Om0)
	}
	if !isFlagSet(fs, "Ode0") {
		config.Ode0 = getEnvFloat64("ODE0", config.Ode0)
	}
	if !isFlagSet(fs, "w0") {
		config.W0 = getEnvFloat64("W0", config.W0)
	}
	if !isFlagSet(fs, "wa") {
		config.Wa = getEnvFloat64("WA", config.Wa)
	}
	if !isFlagSet(fs, "wp") {
		config.Wp = getEnvFloat64("WP", config.Wp)
	}
	if !isFlagSet(fs, "zp") {
		config.Zp = getEnvFloat64("ZP", config.Zp)
	}
	if !isFlagSet(fs, "wz") {
		config.Wz = getEnvFloat64("WZ", config.Wz)
	}
	if !isFlagSet(fs, "Tcmb0") {
		config.Tcmb0 = getEnvFloat64("TCMB0", config.Tcmb0)
	}
	if !isFlagSet(fs, "Neff") {
		config.Neff = getEnvFloat64("NEFF", config.Neff)
	}
	if !isFlagSet(fs, "m-nu") {
		config.MNu = getEnvString("M_NU", config.MNu)
	}
	if !isFlagSet(fs, "Ob0") {
		config.Ob0 = getEnvFloat64("OB0", config.Ob0)
	}
}

func applyGridOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "z") {
		config.Zs = getEnvString("Z", config.Zs)
	}
	if !isFlagSet(fs, "zmax") {
		config.ZMax = getEnvFloat64("ZMAX", config.ZMax)
	}
	if !isFlagSet(fs, "steps") {
		config.Steps = getEnvInt("STEPS", config.Steps)
	}
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
}

func applyOutputOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "quiet") && !isFlagSet(fs, "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "v") {
		config.Verbose = getEnvBool("VERBOSE", config.Verbose)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
	if !isFlagSet(fs, "output") && !isFlagSet(fs, "o") {
		config.OutputFile = getEnvString("OUTPUT", config.OutputFile)
	}
}
