// Package config provides the configuration management for the cosmocalc
// application. It defines the configuration data structure, handles the
// parsing of command-line arguments and parameter files, and performs
// validation on the configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/cosmocalc/internal/cosmology"
	apperrors "github.com/agbru/cosmocalc/internal/errors"
)

const (
	// EnvPrefix is the prefix for all environment variables used by cosmocalc.
	// Environment variables provide an alternative to CLI flags for
	// configuration, following the 12-Factor App methodology.
	EnvPrefix = "COSMOCALC_"
)

// Default configuration values. These can be overridden via command-line
// flags or environment variables.
const (
	// DefaultVariant is the default cosmology variant.
	DefaultVariant = "flat-lambda-cdm"
	// DefaultH0 is the default Hubble constant in km/s/Mpc.
	DefaultH0 = 70.0
	// DefaultOm0 is the default matter density parameter.
	DefaultOm0 = 0.3
	// DefaultNeff is the default effective number of neutrino species.
	DefaultNeff = 3.04
	// DefaultZMax is the upper end of the generated redshift grid.
	DefaultZMax = 2.0
	// DefaultSteps is the number of points on the generated redshift grid.
	DefaultSteps = 9
	// DefaultTimeout is the default computation timeout.
	DefaultTimeout = 30 * time.Second
)

// unset marks a float flag whose value the user did not provide. NaN never
// survives validation, so it cannot collide with a real parameter value.
var unset = math.NaN()

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates the cosmological model selection,
// the redshifts to evaluate, and the output settings.
type AppConfig struct {
	// Variant names the cosmology variant to construct (see
	// cosmology.VariantNames). Ignored when Preset or ParamsFile is set.
	Variant string
	// Preset names a published parameter set (e.g. "Planck18").
	Preset string
	// ParamsFile is the path of a YAML parameter file describing the model.
	ParamsFile string

	// H0 is the Hubble constant in km/s/Mpc.
	H0 float64
	// Om0 is the matter density parameter at z=0.
	Om0 float64
	// Ode0 is the dark energy density parameter at z=0. NaN when not
	// provided; required for curved variants, ignored by flat ones.
	Ode0 float64
	// W0, Wa, Wp, Zp, Wz are the dark energy equation-of-state parameters.
	// Which of them matter depends on the variant.
	W0, Wa, Wp, Zp, Wz float64
	// Tcmb0 is the CMB temperature at z=0 in Kelvin. Zero disables radiation.
	Tcmb0 float64
	// Neff is the effective number of neutrino species.
	Neff float64
	// MNu is a comma-separated list of neutrino masses in eV.
	MNu string
	// Ob0 is the baryon density parameter at z=0, NaN when unknown.
	Ob0 float64

	// Zs is a comma-separated list of redshifts to evaluate. When empty,
	// a grid of Steps points from 0 to ZMax is generated instead.
	Zs string
	// ZMax is the upper end of the generated redshift grid.
	ZMax float64
	// Steps is the number of points on the generated redshift grid.
	Steps int

	// Timeout sets the maximum duration for the whole computation.
	Timeout time.Duration
	// JSONOutput, if true, outputs the results in JSON format.
	JSONOutput bool
	// Quiet mode - minimal output for scripting purposes. Suppresses the
	// spinner, banners and informational messages.
	Quiet bool
	// Verbose enables debug-level logging.
	Verbose bool
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// OutputFile, if specified, saves the results to this file path.
	OutputFile string
}

// ToParameters converts the flag-level configuration into
// cosmology.Parameters for model construction. Flags the user left unset
// keep their conventional defaults.
//
// Returns:
//   - cosmology.Parameters: The populated parameter set.
//   - error: A ConfigError if the neutrino mass list cannot be parsed.
func (c AppConfig) ToParameters() (cosmology.Parameters, error) {
	p := cosmology.DefaultParameters()
	p.H0 = c.H0
	p.Om0 = c.Om0
	if !math.IsNaN(c.Ode0) {
		p.Ode0 = c.Ode0
	}
	p.W0 = c.W0
	p.Wa = c.Wa
	p.Wp = c.Wp
	p.Zp = c.Zp
	p.Wz = c.Wz
	p.Tcmb0 = c.Tcmb0
	p.Neff = c.Neff
	if !math.IsNaN(c.Ob0) {
		ob0 := c.Ob0
		p.Ob0 = &ob0
	}
	masses, err := parseFloatList(c.MNu)
	if err != nil {
		return cosmology.Parameters{}, apperrors.NewConfigError("invalid neutrino mass list %q: %v", c.MNu, err)
	}
	p.MNu = masses
	return p, nil
}

// Redshifts returns the redshifts to evaluate: either the explicit -z list
// or a uniform grid of Steps points from 0 to ZMax.
//
// Returns:
//   - []float64: The redshifts in evaluation order.
//   - error: A ConfigError if the list cannot be parsed or contains a
//     redshift at or below -1.
func (c AppConfig) Redshifts() ([]float64, error) {
	var zs []float64
	if c.Zs != "" {
		parsed, err := parseFloatList(c.Zs)
		if err != nil {
			return nil, apperrors.NewConfigError("invalid redshift list %q: %v", c.Zs, err)
		}
		zs = parsed
	} else {
		zs = make([]float64, c.Steps)
		for i := range zs {
			if c.Steps > 1 {
				zs[i] = c.ZMax * float64(i) / float64(c.Steps-1)
			} else {
				zs[i] = c.ZMax
			}
		}
	}
	for _, z := range zs {
		if z <= -1 {
			return nil, apperrors.NewConfigError("redshift %g is at or below -1", z)
		}
	}
	return zs, nil
}

// Validate checks the semantic consistency of the configuration parameters.
// Model parameter ranges themselves are validated by the cosmology package
// at construction; this covers the application-level settings.
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Preset != "" && c.ParamsFile != "" {
		return apperrors.NewConfigError("-preset and -params are mutually exclusive")
	}
	if c.Preset == "" && c.ParamsFile == "" {
		if _, ok := findVariant(c.Variant); !ok {
			return apperrors.NewConfigError("unrecognized variant: '%s'. Valid variants are: [%s]",
				c.Variant, strings.Join(cosmology.VariantNames(), ", "))
		}
	}
	if c.Zs == "" {
		if c.Steps < 1 {
			return apperrors.NewConfigError("steps must be at least 1: %d", c.Steps)
		}
		if c.ZMax <= 0 {
			return apperrors.NewConfigError("zmax must be strictly positive: %g", c.ZMax)
		}
	}
	if _, err := c.Redshifts(); err != nil {
		return err
	}
	if _, err := c.ToParameters(); err != nil {
		return err
	}
	return nil
}

func findVariant(name string) (string, bool) {
	for _, v := range cosmology.VariantNames() {
		if v == name {
			return v, true
		}
	}
	return "", false
}

// parseFloatList parses a comma-separated list of floats, tolerating
// surrounding whitespace. An empty string yields a nil slice.
func parseFloatList(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// applies environment variable overrides, and validates the result.
//
// The function is designed to be testable by allowing the input arguments
// and output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	variantHelp := fmt.Sprintf("Cosmology variant: one of [%s].", strings.Join(cosmology.VariantNames(), ", "))
	presetHelp := fmt.Sprintf("Published parameter set: one of [%s].", strings.Join(cosmology.PresetNames(), ", "))

	config := AppConfig{}
	fs.StringVar(&config.Variant, "variant", DefaultVariant, variantHelp)
	fs.StringVar(&config.Preset, "preset", "", presetHelp)
	fs.StringVar(&config.ParamsFile, "params", "", "Path to a YAML cosmology parameter file.")

	fs.Float64Var(&config.H0, "H0", DefaultH0, "Hubble constant at z=0 in km/s/Mpc.")
	fs.Float64Var(&config.Om0, "Om0", DefaultOm0, "Matter density parameter at z=0.")
	fs.Float64Var(&config.Ode0, "Ode0", unset, "Dark energy density parameter at z=0 (curved variants only).")
	fs.Float64Var(&config.W0, "w0", -1, "Dark energy equation of state at z=0.")
	fs.Float64Var(&config.Wa, "wa", 0, "Dark energy evolution parameter (CPL and pivot forms).")
	fs.Float64Var(&config.Wp, "wp", -1, "Dark energy equation of state at the pivot redshift.")
	fs.Float64Var(&config.Zp, "zp", 0, "Pivot redshift for the wpwa form.")
	fs.Float64Var(&config.Wz, "wz", 0, "Linear-in-z dark energy evolution parameter.")
	fs.Float64Var(&config.Tcmb0, "Tcmb0", 0, "CMB temperature at z=0 in Kelvin (0 disables radiation).")
	fs.Float64Var(&config.Neff, "Neff", DefaultNeff, "Effective number of neutrino species.")
	fs.StringVar(&config.MNu, "m-nu", "", "Comma-separated neutrino masses in eV.")
	fs.Float64Var(&config.Ob0, "Ob0", unset, "Baryon density parameter at z=0.")

	fs.StringVar(&config.Zs, "z", "", "Comma-separated redshifts to evaluate.")
	fs.Float64Var(&config.ZMax, "zmax", DefaultZMax, "Upper end of the generated redshift grid.")
	fs.IntVar(&config.Steps, "steps", DefaultSteps, "Number of points on the generated redshift grid.")

	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the computation.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Verbose, "v", false, "Verbose mode - enable debug logging.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the results.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	config.Variant = strings.ToLower(config.Variant)
	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
