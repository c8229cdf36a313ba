package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/cosmocalc/internal/cli"
	"github.com/agbru/cosmocalc/internal/config"
	"github.com/agbru/cosmocalc/internal/cosmology"
	apperrors "github.com/agbru/cosmocalc/internal/errors"
	"github.com/agbru/cosmocalc/internal/logging"
	"github.com/agbru/cosmocalc/internal/ui"
)

// Application represents the cosmocalc application instance. It encapsulates
// the configuration and runs the model construction, batch evaluation and
// result rendering pipeline.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or
// validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "cosmocalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application: it constructs the requested cosmology,
// evaluates the configured redshifts and renders the results.
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Initialize CLI theme (respects -no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor)
	configureLogging(a.Config, a.ErrWriter)
	logger := logging.NewLogger(a.ErrWriter, "app")

	model, err := a.BuildModel()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Model construction error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	logger.Debug("model constructed", logging.String("model", model.String()))

	zs, err := a.Config.Redshifts()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	logger.Debug("evaluating", logging.Int("redshifts", len(zs)))

	// Setup lifecycle (timeout + signals)
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.DisplayModelSummary(out, model)
	}

	// The spinner is suppressed in quiet and JSON modes so machine-readable
	// output stays clean.
	silent := a.Config.Quiet || a.Config.JSONOutput

	startTime := time.Now()
	var rows []cli.Row
	cli.RunWithSpinner(out, "integrating...", silent, func() error {
		rows = EvaluateBatch(ctx, model, zs)
		return nil
	})
	duration := time.Since(startTime)
	logger.Debug("batch complete", logging.Float64("seconds", duration.Seconds()))

	if err := ctx.Err(); err != nil {
		return apperrors.HandleCalculationError(err, duration, a.ErrWriter, colorProvider{})
	}

	if a.Config.JSONOutput {
		return printJSONResults(model, rows, out)
	}

	if a.Config.Quiet {
		cli.DisplayQuietResults(out, rows)
	} else {
		cli.DisplayResults(out, rows)
		fmt.Fprintf(out, "\nComputed %d redshifts in %s%s%s\n",
			len(rows), cli.ColorGreen(), cli.FormatExecutionDuration(duration), cli.ColorReset())
	}

	exitCode := apperrors.ExitSuccess
	for _, row := range rows {
		if row.Err != nil {
			exitCode = apperrors.HandleCalculationError(row.Err, 0, a.ErrWriter, colorProvider{})
			break
		}
	}

	if a.Config.OutputFile != "" {
		outputCfg := cli.OutputConfig{OutputFile: a.Config.OutputFile, Quiet: a.Config.Quiet}
		if err := cli.WriteResultsToFile(model, rows, duration, outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving results: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		if !a.Config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n",
				cli.ColorGreen(), cli.ColorCyan(), a.Config.OutputFile, cli.ColorReset())
		}
	}

	return exitCode
}

// BuildModel constructs the cosmology selected by the configuration: a
// published preset, a YAML parameter file, or the variant and parameter
// flags, in that precedence order.
//
// Returns:
//   - *cosmology.FLRW: The constructed model.
//   - error: A configuration or validation error.
func (a *Application) BuildModel() (*cosmology.FLRW, error) {
	if a.Config.Preset != "" {
		return cosmology.Preset(a.Config.Preset)
	}
	if a.Config.ParamsFile != "" {
		variant, p, err := config.LoadParamsFile(a.Config.ParamsFile)
		if err != nil {
			return nil, err
		}
		return cosmology.New(variant, p)
	}
	p, err := a.Config.ToParameters()
	if err != nil {
		return nil, err
	}
	return cosmology.New(a.Config.Variant, p)
}

// EvaluateBatch computes the standard set of quantities for each redshift.
// Evaluations run concurrently: models are immutable after construction, so
// sharing one across goroutines is safe. Each row carries its own error;
// a canceled context marks the remaining rows rather than aborting the
// whole batch.
//
// Parameters:
//   - ctx: The context for cancellation.
//   - model: The cosmology to evaluate.
//   - zs: The redshifts to evaluate.
//
// Returns:
//   - []cli.Row: One row per redshift, in input order.
func EvaluateBatch(ctx context.Context, model *cosmology.FLRW, zs []float64) []cli.Row {
	tracer := otel.Tracer("cosmocalc")
	ctx, span := tracer.Start(ctx, "EvaluateBatch")
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	rows := make([]cli.Row, len(zs))

	for i, z := range zs {
		idx, redshift := i, z
		g.Go(func() error {
			rows[idx] = evaluateRow(ctx, model, redshift)
			return nil
		})
	}
	g.Wait()

	return rows
}

// evaluateRow computes every column for one redshift, stopping at the first
// failure.
func evaluateRow(ctx context.Context, model *cosmology.FLRW, z float64) cli.Row {
	row := cli.Row{Z: z}
	if err := ctx.Err(); err != nil {
		row.Err = err
		return row
	}

	row.Efunc = model.Efunc(z)

	steps := []struct {
		dst *float64
		fn  func(float64) (float64, error)
	}{
		{&row.Comoving, model.ComovingDistance},
		{&row.Luminosity, model.LuminosityDistance},
		{&row.AngularDiameter, model.AngularDiameterDistance},
		{&row.DistMod, model.DistMod},
		{&row.Age, model.Age},
		{&row.Lookback, model.LookbackTime},
	}
	for _, step := range steps {
		v, err := step.fn(z)
		if err != nil {
			row.Err = err
			return row
		}
		*step.dst = v
	}
	return row
}

// configureLogging sets the global zerolog level from the output flags and
// routes the structured log to the error writer in a human-readable form.
func configureLogging(cfg config.AppConfig, errWriter io.Writer) {
	switch {
	case cfg.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case cfg.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: errWriter})
}

// colorProvider supplies theme colors to the error handler without an
// import cycle.
type colorProvider struct{}

func (colorProvider) Yellow() string { return ui.ColorYellow() }
func (colorProvider) Reset() string  { return ui.ColorReset() }

// IsHelpError checks if the error is a help flag error (--help was used),
// in which case the application should exit with success after the usage
// text.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// jsonRow represents a single evaluated redshift in JSON output.
type jsonRow struct {
	Z             float64 `json:"z"`
	Efunc         float64 `json:"efunc"`
	ComovingMpc   float64 `json:"comoving_mpc"`
	LuminosityMpc float64 `json:"luminosity_mpc"`
	AngularMpc    float64 `json:"angular_diameter_mpc"`
	DistModMag    float64 `json:"distmod_mag"`
	AgeGyr        float64 `json:"age_gyr"`
	LookbackGyr   float64 `json:"lookback_gyr"`
	Error         string  `json:"error,omitempty"`
}

// jsonOutput is the top-level JSON document.
type jsonOutput struct {
	Model   string    `json:"model"`
	Results []jsonRow `json:"results"`
}

// printJSONResults formats the evaluated rows as a JSON document and writes
// them to the output for programmatic consumption.
func printJSONResults(model *cosmology.FLRW, rows []cli.Row, out io.Writer) int {
	doc := jsonOutput{
		Model:   model.String(),
		Results: make([]jsonRow, len(rows)),
	}
	for i, row := range rows {
		jr := jsonRow{
			Z:             row.Z,
			Efunc:         row.Efunc,
			ComovingMpc:   row.Comoving,
			LuminosityMpc: row.Luminosity,
			AngularMpc:    row.AngularDiameter,
			DistModMag:    row.DistMod,
			AgeGyr:        row.Age,
			LookbackGyr:   row.Lookback,
		}
		if row.Err != nil {
			jr = jsonRow{Z: row.Z, Error: row.Err.Error()}
		}
		doc.Results[i] = jr
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
