// Package cli provides output utilities for rendering computed cosmological
// quantities.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/agbru/cosmocalc/internal/cosmology"
)

// Row holds the quantities computed for a single redshift. A failed
// evaluation carries its error and leaves the numeric fields meaningless.
type Row struct {
	// Z is the redshift the row was evaluated at.
	Z float64
	// Efunc is the dimensionless Hubble parameter E(z).
	Efunc float64
	// Comoving is the line-of-sight comoving distance in Mpc.
	Comoving float64
	// Luminosity is the luminosity distance in Mpc.
	Luminosity float64
	// AngularDiameter is the angular diameter distance in Mpc.
	AngularDiameter float64
	// DistMod is the distance modulus in magnitudes.
	DistMod float64
	// Age is the age of the universe at z in Gyr.
	Age float64
	// Lookback is the lookback time to z in Gyr.
	Lookback float64
	// Err records the first failure while evaluating this row, nil on success.
	Err error
}

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the results (empty for no file output).
	OutputFile string
	// Quiet mode suppresses headers and the model summary.
	Quiet bool
}

// DisplayModelSummary prints the model description and its derived scales.
//
// Parameters:
//   - out: The output writer.
//   - model: The cosmology being evaluated.
func DisplayModelSummary(out io.Writer, model *cosmology.FLRW) {
	fmt.Fprintf(out, "%sModel:%s %s\n", ColorBold(), ColorReset(), model)
	fmt.Fprintf(out, "Hubble distance: %s%.4f%s Mpc   Hubble time: %s%.4f%s Gyr\n",
		ColorCyan(), model.HubbleDistance(), ColorReset(),
		ColorCyan(), model.HubbleTime(), ColorReset())
	if model.Tcmb0() > 0 {
		fmt.Fprintf(out, "Radiation: Ogamma0 = %s%.4e%s   Onu0 = %s%.4e%s\n",
			ColorCyan(), model.Ogamma0(), ColorReset(),
			ColorCyan(), model.Onu0(), ColorReset())
	}
	fmt.Fprintln(out)
}

// DisplayResults renders the computed rows as a colored table.
//
// Parameters:
//   - out: The output writer.
//   - rows: The computed quantities, one row per redshift.
func DisplayResults(out io.Writer, rows []Row) {
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sz%s\t%sE(z)%s\t%sD_C [Mpc]%s\t%sD_L [Mpc]%s\t%sD_A [Mpc]%s\t%smu [mag]%s\t%sAge [Gyr]%s\t%sLookback [Gyr]%s\n",
		ColorUnderline(), ColorReset(), ColorUnderline(), ColorReset(),
		ColorUnderline(), ColorReset(), ColorUnderline(), ColorReset(),
		ColorUnderline(), ColorReset(), ColorUnderline(), ColorReset(),
		ColorUnderline(), ColorReset(), ColorUnderline(), ColorReset())

	for _, row := range rows {
		if row.Err != nil {
			fmt.Fprintf(tw, "%.4g\t%sfailed: %v%s\t\t\t\t\t\t\n", row.Z, ColorRed(), row.Err, ColorReset())
			continue
		}
		fmt.Fprintf(tw, "%.4g\t%.6f\t%s%.4f%s\t%.4f\t%.4f\t%.4f\t%s%.4f%s\t%.4f\n",
			row.Z, row.Efunc,
			ColorGreen(), row.Comoving, ColorReset(),
			row.Luminosity, row.AngularDiameter, row.DistMod,
			ColorGreen(), row.Age, ColorReset(),
			row.Lookback)
	}
	tw.Flush()
}

// FormatQuietRow formats a row as a single tab-separated line for scripting.
//
// Parameters:
//   - row: The computed quantities.
//
// Returns:
//   - string: The formatted line without colors or headers.
func FormatQuietRow(row Row) string {
	if row.Err != nil {
		return fmt.Sprintf("%g\terror\t%v", row.Z, row.Err)
	}
	return fmt.Sprintf("%g\t%.6f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f",
		row.Z, row.Efunc, row.Comoving, row.Luminosity, row.AngularDiameter,
		row.DistMod, row.Age, row.Lookback)
}

// DisplayQuietResults outputs the rows in quiet mode (one plain line each).
//
// Parameters:
//   - out: The output writer.
//   - rows: The computed quantities.
func DisplayQuietResults(out io.Writer, rows []Row) {
	for _, row := range rows {
		fmt.Fprintln(out, FormatQuietRow(row))
	}
}

// WriteResultsToFile writes the computed rows to a file with a commented
// header describing the model and the run.
//
// Parameters:
//   - model: The cosmology that produced the rows.
//   - rows: The computed quantities.
//   - duration: How long the computation took.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultsToFile(model *cosmology.FLRW, rows []Row, duration time.Duration, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Cosmology Calculation Results\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Model: %s\n", model)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Rows: %d\n", len(rows))
	fmt.Fprintf(file, "#\n")
	fmt.Fprintf(file, "# z\tE(z)\tD_C[Mpc]\tD_L[Mpc]\tD_A[Mpc]\tmu[mag]\tage[Gyr]\tlookback[Gyr]\n")
	for _, row := range rows {
		fmt.Fprintln(file, FormatQuietRow(row))
	}

	return nil
}
