// Package cli provides functions for building the command-line interface of
// the cosmology calculator. It handles the progress display while
// integrations run and formats the results for a clear presentation.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/cosmocalc/internal/ui"
)

// SpinnerRefreshRate defines the refresh frequency of the progress spinner.
const SpinnerRefreshRate = 100 * time.Millisecond

// FormatExecutionDuration formats a time.Duration for display. It shows
// microseconds for durations under a millisecond and milliseconds for
// durations under a second, which reads better for short computations.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// Color functions return ANSI escape codes from the current theme.
// They delegate to the ui package to reduce coupling.

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return ui.GetCurrentTheme().Reset }

// ColorRed returns the error color from the current theme.
func ColorRed() string { return ui.GetCurrentTheme().Error }

// ColorGreen returns the success color from the current theme.
func ColorGreen() string { return ui.GetCurrentTheme().Success }

// ColorYellow returns the warning color from the current theme.
func ColorYellow() string { return ui.GetCurrentTheme().Warning }

// ColorCyan returns the secondary color from the current theme.
func ColorCyan() string { return ui.GetCurrentTheme().Secondary }

// ColorMagenta returns the info color from the current theme.
func ColorMagenta() string { return ui.GetCurrentTheme().Info }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return ui.GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code from the current theme.
func ColorUnderline() string { return ui.GetCurrentTheme().Underline }

// Spinner abstracts the behavior of a terminal spinner, decoupling the
// progress display from a specific implementation for easier testing.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

// newSpinner is a variable so tests can substitute a fake spinner.
var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// RunWithSpinner runs fn while displaying a spinner with the given message.
// In quiet mode the spinner is suppressed and fn runs directly. The spinner
// is stopped before returning so the terminal line is released.
//
// Parameters:
//   - out: The writer the spinner renders to.
//   - message: The text displayed next to the spinner.
//   - quiet: Suppresses the spinner entirely.
//   - fn: The work to perform.
//
// Returns:
//   - error: The error returned by fn.
func RunWithSpinner(out io.Writer, message string, quiet bool, fn func() error) error {
	if quiet {
		return fn()
	}
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" " + message)
	s.Start()
	defer s.Stop()
	return fn()
}
