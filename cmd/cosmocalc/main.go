// Command cosmocalc computes distances, ages and densities for standard
// FLRW cosmological models.
package main

import (
	"context"
	"os"

	"github.com/agbru/cosmocalc/internal/app"
	apperrors "github.com/agbru/cosmocalc/internal/errors"
)

func main() {
	// Handle --version before flag parsing so it works in any position.
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
