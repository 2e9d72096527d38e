// Package main is the entry point for the airules CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/airules/cmd/airules/commands"
	"github.com/thoreinstein/airules/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "Suggestion: %s\n", exitErr.Suggestion)
		}
		os.Exit(errors.ExitCode(err))
	}
}
