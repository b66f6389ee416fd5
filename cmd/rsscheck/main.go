// Package main is the entry point for the rsscheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/rsscheck/cmd/rsscheck/commands"
	"github.com/thoreinstein/rsscheck/internal/errors"
)

func main() {
	err := commands.Execute()
	if err != nil && !commands.Reported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "  %s\n", exitErr.Suggestion)
		}
	}
	os.Exit(errors.ExitCode(err))
}
