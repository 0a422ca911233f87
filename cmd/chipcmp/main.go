// Package main provides the entry point for the chipcmp CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/project-chip/chipcmp/cmd/chipcmp/commands"
	"github.com/project-chip/chipcmp/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	err := commands.NewRootCommand().Execute()
	if err != nil {
		if !errors.Is(err, commands.ErrCheckFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}
