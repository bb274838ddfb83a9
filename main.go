package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/bitrise-client/bitrise-client/cmd"
)

func main() {
	// See cmd/root.go for Execute()
	if err := cmd.Execute(); err != nil {
		_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(-1)
	}
}
