package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/harrison/minigrep/internal/cmd"
)

// Version is the current version of the minigrep application
const Version = "1.0.0"

func main() {
	cmd.Version = Version
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
