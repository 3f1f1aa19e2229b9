package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Global flags.
	verbose bool
	output  string
)

// Output format constants.
const (
	jsonFormat = "json"
	yamlFormat = "yaml"
	textFormat = "text"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "reactor",
	Short: "Run synchronous reactive dataflow graphs",
	Long: `reactor loads a declarative YAML graph of constants, lifts, and
combinators and drives it tick by tick to completion, printing whatever
values its root node evaluates along the way.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&output, "output", textFormat, "Output format (text, json, yaml)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
