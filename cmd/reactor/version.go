package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

// Version information, set by ldflags at build time.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
	goVersion = runtime.Version()
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Example: `  # Show version
  reactor version

  # Show version as JSON
  reactor version --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := map[string]string{
			"version":   version,
			"commit":    commit,
			"buildDate": buildDate,
			"goVersion": goVersion,
		}

		switch output {
		case jsonFormat:
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal version info: %w", err)
			}
			fmt.Println(string(data))
		case yamlFormat:
			data, err := yaml.Marshal(info)
			if err != nil {
				return fmt.Errorf("marshal version info: %w", err)
			}
			fmt.Print(string(data))
		default:
			fmt.Printf("reactor version %s\n", version)
			if version != "dev" {
				fmt.Printf("  commit:     %s\n", commit)
				fmt.Printf("  built:      %s\n", buildDate)
				fmt.Printf("  go version: %s\n", goVersion)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
