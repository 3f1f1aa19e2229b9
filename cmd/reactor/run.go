package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aspenflow/reactor"
	"github.com/aspenflow/reactor/builtin"
	"github.com/aspenflow/reactor/graph"
)

var (
	dryRun   bool
	maxTicks int
)

var runCmd = &cobra.Command{
	Use:   "run [file.yaml]",
	Short: "Load and drive a graph to completion",
	Long: `run loads a YAML graph definition, validates it against its
nodes' config schemas, and drives its root node tick by tick — printing
every tick's evaluation as it happens — until the root completes or
--ticks ticks have run, whichever comes first.`,
	Example: `  # Run a workflow to completion
  reactor run workflow.yaml

  # Run at most 10 ticks
  reactor run workflow.yaml --ticks 10

  # Validate without executing
  reactor run workflow.yaml --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0]) // #nosec G304 - user-provided workflow path
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}

		def, err := graph.Parse(data)
		if err != nil {
			return fmt.Errorf("parse: %w", err)
		}
		if err := def.Validate(); err != nil {
			return fmt.Errorf("invalid definition: %w", err)
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "loaded graph %q, root %q, %d nodes\n", def.Name, def.Root, len(def.Nodes))
		}

		if dryRun {
			fmt.Println("graph validation successful (dry run)")
			return nil
		}

		functions := graph.NewFunctionRegistry()
		builtin.RegisterAll(functions)

		loader := graph.NewLoader(functions)
		root, err := loader.Build(def)
		if err != nil {
			return fmt.Errorf("build: %w", err)
		}

		for sequence := 0; maxTicks <= 0 || sequence < maxTicks; sequence++ {
			state := root.Commit(sequence)
			if reactor.HasEvaluation(state) {
				v, err := root.Eval()
				if err != nil {
					return fmt.Errorf("tick %d: %w", sequence, err)
				}
				printTick(sequence, v)
			}
			if reactor.IsComplete(state) {
				return nil
			}
		}

		return fmt.Errorf("run: reached %d ticks without completing", maxTicks)
	},
}

func printTick(sequence int, v any) {
	switch output {
	case jsonFormat:
		data, err := json.Marshal(map[string]any{"tick": sequence, "value": v})
		if err != nil {
			fmt.Fprintf(os.Stderr, "marshal tick %d: %v\n", sequence, err)
			return
		}
		fmt.Println(string(data))
	default:
		fmt.Printf("[%d] %v\n", sequence, v)
	}
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the graph without executing it")
	runCmd.Flags().IntVar(&maxTicks, "ticks", 0, "Maximum ticks to run (0 = until completion)")
	rootCmd.AddCommand(runCmd)
}
