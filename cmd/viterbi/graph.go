package main

import (
	"fmt"

	"github.com/aretw0/viterbi/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <model> [symbols...]",
	Short: "Export the model as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph LR) of the model's states and transitions.
When observations are given, the decoded path is highlighted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.close()

		def, err := a.engine.Describe(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var overlay *graph.PathOverlay
		if symbols := parseSymbols(args[1:]...); len(symbols) > 0 {
			res, err := a.engine.Decode(cmd.Context(), args[0], symbols)
			if err != nil {
				return err
			}
			overlay = &graph.PathOverlay{States: res.States}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(def, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
