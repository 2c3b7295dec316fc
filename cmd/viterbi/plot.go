package main

import (
	"fmt"

	"github.com/aretw0/viterbi/internal/presentation/chart"
	"github.com/spf13/cobra"
)

var plotCmd = &cobra.Command{
	Use:   "plot <model> [symbols...]",
	Short: "Plot the decoded state path as an image",
	Long:  `Decodes the observations and draws the state path as a step chart. The image format follows the output extension (.png, .svg, .pdf, ...).`,
	Example: `  viterbi plot casino 6 6 6 6 1 2 3 6 6 6 -o casino.png`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runPlot,
}

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().StringP("output", "o", "path.png", "Output image file")
	plotCmd.Flags().StringP("file", "f", "", "Read observations from a file ('-' for stdin)")
}

func runPlot(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	file, _ := cmd.Flags().GetString("file")

	symbols := parseSymbols(args[1:]...)
	if file != "" {
		more, err := readSymbolsFile(cmd, file)
		if err != nil {
			return err
		}
		symbols = append(symbols, more...)
	}

	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	res, err := a.engine.Decode(cmd.Context(), args[0], symbols)
	if err != nil {
		return err
	}
	c, err := a.engine.Compiled(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	p, err := chart.PathPlot(res, c.States.Labels())
	if err != nil {
		return err
	}
	if err := chart.SavePlot(p, chart.DefaultWidth, chart.DefaultHeight, output); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d steps).\n", output, len(res.States))
	return nil
}
