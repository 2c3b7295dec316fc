package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/viterbi"
	"github.com/aretw0/viterbi/internal/cli"
	"github.com/aretw0/viterbi/internal/presentation/tui"
	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <model> [symbols...]",
	Short: "Decode the most likely hidden state path for a sequence of observations",
	Long: `Runs the Viterbi algorithm for the named model. Observations can be given as
arguments (space or comma separated) or read from a file with --file ('-' for stdin).

Formats:
- auto (default): rendered Markdown on a terminal, plain text otherwise.
- plain: the state path and the score.
- json: the full result as JSON.
- markdown: a summary and a step-by-step table.
- letters: the first letter of each state (e.g. FFLLL).

With --indices, put observations after "--" (or read them with --file) so that
a negative index is not taken for a flag.`,
	Example: `  viterbi decode casino 6 6 6 6 1 2 3 6 6 6
  viterbi decode weather HOT,HOT,COLD --format json
  viterbi decode casino --indices 5 5 0
  viterbi decode casino --indices -- 5 -1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringP("file", "f", "", "Read observations from a file ('-' for stdin)")
	decodeCmd.Flags().String("format", "auto", "Output format: auto, plain, json, markdown or letters")
	decodeCmd.Flags().Bool("indices", false, "Treat observations as 0-based symbol indices")
}

func runDecode(cmd *cobra.Command, args []string) error {
	model := args[0]
	format, _ := cmd.Flags().GetString("format")
	file, _ := cmd.Flags().GetString("file")
	indices, _ := cmd.Flags().GetBool("indices")

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

	var res domain.Result
	if indices {
		res, err = decodeIndices(cmd, a.engine, model, symbols)
	} else {
		res, err = a.engine.Decode(cmd.Context(), model, symbols)
	}
	if err != nil {
		return err
	}

	out, err := formatResult(cmd, res, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
	return nil
}

// decodeIndices decodes integer observations and labels the result.
func decodeIndices(cmd *cobra.Command, engine *viterbi.Engine, model string, symbols []string) (domain.Result, error) {
	obs := make([]int, len(symbols))
	for i, s := range symbols {
		n, err := strconv.Atoi(s)
		if err != nil {
			return domain.Result{}, fmt.Errorf("observation %d: %q is not an index", i, s)
		}
		obs[i] = n
	}

	path, err := engine.DecodeIndices(cmd.Context(), model, obs)
	if err != nil {
		return domain.Result{}, err
	}
	c, err := engine.Compiled(cmd.Context(), model)
	if err != nil {
		return domain.Result{}, err
	}
	labels, err := c.States.Decode(path.States)
	if err != nil {
		return domain.Result{}, err
	}
	observed, err := c.Symbols.Decode(obs)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Result{
		Model:        model,
		Observations: observed,
		States:       labels,
		Indices:      path.States,
		Score:        path.Score,
	}, nil
}

func formatResult(cmd *cobra.Command, res domain.Result, format string) (string, error) {
	w := cmd.OutOrStdout()
	switch format {
	case "auto":
		if isTerminal(w) {
			return tui.ColorPath(res.States, res.Indices) + "\n" + renderMarkdown(w, tui.ResultMarkdown(res)), nil
		}
		return viterbi.FormatPlain(res), nil
	case "plain":
		return viterbi.FormatPlain(res), nil
	case "json":
		return cli.FormatJSON(res), nil
	case "markdown":
		return tui.ResultMarkdown(res), nil
	case "letters":
		return tui.PathLetters(res.States), nil
	default:
		return "", fmt.Errorf("unknown format %q (want auto, plain, json, markdown or letters)", format)
	}
}
