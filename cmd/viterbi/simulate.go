package main

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/aretw0/viterbi/internal/presentation/tui"
	"github.com/aretw0/viterbi/pkg/hmm"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <model>",
	Short: "Sample a run of the model and decode it back",
	Long: `Runs the model forward for -n steps, printing the hidden states it visited and
the symbols they emitted, then decodes those symbols and reports how many states
the Viterbi path recovered.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().IntP("steps", "n", 20, "Number of steps to sample")
	simulateCmd.Flags().Uint64("seed", 1, "Random seed")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	steps, _ := cmd.Flags().GetInt("steps")
	seed, _ := cmd.Flags().GetUint64("seed")

	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	c, err := a.engine.Compiled(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	states, obs, err := hmm.Sample(c.Model, steps, rng)
	if err != nil {
		return err
	}
	truth, err := c.States.Decode(states)
	if err != nil {
		return err
	}
	symbols, err := c.Symbols.Decode(obs)
	if err != nil {
		return err
	}

	res, err := a.engine.Decode(cmd.Context(), args[0], symbols)
	if err != nil {
		return err
	}

	correct := 0
	for t := range states {
		if states[t] == res.Indices[t] {
			correct++
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "observed: %s\n", strings.Join(symbols, " "))
	fmt.Fprintf(out, "actual:   %s\n", tui.PathLetters(truth))
	fmt.Fprintf(out, "decoded:  %s\n", tui.PathLetters(res.States))
	fmt.Fprintf(out, "recovered %d/%d states (score %g)\n", correct, len(states), res.Score)
	return nil
}
