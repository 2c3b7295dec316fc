package main

import (
	"github.com/aretw0/viterbi/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <model>",
	Short: "Decode observation lines interactively",
	Long: `Reads one observation sequence per line and prints its most likely state path.
Type 'exit' or 'quit' (or press Ctrl+C) to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")
		jsonMode, _ := cmd.Flags().GetBool("json")
		watchMode, _ := cmd.Flags().GetBool("watch")

		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.close()

		opts := cli.DefaultRunOptions(args[0])
		opts.Input = cmd.InOrStdin()
		opts.Output = cmd.OutOrStdout()
		opts.Rich = opts.Rich && isTerminal(opts.Output)
		opts.Headless = headless
		opts.JSON = jsonMode
		opts.Watch = watchMode

		return cli.RunSession(cmd.Context(), a.engine, opts, a.logger)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (no prompts, stop at the first error)")
	runCmd.Flags().Bool("json", false, "Print one JSON result per line (NDJSON)")
	runCmd.Flags().BoolP("watch", "w", false, "Reload models when their documents change (--models)")
}
