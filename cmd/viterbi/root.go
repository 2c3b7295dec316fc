package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "viterbi",
	Short: "Viterbi decodes hidden state sequences with Hidden Markov Models",
	Long: `Viterbi finds the most likely sequence of hidden states behind a sequence
of observations. Models come from a directory of Markdown/YAML/JSON documents
(--models), a Redis store (--redis) or the built-in examples (casino, weather).`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands). Unset flags fall back to VITERBI_* variables.
	rootCmd.PersistentFlags().String("models", "", "Directory containing model documents (VITERBI_MODELS_DIR)")
	rootCmd.PersistentFlags().String("redis", "", "Redis address of the model store (VITERBI_REDIS_ADDR)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (VITERBI_LOG_LEVEL)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every decode to stderr")
}
