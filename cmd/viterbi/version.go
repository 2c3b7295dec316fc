package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/viterbi"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of viterbi",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "viterbi version %s\n", strings.TrimSpace(viterbi.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
