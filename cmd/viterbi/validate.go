package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/viterbi/pkg/adapters/file"
	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file|model...]",
	Short: "Check model definitions for consistency",
	Long: `Compiles each argument, a YAML/JSON definition file or the name of a loaded
model, and reports every probability table that is not a valid distribution.
Without arguments every loaded model is checked.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	if len(args) == 0 {
		if args, err = a.engine.Models(cmd.Context()); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	var result *multierror.Error
	for _, arg := range args {
		def, err := resolveDefinition(cmd, a, arg)
		if err == nil {
			_, err = def.Compile()
		}
		if err != nil {
			fmt.Fprintf(out, "❌ %s\n", arg)
			printViolations(out, err)
			result = multierror.Append(result, fmt.Errorf("%s: invalid", arg))
			continue
		}
		fmt.Fprintf(out, "✅ %s (%d states, %d symbols)\n", def.Name, len(def.States), len(def.Symbols))
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("validation failed for %d of %d models", len(result.Errors), len(args))
	}
	return nil
}

// resolveDefinition loads arg as a file when it exists on disk and as a
// model name otherwise.
func resolveDefinition(cmd *cobra.Command, a *app, arg string) (*domain.Definition, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return file.Load(arg)
	}
	return a.engine.Describe(cmd.Context(), arg)
}

func printViolations(w io.Writer, err error) {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			fmt.Fprintf(w, "   - %v\n", e)
		}
		return
	}
	fmt.Fprintf(w, "   - %v\n", err)
}
