package main

import (
	"fmt"

	"github.com/aretw0/viterbi/internal/presentation/tui"
	"github.com/aretw0/viterbi/pkg/adapters/file"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the available models",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.close()

		names, err := a.engine.Models(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var modelsShowCmd = &cobra.Command{
	Use:   "show <model>",
	Short: "Print the probability tables of a model",
	Args:  cobra.ExactArgs(1),
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
		fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(cmd.OutOrStdout(), tui.DescribeMarkdown(def)))
		return nil
	},
}

var modelsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Save a YAML/JSON definition into the model store",
	Long:  `Validates the definition and saves it. Requires a writable store (--redis); the in-memory store only lives for this process.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.close()

		def, err := file.Load(args[0])
		if err != nil {
			return err
		}
		if name, _ := cmd.Flags().GetString("name"); name != "" {
			def.Name = name
		}
		if err := a.engine.Save(cmd.Context(), def); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved model '%s'.\n", def.Name)
		return nil
	},
}

var modelsExportCmd = &cobra.Command{
	Use:   "export <model> <file>",
	Short: "Write a model definition to a YAML or JSON file",
	Args:  cobra.ExactArgs(2),
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
		if err := file.Save(args[1], def); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported model '%s' to %s.\n", def.Name, args[1])
		return nil
	},
}

var modelsDeleteCmd = &cobra.Command{
	Use:   "delete <model>",
	Short: "Remove a model from the model store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.engine.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted model '%s'.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.AddCommand(modelsShowCmd, modelsImportCmd, modelsExportCmd, modelsDeleteCmd)

	modelsImportCmd.Flags().String("name", "", "Save under this name instead of the one in the file")
}
