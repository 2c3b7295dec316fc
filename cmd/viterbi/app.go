package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/viterbi"
	"github.com/aretw0/viterbi/internal/cli"
	"github.com/aretw0/viterbi/internal/config"
	"github.com/aretw0/viterbi/internal/logging"
	"github.com/aretw0/viterbi/internal/presentation/tui"
	"github.com/spf13/cobra"
)

// app bundles what every command needs: configuration, a logger and an
// engine over the configured model sources.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	engine *viterbi.Engine
	close  func() error
}

// loadConfig reads VITERBI_* variables and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("models") {
		cfg.ModelsDir, _ = flags.GetString("models")
	}
	if flags.Changed("redis") {
		cfg.RedisAddr, _ = flags.GetString("redis")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// openApp wires the engine for cmd. One-shot commands stay quiet unless a
// log level was asked for; long-running servers always log.
func openApp(cmd *cobra.Command, server bool, opts ...viterbi.Option) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	logger := logging.NewNop()
	if server || debug || cmd.Flags().Changed("log-level") {
		if logger, err = logging.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
			return nil, err
		}
	}

	loader, closeFn, err := cli.OpenLoader(cmd.Context(), cli.SourcesFromConfig(cfg), logger)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		engine: cli.CreateEngine(loader, logger, debug, opts...),
		close:  closeFn,
	}, nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && tui.IsTerminal(f)
}

// renderMarkdown renders md through glamour on terminals and returns it
// verbatim otherwise.
func renderMarkdown(w io.Writer, md string) string {
	if !isTerminal(w) {
		return md
	}
	render, err := tui.NewRenderer()
	if err != nil {
		return md
	}
	out, err := render(md)
	if err != nil {
		return md
	}
	return out
}

// parseSymbols accepts observations as separate arguments, comma lists or a
// mix of both.
func parseSymbols(parts ...string) []string {
	return viterbi.SplitSymbols(strings.Join(strings.Fields(strings.Join(parts, " ")), " "))
}

func readSymbolsFile(cmd *cobra.Command, path string) ([]string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read observations: %w", err)
	}
	return parseSymbols(string(data)), nil
}
