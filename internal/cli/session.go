package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/viterbi"
	"github.com/aretw0/viterbi/internal/presentation/tui"
)

// RunSession runs an interactive (or headless) decoding session until the
// input ends, the user quits or a signal arrives.
func RunSession(ctx context.Context, engine *viterbi.Engine, opts RunOptions, logger *slog.Logger) error {
	interactive := !opts.Headless && !opts.JSON
	if interactive {
		tui.PrintBanner(opts.Output, viterbi.Version)
	}

	r := viterbi.NewRunner()
	r.Input = opts.Input
	r.Output = opts.Output
	r.Headless = !interactive
	switch {
	case opts.JSON:
		r.Format = FormatJSON
	case opts.Rich && interactive:
		r.Format = tui.ResultMarkdown
		renderer, err := tui.NewRenderer()
		if err != nil {
			logger.Warn("Markdown renderer unavailable, using plain output", "err", err)
			r.Format = viterbi.FormatPlain
		} else {
			r.Renderer = renderer
		}
	}

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	if opts.Watch {
		if err := watchModels(sigCtx, engine, opts.Output, logger); err != nil {
			logger.Warn("Watch disabled", "err", err)
		}
	}

	// The scanner blocks on input, so the session runs aside and a signal
	// ends it without waiting for the next line.
	done := make(chan error, 1)
	go func() {
		done <- r.Run(sigCtx, engine, opts.Model)
	}()

	var runErr error
	select {
	case runErr = <-done:
	case <-sigCtx.Done():
		runErr = sigCtx.Err()
	}

	if interactive {
		logCompletion(opts.Output, opts.Model, runErr, sigCtx.Signal())
	}
	return handleExecutionError(runErr)
}
