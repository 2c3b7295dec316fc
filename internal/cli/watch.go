package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/viterbi"
)

// watchModels announces model changes until ctx is done. The engine drops
// its compiled cache on every change, so the next decode sees the edit.
func watchModels(ctx context.Context, engine *viterbi.Engine, out io.Writer, logger *slog.Logger) error {
	changes, err := engine.Watch(ctx)
	if err != nil {
		return err
	}

	go func() {
		for name := range changes {
			logger.Info("Change detected, reloading", "model", name)
			printSystemMessage(out, "Change detected in '%s'.", name)
		}
	}()
	return nil
}
