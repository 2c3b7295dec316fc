package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/aretw0/viterbi/internal/presentation/tui"
	"github.com/aretw0/viterbi/pkg/domain"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Model    string
	Input    io.Reader
	Output   io.Writer
	Headless bool
	JSON     bool
	// Rich renders results as Markdown through glamour. It is ignored in
	// headless and JSON modes.
	Rich  bool
	Watch bool
}

// DefaultRunOptions reads from Stdin and writes to Stdout, rendering rich
// output when Stdout is a terminal.
func DefaultRunOptions(model string) RunOptions {
	return RunOptions{
		Model:  model,
		Input:  os.Stdin,
		Output: os.Stdout,
		Rich:   tui.IsTerminal(os.Stdout),
	}
}

// FormatJSON renders a result as one JSON line (NDJSON).
func FormatJSON(res domain.Result) string {
	data, err := json.Marshal(res)
	if err != nil {
		return `{"error":"` + err.Error() + `"}`
	}
	return string(data)
}
