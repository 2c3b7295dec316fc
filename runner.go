package viterbi

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/viterbi/pkg/domain"
)

// Runner reads observation sequences line by line and prints their decoding.
// This allows for easy testing and integration with different frontends (CLI, TUI, pipes).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Format   ResultFormatter
	Renderer ContentRenderer
	// MaxInputSize caps one input line in bytes; 0 means DefaultMaxInputSize.
	MaxInputSize int
}

// ResultFormatter turns a decode result into text (plain or Markdown).
type ResultFormatter func(domain.Result) string

// ContentRenderer is a function that transforms the formatted text before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner with plain formatting.
// Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{
		Format: FormatPlain,
	}
}

// FormatPlain renders a result as two lines: the state path and the score.
func FormatPlain(res domain.Result) string {
	return fmt.Sprintf("%s\nscore: %g", strings.Join(res.States, " "), res.Score)
}

// SplitSymbols splits a line of observations on whitespace and commas.
func SplitSymbols(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// Run decodes every non-empty input line against the named model until EOF,
// "exit" or "quit". Decode errors are printed and the loop continues, except
// in headless mode where the first error is returned.
func (r *Runner) Run(ctx context.Context, engine *Engine, model string) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	format := r.Format
	if format == nil {
		format = FormatPlain
	}

	limit := r.MaxInputSize
	if limit <= 0 {
		limit = DefaultMaxInputSize
	}
	lines := bufio.NewReader(r.Input)
	if !r.Headless {
		fmt.Fprintf(r.Output, "--- viterbi: decoding with %q (exit to quit) ---\n", model)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.Headless {
			fmt.Fprint(r.Output, "> ")
		}
		raw, err := readLine(lines, limit)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil && !errors.Is(err, ErrInputTooLarge) {
			return fmt.Errorf("input error: %w", err)
		}

		line := strings.TrimSpace(raw)
		if err == nil {
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				if !r.Headless {
					fmt.Fprintln(r.Output, "Bye!")
				}
				return nil
			}
			line, err = SanitizeInput(line, limit)
		}
		if err == nil {
			var res domain.Result
			res, err = engine.Decode(ctx, model, SplitSymbols(line))
			if err == nil {
				r.print(format, res)
				continue
			}
		}
		if err != nil {
			if r.Headless {
				return fmt.Errorf("decode error: %w", err)
			}
			fmt.Fprintf(r.Output, "error: %v\n", err)
		}
	}
}

// readLine returns the next line without its terminator. A line longer than
// limit is consumed up to its newline and reported as ErrInputTooLarge, so
// the reader stays positioned at the following line.
func readLine(br *bufio.Reader, limit int) (string, error) {
	var buf []byte
	size := 0
	for {
		chunk, err := br.ReadSlice('\n')
		size += len(chunk)
		if len(buf) <= limit+2 {
			buf = append(buf, chunk...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && (!errors.Is(err, io.EOF) || size == 0) {
			return "", err
		}
		break
	}

	line := strings.TrimRight(string(buf), "\r\n")
	if len(buf) > limit+2 || len(line) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, size, limit)
	}
	return line, nil
}

func (r *Runner) print(format ResultFormatter, res domain.Result) {
	output := format(res)
	if r.Renderer != nil {
		if rendered, err := r.Renderer(output); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimSpace(output))
}
