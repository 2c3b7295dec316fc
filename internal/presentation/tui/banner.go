package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	`       _ _            _     _ `,
	`__   _(_) |_ ___ _ __| |__ (_)`,
	`\ \ / / | __/ _ \ '__| '_ \| |`,
	` \ V /| | ||  __/ |  | |_) | |`,
	`  \_/ |_|\__\___|_|  |_.__/|_|`,
}

var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6"}

// PrintBanner writes the ASCII banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w, termenv.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}

var statePalette = []string{"#22c55e", "#ef4444", "#3b82f6", "#eab308", "#a855f7", "#14b8a6"}

// ColorPath renders a state path with one color per state index.
// The palette repeats after six states.
func ColorPath(states []string, indices []int) string {
	p := termenv.ColorProfile()
	parts := make([]string, len(states))
	for i, s := range states {
		color := statePalette[indices[i]%len(statePalette)]
		parts[i] = termenv.String(s).Foreground(p.Color(color)).Bold().String()
	}
	return strings.Join(parts, " ")
}
