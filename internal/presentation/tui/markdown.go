package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/viterbi/pkg/domain"
)

// DescribeMarkdown renders a model definition and its probability tables.
func DescribeMarkdown(def *domain.Definition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", def.Name)
	if def.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", def.Description)
	}
	fmt.Fprintf(&b, "**States:** %s  \n**Symbols:** %s\n\n",
		strings.Join(def.States, ", "), strings.Join(def.Symbols, ", "))

	b.WriteString("## Initial\n\n")
	writeTable(&b, "state", []string{"p"}, def.States, func(row, _ string) float64 {
		return def.Initial[row]
	})

	b.WriteString("\n## Transition\n\n")
	writeTable(&b, "from \\ to", def.States, def.States, func(row, col string) float64 {
		return def.Transition[row][col]
	})

	b.WriteString("\n## Emission\n\n")
	writeTable(&b, "state \\ symbol", def.Symbols, def.States, func(row, col string) float64 {
		return def.Emission[row][col]
	})
	return b.String()
}

func writeTable(b *strings.Builder, corner string, cols, rows []string, cell func(row, col string) float64) {
	fmt.Fprintf(b, "| %s | %s |\n", corner, strings.Join(cols, " | "))
	b.WriteString("|---" + strings.Repeat("|---:", len(cols)) + "|\n")
	for _, row := range rows {
		values := make([]string, len(cols))
		for i, col := range cols {
			values[i] = formatProb(cell(row, col))
		}
		fmt.Fprintf(b, "| %s | %s |\n", row, strings.Join(values, " | "))
	}
}

func formatProb(p float64) string {
	return strconv.FormatFloat(p, 'g', 6, 64)
}

// ResultMarkdown renders a decode result as a summary line and a step table.
func ResultMarkdown(res domain.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Model:** %s  \n**Score:** %g  \n**Path:** %s\n\n", res.Model, res.Score, PathLetters(res.States))
	b.WriteString("| t | observation | state |\n|---:|---|---|\n")
	for t, s := range res.States {
		fmt.Fprintf(&b, "| %d | %s | %s |\n", t, res.Observations[t], s)
	}
	return b.String()
}

// PathLetters abbreviates a state path to one letter per step (FFLLF) when
// the distinct labels have distinct first letters, and joins the full labels
// otherwise.
func PathLetters(states []string) string {
	first := make(map[rune]string)
	for _, s := range states {
		r, _ := utf8.DecodeRuneInString(s)
		if other, ok := first[r]; ok && other != s {
			return strings.Join(states, " ")
		}
		first[r] = s
	}

	var b strings.Builder
	for _, s := range states {
		r, _ := utf8.DecodeRuneInString(s)
		b.WriteRune(r)
	}
	return b.String()
}
