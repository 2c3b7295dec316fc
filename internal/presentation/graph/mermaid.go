package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/viterbi/pkg/domain"
)

// PathOverlay marks a decoded path on the diagram.
type PathOverlay struct {
	// States is the decoded state sequence; every state in it is styled as visited.
	States []string
}

// GenerateMermaid produces a Mermaid flowchart of the hidden chain: one node
// per state, one edge per non-zero transition labelled with its probability.
// States with non-zero initial probability are drawn as circles and a state's
// emission distribution is listed inside its node.
// When overlay is set, the states it visits are highlighted and the final one
// is marked as current.
func GenerateMermaid(def *domain.Definition, overlay *PathOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, state := range def.States {
		safeID := sanitizeMermaidID(state)

		opener, closer := "[", "]"
		if def.Initial[state] > 0 {
			opener, closer = "((", "))"
		}

		label := state
		if emits := emissionSummary(def, state); emits != "" {
			label = fmt.Sprintf("%s <br/> %s", state, emits)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escape(label), closer))

		for _, to := range def.States {
			p := def.Transition[state][to]
			if p == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeID, formatProb(p), sanitizeMermaidID(to)))
		}
	}

	if overlay != nil && len(overlay.States) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high contrast regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visited := make(map[string]bool)
		for _, s := range overlay.States {
			safeID := sanitizeMermaidID(s)
			if !visited[safeID] && safeID != "" {
				visited[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}
		last := overlay.States[len(overlay.States)-1]
		sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(last)))
	}

	return sb.String()
}

func emissionSummary(def *domain.Definition, state string) string {
	parts := make([]string, 0, len(def.Symbols))
	for _, sym := range def.Symbols {
		if p := def.Emission[state][sym]; p > 0 {
			parts = append(parts, fmt.Sprintf("%s:%s", sym, formatProb(p)))
		}
	}
	return strings.Join(parts, " ")
}

func formatProb(p float64) string {
	return strconv.FormatFloat(p, 'g', 4, 64)
}

func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
