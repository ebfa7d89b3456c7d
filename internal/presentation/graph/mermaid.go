package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/goap/pkg/domain"
)

// PlanOverlay marks a solved plan on the dependency graph.
type PlanOverlay struct {
	Actions []string
}

// GenerateMermaid produces a Mermaid flowchart of action dependencies: an edge
// A --> B exists when A raises a condition B requires, labelled with the keys.
// Shapes:
// - Entry (no preconditions): ((Circle))
// - Free (zero cost): [[Subroutine]]
// - Default: [Rectangle]
// Plan actions are styled when an overlay is given; the final action is marked current.
func GenerateMermaid(c domain.Catalogue, overlay *PlanOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	keys := c.Keys()
	for _, key := range keys {
		a := c[key]
		safeID := sanitizeMermaidID(key)

		opener, closer := "[", "]"
		switch {
		case a.Preconditions.Len() == 0:
			opener, closer = "((", "))"
		case a.Cost == 0:
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s <br/> cost %g\"%s\n", safeID, opener, key, a.Cost, closer))
	}

	for _, from := range keys {
		for _, to := range keys {
			if from == to {
				continue
			}
			shared := enables(c[from], c[to])
			if len(shared) == 0 {
				continue
			}
			label := strings.ReplaceAll(strings.Join(shared, ", "), "\"", "'")
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", sanitizeMermaidID(from), label, sanitizeMermaidID(to)))
		}
	}

	if overlay != nil && len(overlay.Actions) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		last := len(overlay.Actions) - 1
		visitedSet := make(map[string]bool)
		for _, key := range overlay.Actions[:last] {
			safeID := sanitizeMermaidID(key)
			if _, ok := c[key]; ok && !visitedSet[safeID] {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}
		sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.Actions[last])))
	}

	return sb.String()
}

// enables lists the precondition keys of to that from increases.
func enables(from, to domain.Action) []string {
	var keys []string
	for _, k := range to.Preconditions.Keys() {
		if delta, ok := from.Effects.Lookup(k); ok && delta > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
