package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/goap/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return markdown, err
		}
		return r.Render(markdown)
	}
}

// PlanMarkdown describes a plan as a markdown step table. Costs come from the
// catalogue when it knows the action; the changes column is filled from trace
// (as returned by Planner.Trace) and left out when trace is nil.
func PlanMarkdown(plan domain.Plan, c domain.Catalogue, trace []domain.Step) string {
	var sb strings.Builder
	if !plan.Found() {
		sb.WriteString("# No plan\n\nThe goal cannot be reached from this start state.\n")
		return sb.String()
	}

	deltas := make(map[int]domain.StateDiff, len(trace))
	for i, step := range trace {
		deltas[i] = step.Delta
	}

	sb.WriteString("# Plan\n\n")
	sb.WriteString(fmt.Sprintf("**%d** actions, total cost **%g**, %d iterations.\n\n", len(plan.Path.Actions()), plan.Cost, plan.Iterations))
	if trace != nil {
		sb.WriteString("| # | Action | Cost | Changes |\n|---|--------|------|---------|\n")
	} else {
		sb.WriteString("| # | Action | Cost |\n|---|--------|------|\n")
	}

	n := 0
	for i, node := range plan.Path {
		if node.IsState() {
			continue
		}
		n++
		cost := "?"
		if a, ok := c[node.Action]; ok {
			cost = fmt.Sprintf("%g", a.Cost)
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %s |", n, node.Action, cost))
		if trace != nil {
			sb.WriteString(" " + formatDiff(deltas[i]) + " |")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatDiff renders a diff as "Money=10, -Rested".
func formatDiff(d domain.StateDiff) string {
	if d.IsEmpty() {
		return "-"
	}
	keys := make([]string, 0, len(d.Changed))
	for k := range d.Changed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+len(d.Removed))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%g", k, d.Changed[k]))
	}
	for _, k := range d.Removed {
		parts = append(parts, "-"+k)
	}
	return strings.Join(parts, ", ")
}
