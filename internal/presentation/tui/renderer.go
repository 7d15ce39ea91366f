package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/espalier/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// DecisionMarkdown renders a decision and its candidate table as markdown.
func DecisionMarkdown(d domain.Decision) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Selected: %s\n\n", d.Operator)
	fmt.Fprintf(&b, "Phase **%s**, coherence **%.3f**\n\n", d.Phase, d.State.Coherence)

	b.WriteString("| Operator | Cost | Outcome |\n")
	b.WriteString("|----------|------|---------|\n")
	for _, c := range d.Candidates {
		outcome := "legal"
		cost := fmt.Sprintf("%.4f", c.Cost)
		if c.Rejected != "" {
			outcome = c.Rejected
			cost = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", c.Operator, cost, outcome)
	}
	return b.String()
}

// SequenceMarkdown renders a generated operator sequence as markdown.
func SequenceMarkdown(steps []domain.Decision, exhausted bool) string {
	var b strings.Builder

	b.WriteString("## Generated sequence\n\n")
	if len(steps) == 0 {
		b.WriteString("No legal operator from the starting point.\n")
		return b.String()
	}

	b.WriteString("| Step | Operator | Phase | Coherence |\n")
	b.WriteString("|------|----------|-------|-----------|\n")
	for i, step := range steps {
		fmt.Fprintf(&b, "| %d | %s | %s | %.3f |\n", i+1, step.Operator, step.Phase, step.State.Coherence)
	}
	if exhausted {
		b.WriteString("\nStopped early: no legal operator remained.\n")
	}
	return b.String()
}
