package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/pomelo-edu/pomelo/internal/feedback"
	"github.com/pomelo-edu/pomelo/internal/ui/theme"
)

// Card renders a titled feedback section. Emphasized spans are highlighted;
// an empty body shows placeholder text.
func Card(title, body string, accent color.Color, width int) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	wrap := lipgloss.NewStyle().Width(inner)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(accent).Bold(true).Render(title))
	b.WriteString("\n")

	lines := feedback.Lines(body)
	if len(lines) == 0 {
		b.WriteString(theme.Hint.Render(feedback.EmptySectionText))
	}
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(wrap.Render(RenderSpans(line)))
	}

	return theme.Card.
		BorderForeground(accent).
		Width(width).
		Render(b.String())
}

// RenderSpans styles one line of spans.
func RenderSpans(line feedback.Line) string {
	var b strings.Builder
	for _, sp := range line {
		if sp.Emphasized {
			b.WriteString(theme.Emphasis.Render(sp.Text))
		} else {
			b.WriteString(theme.Body.Render(sp.Text))
		}
	}
	return b.String()
}
