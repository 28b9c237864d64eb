package result

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/pomelo-edu/pomelo/internal/feedback"
	"github.com/pomelo-edu/pomelo/internal/ui/components"
	"github.com/pomelo-edu/pomelo/internal/ui/layout"
	"github.com/pomelo-edu/pomelo/internal/ui/theme"
)

// sectionColors maps each prose section to its card accent.
var sectionColors = map[feedback.SectionKind]color.Color{
	feedback.SectionStrengths:    theme.Success,
	feedback.SectionImprovements: theme.Warning,
	feedback.SectionSuggestions:  theme.Primary,
	feedback.SectionFinalMessage: theme.TextDim,
}

var categoryColors = map[feedback.Category]color.Color{
	feedback.CategoryWorking:  theme.Success,
	feedback.CategoryToDeepen: theme.Info,
	feedback.CategoryKeyIdea:  theme.Warning,
	feedback.CategoryNextStep: theme.Secondary,
}

func (s *ResultScreen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return renderLoading(width, s.spinner.View())
	case phaseError:
		return renderError(width, s.errMsg)
	}

	actions := s.renderActions(width)
	bodyHeight := height - lipgloss.Height(actions) - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	s.viewport.SetWidth(width)
	s.viewport.SetHeight(bodyHeight)
	s.viewport.SetContent(renderFeedback(s.parsed, width))

	return actions + "\n" + s.viewport.View()
}

// renderActions renders the action bar and status line.
func (s *ResultScreen) renderActions(width int) string {
	copyText := copyLabel
	if s.copied {
		copyText = copiedLabel
	}

	exportText := exportLabel
	if s.exporting {
		exportText = "Export..."
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center,
		theme.ButtonActive.Render("[r] "+refineLabel),
		"  ",
		theme.ButtonInactive.Foreground(theme.Text).Render("[c] "+copyText),
		"  ",
		theme.ButtonInactive.Foreground(theme.Text).Render("[p] "+exportText),
	)

	out := "  " + bar
	if s.status != "" {
		style := theme.Hint
		if s.statusErr {
			style = theme.Alert
		}
		out += "\n  " + style.Render(s.status)
	}
	return out
}

// renderFeedback renders the four prose cards followed by the synthesis
// grid when it has items.
func renderFeedback(p feedback.Parsed, width int) string {
	sections := p.Sections()

	var b strings.Builder
	if layout.IsCompactWidth(width) {
		cardWidth := width - 4
		for _, sec := range sections {
			b.WriteString(components.Card(sec.Title, sec.Body, sectionColors[sec.Kind], cardWidth))
			b.WriteString("\n")
		}
	} else {
		cardWidth := (width - 6) / 2
		for i := 0; i < len(sections); i += 2 {
			left := components.Card(sections[i].Title, sections[i].Body, sectionColors[sections[i].Kind], cardWidth)
			right := components.Card(sections[i+1].Title, sections[i+1].Body, sectionColors[sections[i+1].Kind], cardWidth)
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
			b.WriteString("\n")
		}
	}

	if len(p.Synthesis) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("╌", max(width-4, 1))))
		b.WriteString("\n")
		b.WriteString(renderSynthesis(p.Synthesis, width))
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(b.String())
}

// renderSynthesis lays synthesis items out two per row.
func renderSynthesis(items []feedback.SynthesisItem, width int) string {
	cellWidth := (width - 8) / 2
	if cellWidth < 20 {
		cellWidth = 20
	}

	cells := make([]string, 0, len(items))
	for _, item := range items {
		accent := categoryColors[item.Category]
		head := lipgloss.NewStyle().Foreground(accent).Bold(true).
			Render(item.Category.Marker() + " " + item.Category.Label())
		text := lipgloss.NewStyle().Width(cellWidth - 2).Foreground(theme.Text).
			Render(item.Text)
		cells = append(cells, lipgloss.NewStyle().Width(cellWidth).PaddingBottom(1).
			Render(head+"\n"+text))
	}

	var rows []string
	for i := 0; i < len(cells); i += 2 {
		if i+1 < len(cells) {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[i], "  ", cells[i+1]))
		} else {
			rows = append(rows, cells[i])
		}
	}
	return strings.Join(rows, "\n")
}

// renderLoading renders the waiting state.
func renderLoading(width int, spin string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n" + spin + " " + loadingText)
}

// renderError renders a failed request.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("\n\n\nErreur: " + errMsg + "\n\n" +
			theme.Hint.Render("R pour réessayer, Esc pour revenir au formulaire."))
}
