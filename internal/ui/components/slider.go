package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pomelo-edu/pomelo/internal/ui/theme"
)

// Slider is a stepped integer slider between Min and Max.
type Slider struct {
	Min, Max int
	Value    int
	Width    int
	Focused  bool
}

// NewSlider creates a slider clamped to [min, max].
func NewSlider(min, max, value, width int) Slider {
	s := Slider{Min: min, Max: max, Width: width}
	s.Value = s.clamp(value)
	return s
}

func (s Slider) clamp(v int) int {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// Update steps the value with left/right while focused.
func (s Slider) Update(msg tea.Msg) (Slider, tea.Cmd) {
	if !s.Focused {
		return s, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "left", "h", "-":
			s.Value = s.clamp(s.Value - 1)
		case "right", "l", "+":
			s.Value = s.clamp(s.Value + 1)
		}
	}
	return s, nil
}

// View renders the bar followed by the numeric value.
func (s Slider) View() string {
	barWidth := s.Width - 6
	if barWidth < 4 {
		barWidth = 4
	}

	steps := s.Max - s.Min
	filled := barWidth
	if steps > 0 {
		filled = barWidth * (s.Value - s.Min) / steps
	}
	empty := barWidth - filled

	filledStyle := theme.SliderFilled
	if !s.Focused {
		filledStyle = filledStyle.Background(theme.TextDim)
	}

	bar := filledStyle.Render(strings.Repeat(" ", filled)) +
		theme.SliderEmpty.Render(strings.Repeat(" ", empty))

	return bar + lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("  %d", s.Value))
}
