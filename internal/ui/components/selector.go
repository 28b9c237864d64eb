package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/pomelo-edu/pomelo/internal/ui/theme"
)

// Selector is a horizontal single-choice row of chips.
type Selector struct {
	Options  []string
	Selected int
	Focused  bool
}

// NewSelector creates a selector with the given option labels.
func NewSelector(options []string, selected int) Selector {
	if selected < 0 || selected >= len(options) {
		selected = 0
	}
	return Selector{Options: options, Selected: selected}
}

// Update moves the selection with left/right (or h/l) while focused.
func (s Selector) Update(msg tea.Msg) (Selector, tea.Cmd) {
	if !s.Focused {
		return s, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if s.Selected > 0 {
			s.Selected--
		}
	case "right", "l":
		if s.Selected < len(s.Options)-1 {
			s.Selected++
		}
	}
	return s, nil
}

// View renders the chips on one line.
func (s Selector) View() string {
	parts := make([]string, len(s.Options))
	for i, opt := range s.Options {
		switch {
		case i == s.Selected:
			parts[i] = theme.ChipActive.Render(opt)
		case s.Focused:
			parts[i] = theme.ChipInactive.Render(opt)
		default:
			parts[i] = theme.ChipInactive.Foreground(theme.TextDim).Render(opt)
		}
	}
	return strings.Join(parts, " ")
}
