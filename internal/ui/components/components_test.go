package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/pomelo-edu/pomelo/internal/feedback"
	"github.com/pomelo-edu/pomelo/internal/ui/theme"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestSelectorMovesWhenFocused(t *testing.T) {
	s := NewSelector([]string{"A", "B", "C"}, 1)

	s, _ = s.Update(key(tea.KeyRight))
	if s.Selected != 1 {
		t.Fatalf("unfocused selector moved to %d", s.Selected)
	}

	s.Focused = true
	s, _ = s.Update(key(tea.KeyRight))
	s, _ = s.Update(key(tea.KeyRight))
	if s.Selected != 2 {
		t.Errorf("Selected = %d, want 2 (clamped)", s.Selected)
	}
	s, _ = s.Update(key(tea.KeyLeft))
	if s.Selected != 1 {
		t.Errorf("Selected = %d, want 1", s.Selected)
	}
}

func TestNewSelectorClampsSelection(t *testing.T) {
	if s := NewSelector([]string{"A"}, 5); s.Selected != 0 {
		t.Errorf("Selected = %d, want 0", s.Selected)
	}
}

func TestSlider(t *testing.T) {
	tests := []struct {
		name  string
		start int
		keys  []rune
		want  int
	}{
		{"step up", 2, []rune{tea.KeyRight}, 3},
		{"clamp max", 3, []rune{tea.KeyRight, tea.KeyRight}, 3},
		{"clamp min", 1, []rune{tea.KeyLeft}, 1},
		{"down then up", 2, []rune{tea.KeyLeft, tea.KeyRight}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSlider(1, 3, tt.start, 20)
			s.Focused = true
			for _, k := range tt.keys {
				s, _ = s.Update(key(k))
			}
			if s.Value != tt.want {
				t.Errorf("Value = %d, want %d", s.Value, tt.want)
			}
		})
	}

	if s := NewSlider(1, 3, 9, 20); s.Value != 3 {
		t.Errorf("NewSlider did not clamp: %d", s.Value)
	}
}

func TestButtonPress(t *testing.T) {
	pressed := false
	b := NewButton("Go", func() tea.Cmd {
		pressed = true
		return nil
	})

	b.Update(key(tea.KeyEnter))
	if pressed {
		t.Fatal("unfocused button fired")
	}

	b.Focused = true
	b.Disabled = true
	b.Update(key(tea.KeyEnter))
	if pressed {
		t.Fatal("disabled button fired")
	}

	b.Disabled = false
	b.Update(key(tea.KeyEnter))
	if !pressed {
		t.Fatal("expected button to fire")
	}
}

func TestCard(t *testing.T) {
	out := Card("Points forts", "Une **idée** claire", theme.Success, 60)
	if !strings.Contains(out, "Points forts") || !strings.Contains(out, "idée") {
		t.Errorf("card missing content:\n%s", out)
	}
	if strings.Contains(out, "**") {
		t.Errorf("card kept emphasis markers:\n%s", out)
	}

	empty := Card("Message final", "", theme.Info, 60)
	if !strings.Contains(empty, feedback.EmptySectionText) {
		t.Errorf("empty card missing placeholder:\n%s", empty)
	}
}
