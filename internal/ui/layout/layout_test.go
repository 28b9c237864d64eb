package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{200, 60, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Feedback", "gemini-2.5-pro", 100)
	for _, want := range []string{"Pomelo", "Feedback", "gemini-2.5-pro"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderFooter(t *testing.T) {
	out := RenderFooter([]KeyHint{{Key: "Esc", Description: "Retour"}}, 80)
	if !strings.Contains(out, "Esc") || !strings.Contains(out, "Retour") {
		t.Errorf("footer missing hint:\n%s", out)
	}
}

func TestRenderMinSizeMessage(t *testing.T) {
	out := RenderMinSizeMessage(40, 10)
	if !strings.Contains(out, "40 x 10") {
		t.Errorf("expected current size in message:\n%s", out)
	}
}
