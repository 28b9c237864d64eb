package feedback

import (
	"slices"
	"strings"
	"testing"
)

func TestSections_Order(t *testing.T) {
	p := Parse(fullReply)
	sections := p.Sections()

	wantKinds := []SectionKind{SectionStrengths, SectionImprovements, SectionSuggestions, SectionFinalMessage}
	if len(sections) != len(wantKinds) {
		t.Fatalf("expected %d sections, got %d", len(wantKinds), len(sections))
	}
	for i, s := range sections {
		if s.Kind != wantKinds[i] {
			t.Errorf("section %d kind = %q, want %q", i, s.Kind, wantKinds[i])
		}
		if s.Title == "" || s.Body == "" {
			t.Errorf("section %d has empty title or body: %+v", i, s)
		}
	}
}

func TestMarkdown_FullReply(t *testing.T) {
	md := Parse(fullReply).Markdown()

	for _, want := range []string{
		"## 🟢 Points forts",
		"## 🟡 Points à améliorer",
		"## 🧡 Pistes d’amélioration",
		"## 💬 Message final",
		"Une thèse **claire** dès l'introduction.",
		"## Synthèse",
		"- ✅ Clarté du plan",
		"- 🔁 Relier à un cadre théorique",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
}

func TestMarkdown_EmptySections(t *testing.T) {
	md := Parsed{Strengths: "Seul contenu."}.Markdown()

	if n := strings.Count(md, EmptySectionText); n != 3 {
		t.Errorf("expected 3 empty placeholders, got %d\n%s", n, md)
	}
	if strings.Contains(md, "## Synthèse") {
		t.Error("synthesis block rendered without items")
	}
}

func TestCategoryMarkerAndLabel(t *testing.T) {
	tests := []struct {
		c      Category
		marker string
	}{
		{CategoryWorking, MarkerWorking},
		{CategoryToDeepen, MarkerToDeepen},
		{CategoryKeyIdea, MarkerKeyIdea},
		{CategoryNextStep, MarkerNextStep},
	}
	for _, tt := range tests {
		if got := tt.c.Marker(); got != tt.marker {
			t.Errorf("%s.Marker() = %q, want %q", tt.c, got, tt.marker)
		}
		if tt.c.Label() == string(tt.c) {
			t.Errorf("%s has no French label", tt.c)
		}
	}
}

func TestRandomQuote(t *testing.T) {
	for i := 0; i < 20; i++ {
		if q := RandomQuote(); !slices.Contains(quotes, q) {
			t.Fatalf("unexpected quote %q", q)
		}
	}
}
