package feedback

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// SectionKind identifies one of the four prose sections.
type SectionKind string

const (
	SectionStrengths    SectionKind = "strengths"
	SectionImprovements SectionKind = "improvements"
	SectionSuggestions  SectionKind = "suggestions"
	SectionFinalMessage SectionKind = "finalMessage"
)

// Section is a titled prose section ready for display.
type Section struct {
	Kind  SectionKind
	Title string
	Body  string
}

// EmptySectionText is shown in place of a section the model left out.
const EmptySectionText = "Aucun contenu pour cette section."

// Sections returns the prose sections in display order.
func (p Parsed) Sections() []Section {
	return []Section{
		{Kind: SectionStrengths, Title: "🟢 Points forts", Body: p.Strengths},
		{Kind: SectionImprovements, Title: "🟡 Points à améliorer", Body: p.Improvements},
		{Kind: SectionSuggestions, Title: "🧡 Pistes d’amélioration", Body: p.Suggestions},
		{Kind: SectionFinalMessage, Title: "💬 Message final", Body: p.FinalMessage},
	}
}

// Marker returns the emoji a synthesis category is detected by.
func (c Category) Marker() string {
	switch c {
	case CategoryWorking:
		return MarkerWorking
	case CategoryToDeepen:
		return MarkerToDeepen
	case CategoryKeyIdea:
		return MarkerKeyIdea
	case CategoryNextStep:
		return MarkerNextStep
	}
	return ""
}

// Label returns the French caption of a synthesis category.
func (c Category) Label() string {
	switch c {
	case CategoryWorking:
		return "Ce qui fonctionne bien"
	case CategoryToDeepen:
		return "Ce qui gagnerait à être approfondi"
	case CategoryKeyIdea:
		return "Une idée clé à retenir"
	case CategoryNextStep:
		return "Une piste de réflexion pour la suite"
	}
	return string(c)
}

// Markdown renders the parsed feedback as a markdown document. Emphasis in
// section bodies is preserved as **bold**.
func (p Parsed) Markdown() string {
	var b strings.Builder
	for i, s := range p.Sections() {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", s.Title)
		lines := Lines(s.Body)
		if len(lines) == 0 {
			fmt.Fprintf(&b, "_%s_\n", EmptySectionText)
			continue
		}
		for _, l := range lines {
			for _, sp := range l {
				if sp.Emphasized {
					b.WriteString("**" + sp.Text + "**")
				} else {
					b.WriteString(sp.Text)
				}
			}
			b.WriteString("\n\n")
		}
	}

	if len(p.Synthesis) > 0 {
		b.WriteString("\n---\n\n## Synthèse\n\n")
		for _, item := range p.Synthesis {
			fmt.Fprintf(&b, "- %s %s\n", item.Category.Marker(), item.Text)
		}
	}
	return b.String()
}

var quotes = []string{
	"Un bon feedback éclaire sans éblouir.",
	"L'art d'enseigner, c'est l'art d'aider à la découverte.",
	"Le meilleur feedback est une boussole, pas une carte.",
	"Évaluer pour faire grandir, non pour juger.",
	"Chaque mot compte dans le parcours d'un apprenant.",
}

// RandomQuote picks one of the header quotes.
func RandomQuote() string {
	return quotes[rand.IntN(len(quotes))]
}
