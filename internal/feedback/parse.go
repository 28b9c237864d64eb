package feedback

import (
	"regexp"
	"strings"
)

// Category classifies a synthesis bullet.
type Category string

const (
	CategoryWorking  Category = "working"
	CategoryToDeepen Category = "to-deepen"
	CategoryKeyIdea  Category = "key-idea"
	CategoryNextStep Category = "next-step"
)

// SynthesisItem is one categorized bullet of the closing synthesis.
type SynthesisItem struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// Parsed is the structured view over one model reply. Missing sections are
// empty, never an error.
type Parsed struct {
	Strengths    string          `json:"strengths"`
	Improvements string          `json:"improvements"`
	Suggestions  string          `json:"suggestions"`
	FinalMessage string          `json:"finalMessage"`
	Synthesis    []SynthesisItem `json:"synthesis"`
}

// IsEmpty reports whether nothing could be extracted from the reply.
func (p Parsed) IsEmpty() bool {
	return p.Strengths == "" && p.Improvements == "" && p.Suggestions == "" &&
		p.FinalMessage == "" && len(p.Synthesis) == 0
}

// sectionSpec ties a header (plus spellings models commonly produce) to the
// field it fills.
type sectionSpec struct {
	headers []string
	set     func(p *Parsed, body string)
}

// sections is the fixed header sequence. Each section ends where the next one
// in this list begins.
var sections = []sectionSpec{
	{headers: []string{HeaderStrengths}, set: func(p *Parsed, b string) { p.Strengths = b }},
	{headers: []string{HeaderImprovements}, set: func(p *Parsed, b string) { p.Improvements = b }},
	{headers: []string{HeaderSuggestions, "PISTES D'AMÉLIORATION :"}, set: func(p *Parsed, b string) { p.Suggestions = b }},
	{headers: []string{HeaderFinalMessage}, set: func(p *Parsed, b string) { p.FinalMessage = b }},
	{headers: []string{HeaderSynthesis}, set: nil},
}

// synthesisEnd bounds the synthesis section.
var synthesisEnd = []string{HeaderSelfCheck}

type markerSpec struct {
	category Category
	markers  []string
}

// synthesisMarkers are tested in order; the first match wins. The gear is
// listed with and without its emoji variation selector.
var synthesisMarkers = []markerSpec{
	{CategoryWorking, []string{MarkerWorking}},
	{CategoryToDeepen, []string{MarkerToDeepen, "⚙"}},
	{CategoryKeyIdea, []string{MarkerKeyIdea}},
	{CategoryNextStep, []string{MarkerNextStep}},
}

var bulletPrefix = regexp.MustCompile(`^[-*•]\s+`)

// Parse splits a raw model reply into its sections.
func Parse(raw string) Parsed {
	var p Parsed
	for i, s := range sections {
		ends := synthesisEnd
		if i+1 < len(sections) {
			ends = sections[i+1].headers
		}
		body := between(raw, s.headers, ends)
		if s.set != nil {
			s.set(&p, body)
			continue
		}
		p.Synthesis = parseSynthesis(body)
	}
	return p
}

// between returns the trimmed text after the first occurrence of any start
// header up to the first following occurrence of any end header. A missing
// start yields ""; a missing end runs to the end of text.
func between(text string, starts, ends []string) string {
	i, n := indexAny(text, starts)
	if i < 0 {
		return ""
	}
	rest := text[i+n:]
	if j, _ := indexAny(rest, ends); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}

// indexAny returns the earliest index of any needle and the matched length.
func indexAny(text string, needles []string) (int, int) {
	best, size := -1, 0
	for _, n := range needles {
		if i := strings.Index(text, n); i >= 0 && (best < 0 || i < best) {
			best, size = i, len(n)
		}
	}
	return best, size
}

func parseSynthesis(body string) []SynthesisItem {
	var items []SynthesisItem
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if item, ok := classifyLine(line); ok {
			items = append(items, item)
		}
	}
	return items
}

func classifyLine(line string) (SynthesisItem, bool) {
	for _, m := range synthesisMarkers {
		for _, marker := range m.markers {
			if !strings.Contains(line, marker) {
				continue
			}
			text := strings.TrimSpace(strings.Replace(line, marker, "", 1))
			text = bulletPrefix.ReplaceAllString(text, "")
			return SynthesisItem{Category: m.category, Text: strings.TrimSpace(text)}, true
		}
	}
	return SynthesisItem{}, false
}
