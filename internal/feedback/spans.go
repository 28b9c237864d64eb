package feedback

import (
	"regexp"
	"strings"
)

// Span is a run of inline text, either plain or emphasized.
type Span struct {
	Text       string `json:"text"`
	Emphasized bool   `json:"emphasized,omitempty"`
}

// Line is one rendered paragraph of a section.
type Line []Span

var emphasis = regexp.MustCompile(`\*\*.*?\*\*`)

// Lines splits section content into paragraphs of inline spans. Blank lines
// are skipped and text wrapped in ** is flagged as emphasized.
func Lines(content string) []Line {
	var out []Line
	for _, raw := range strings.Split(content, "\n") {
		raw = strings.TrimRight(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if spans := Spans(raw); len(spans) > 0 {
			out = append(out, spans)
		}
	}
	return out
}

// Spans splits a single line on **emphasis** markers.
func Spans(line string) Line {
	var spans Line
	last := 0
	for _, loc := range emphasis.FindAllStringIndex(line, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Text: line[last:loc[0]]})
		}
		if inner := line[loc[0]+2 : loc[1]-2]; inner != "" {
			spans = append(spans, Span{Text: inner, Emphasized: true})
		}
		last = loc[1]
	}
	if last < len(line) {
		spans = append(spans, Span{Text: line[last:]})
	}
	return spans
}

// PlainText joins the spans without emphasis markers.
func (l Line) PlainText() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}
