package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/pomelo-edu/pomelo/internal/feedback"
)

const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatPretty   = "pretty"
	formatJSON     = "json"
	formatRaw      = "raw"
)

func validFormat(f string) error {
	switch f {
	case formatText, formatMarkdown, formatPretty, formatJSON, formatRaw:
		return nil
	}
	return fmt.Errorf("unknown format %q (want text, markdown, pretty, json or raw)", f)
}

// feedbackOutput is the JSON shape printed by --format json.
type feedbackOutput struct {
	RequestID string          `json:"requestId,omitempty"`
	Model     string          `json:"model,omitempty"`
	Raw       string          `json:"raw"`
	Feedback  feedback.Parsed `json:"feedback"`
}

// render writes the feedback in the requested format.
func render(w io.Writer, format string, out feedbackOutput) error {
	switch format {
	case formatRaw:
		_, err := fmt.Fprintln(w, strings.TrimRight(out.Raw, "\n"))
		return err
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(out)
	case formatMarkdown:
		_, err := io.WriteString(w, out.Feedback.Markdown())
		return err
	case formatPretty:
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("init markdown renderer: %w", err)
		}
		s, err := r.Render(out.Feedback.Markdown())
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		_, err = io.WriteString(w, s)
		return err
	default:
		_, err := io.WriteString(w, plainText(out.Feedback))
		return err
	}
}

// plainText lays the feedback out with section titles and no markup.
func plainText(p feedback.Parsed) string {
	var b strings.Builder
	for i, s := range p.Sections() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Title + "\n")
		b.WriteString(strings.Repeat("─", 40) + "\n")
		lines := feedback.Lines(s.Body)
		if len(lines) == 0 {
			b.WriteString(feedback.EmptySectionText + "\n")
			continue
		}
		for _, line := range lines {
			b.WriteString(line.PlainText() + "\n")
		}
	}

	if len(p.Synthesis) > 0 {
		b.WriteString("\nSynthèse\n")
		b.WriteString(strings.Repeat("─", 40) + "\n")
		for _, item := range p.Synthesis {
			fmt.Fprintf(&b, "%s %s : %s\n", item.Category.Marker(), item.Category.Label(), item.Text)
		}
	}
	return b.String()
}
