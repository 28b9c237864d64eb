// Package export turns parsed feedback into shareable documents: a
// standalone HTML page and a PDF printed by a headless browser.
package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"

	"github.com/pomelo-edu/pomelo/internal/feedback"
)

// Title is the document title of every export.
const Title = "Feedback Pomelo"

var md = goldmark.New(goldmark.WithExtensions(extension.Typographer))

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: "Helvetica Neue", Arial, sans-serif; color: #2d2d2d; margin: 2.5em; line-height: 1.5; }
h1 { color: #e4572e; border-bottom: 2px solid #f3a712; padding-bottom: .3em; }
h2 { color: #4a4e69; margin-top: 1.6em; }
strong { color: #e4572e; }
hr { border: 0; border-top: 1px solid #ddd; margin: 2em 0; }
em { color: #888; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{.Body}}
</body>
</html>
`))

// HTML renders p as a complete HTML document. Raw HTML in the model reply is
// never passed through.
func HTML(p feedback.Parsed) (string, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(p.Markdown()), &body); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}

	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{Title: Title, Body: template.HTML(body.String())})
	if err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return out.String(), nil
}

// Printer prints HTML documents to PDF with a headless Chromium.
type Printer struct {
	browserBin string
	logger     *zap.Logger
}

// NewPrinter returns a Printer. An empty browserBin lets the launcher find or
// download a browser.
func NewPrinter(browserBin string, logger *zap.Logger) *Printer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Printer{browserBin: browserBin, logger: logger}
}

// PDF prints html and streams the resulting document into w.
func (p *Printer) PDF(ctx context.Context, html string, w io.Writer) error {
	if !browserAvailable(p.browserBin) {
		if p.browserBin != "" {
			return fmt.Errorf("browser not found at %s", p.browserBin)
		}
		p.logger.Info("no local browser found, downloading one")
	}

	l := launcher.New().Headless(true).Context(ctx)
	if p.browserBin != "" {
		l = l.Bin(p.browserBin)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	defer l.Cleanup()
	p.logger.Debug("browser launched", zap.String("control_url", u))

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect browser: %w", err)
	}
	defer browser.Close()

	pg, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	if err := pg.SetDocumentContent(html); err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if err := pg.WaitLoad(); err != nil {
		return fmt.Errorf("wait for document: %w", err)
	}

	r, err := pg.PDF(&proto.PagePrintToPDF{PrintBackground: true})
	if err != nil {
		return fmt.Errorf("print pdf: %w", err)
	}
	defer r.Close()

	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WritePDF renders parsed feedback and writes it as a PDF file at path.
func (p *Printer) WritePDF(ctx context.Context, parsed feedback.Parsed, path string) error {
	html, err := HTML(parsed)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := p.PDF(ctx, html, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	p.logger.Info("pdf exported", zap.String("path", path))
	return nil
}

// browserAvailable reports whether a local browser can be found without
// downloading one.
func browserAvailable(browserBin string) bool {
	if browserBin != "" {
		_, err := os.Stat(browserBin)
		return err == nil
	}
	_, ok := launcher.LookPath()
	return ok
}
