package result

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/pomelo-edu/pomelo/internal/export"
	"github.com/pomelo-edu/pomelo/internal/feedback"
	"github.com/pomelo-edu/pomelo/internal/llm"
	"github.com/pomelo-edu/pomelo/internal/router"
	"github.com/pomelo-edu/pomelo/internal/screen"
	"github.com/pomelo-edu/pomelo/internal/ui/layout"
	"github.com/pomelo-edu/pomelo/internal/ui/theme"
)

const (
	copyLabel       = "Copier le texte"
	copiedLabel     = "Copié !"
	refineLabel     = "Affiner le feedback"
	exportLabel     = "Exporter en PDF"
	loadingText     = "Analyse en cours, veuillez patienter..."
	copyResetDelay  = 2 * time.Second
	exportTimeout   = 2 * time.Minute
	exportFileStamp = "20060102-150405"
)

// Deps are the collaborators shared by the form and result screens.
type Deps struct {
	Service *feedback.Service
	Session *feedback.Session
	// Printer exports PDFs. Nil disables export.
	Printer   *export.Printer
	ExportDir string
	// Copy writes text to the clipboard. Defaults to the system clipboard.
	Copy   func(string) error
	Logger *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Copy == nil {
		d.Copy = clipboard.WriteAll
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.ExportDir == "" {
		d.ExportDir = "."
	}
	return d
}

type phase int

const (
	phaseLoading phase = iota
	phaseError
	phaseDone
)

// ResultScreen waits for a ticketed request and displays the parsed
// feedback.
type ResultScreen struct {
	deps   Deps
	ticket feedback.Ticket
	phase  phase
	cancel context.CancelFunc

	raw    string
	parsed feedback.Parsed
	errMsg string

	spinner  spinner.Model
	viewport viewport.Model

	copied    bool
	copyGen   int
	exporting bool
	status    string
	statusErr bool
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)
var _ screen.Closer = (*ResultScreen)(nil)

// New creates a ResultScreen for a ticket already issued by deps.Session.
func New(deps Deps, ticket feedback.Ticket) *ResultScreen {
	return &ResultScreen{
		deps:     deps.withDefaults(),
		ticket:   ticket,
		phase:    phaseLoading,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Emphasis)),
		viewport: viewport.New(),
	}
}

func (s *ResultScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.run("feedback"))
}

func (s *ResultScreen) Title() string {
	return "Feedback"
}

// Close cancels the in-flight request, if any.
func (s *ResultScreen) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseLoading:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Annuler"},
		}
	case phaseError:
		return []layout.KeyHint{
			{Key: "R", Description: "Réessayer"},
			{Key: "Esc", Description: "Retour"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Défiler"},
		{Key: "C", Description: "Copier"},
		{Key: "R", Description: "Affiner"},
		{Key: "P", Description: "PDF"},
		{Key: "Esc", Description: "Retour"},
	}
}

// run issues the model call for the current ticket.
func (s *ResultScreen) run(purpose string) tea.Cmd {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(llm.WithPurpose(context.Background(), purpose))
	s.cancel = cancel

	svc, ticket := s.deps.Service, s.ticket
	return func() tea.Msg {
		return DoneMsg{Result: svc.Run(ctx, ticket)}
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case DoneMsg:
		return s.handleDone(msg)

	case spinner.TickMsg:
		if s.phase != phaseLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case copyResetMsg:
		if msg.gen == s.copyGen {
			s.copied = false
		}
		return s, nil

	case exportDoneMsg:
		s.exporting = false
		if msg.Err != nil {
			s.setStatus(fmt.Sprintf("Erreur: export PDF impossible (%v)", msg.Err), true)
			return s, nil
		}
		s.setStatus("PDF enregistré : "+msg.Path, false)
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *ResultScreen) handleDone(msg DoneMsg) (screen.Screen, tea.Cmd) {
	if !s.deps.Session.Complete(msg.Result.Ticket) {
		s.deps.Logger.Debug("dropped stale feedback result",
			zap.String("ticket", msg.Result.Ticket.ID))
		return s, nil
	}

	if err := msg.Result.Err; err != nil {
		s.phase = phaseError
		s.errMsg = errorText(err)
		s.deps.Logger.Warn("feedback request failed",
			zap.String("ticket", msg.Result.Ticket.ID),
			zap.Error(err),
		)
		return s, nil
	}

	s.phase = phaseDone
	s.raw = msg.Result.Raw
	s.parsed = msg.Result.Feedback
	s.viewport.GotoTop()
	s.deps.Logger.Info("feedback received",
		zap.String("ticket", msg.Result.Ticket.ID),
		zap.Int("synthesis_items", len(s.parsed.Synthesis)),
		zap.Bool("empty", s.parsed.IsEmpty()),
	)
	return s, nil
}

func errorText(err error) string {
	var reqErr *feedback.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message()
	}
	return err.Error()
}

func (s *ResultScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseLoading:
		return s, nil
	case phaseError:
		if msg.String() == "r" {
			return s, s.retry()
		}
		return s, nil
	}

	switch msg.String() {
	case "c":
		return s, s.copy()
	case "r":
		return s, s.refine()
	case "p":
		return s, s.exportPDF()
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

// refine re-submits the last request parameters under a new ticket.
func (s *ResultScreen) refine() tea.Cmd {
	req, ok := s.deps.Session.LastRequest()
	if !ok || s.deps.Session.InFlight() {
		return nil
	}
	s.ticket = s.deps.Session.Begin(req)
	s.phase = phaseLoading
	s.errMsg = ""
	s.status = ""
	s.copied = false
	return tea.Batch(s.spinner.Tick, s.run("refine"))
}

// retry swaps this failed screen for a fresh one running the last request
// under a new ticket.
func (s *ResultScreen) retry() tea.Cmd {
	req, ok := s.deps.Session.LastRequest()
	if !ok || s.deps.Session.InFlight() {
		return nil
	}
	next := New(s.deps, s.deps.Session.Begin(req))
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *ResultScreen) copy() tea.Cmd {
	if err := s.deps.Copy(s.raw); err != nil {
		s.deps.Logger.Warn("clipboard write failed", zap.Error(err))
		s.setStatus(fmt.Sprintf("Erreur: copie impossible (%v)", err), true)
		return nil
	}
	s.copied = true
	s.copyGen++
	gen := s.copyGen
	return tea.Tick(copyResetDelay, func(time.Time) tea.Msg {
		return copyResetMsg{gen: gen}
	})
}

func (s *ResultScreen) exportPDF() tea.Cmd {
	if s.exporting {
		return nil
	}
	if s.deps.Printer == nil {
		s.setStatus("Export PDF indisponible.", true)
		return nil
	}
	s.exporting = true
	s.setStatus("Export PDF en cours...", false)

	printer, parsed := s.deps.Printer, s.parsed
	path := filepath.Join(s.deps.ExportDir, "feedback-pomelo-"+time.Now().Format(exportFileStamp)+".pdf")
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()
		return exportDoneMsg{Path: path, Err: printer.WritePDF(ctx, parsed, path)}
	}
}

func (s *ResultScreen) setStatus(text string, isErr bool) {
	s.status = text
	s.statusErr = isErr
}
