package form

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/pomelo-edu/pomelo/internal/feedback"
	"github.com/pomelo-edu/pomelo/internal/router"
	"github.com/pomelo-edu/pomelo/internal/screen"
	"github.com/pomelo-edu/pomelo/internal/screens/result"
	"github.com/pomelo-edu/pomelo/internal/ui/components"
	"github.com/pomelo-edu/pomelo/internal/ui/layout"
	"github.com/pomelo-edu/pomelo/internal/ui/theme"
)

const (
	blankTextAlert  = "Veuillez entrer le texte à évaluer."
	noProviderAlert = "Aucun fournisseur de modèle configuré. Lancez « pomelo config init »."
	idleText        = "Le feedback apparaîtra ici."
	submitLabel     = "Générer le Feedback 🍊"
	pendingLabel    = "Génération en cours..."
)

type field int

const (
	fieldLevel field = iota
	fieldAnalysis
	fieldDepth
	fieldText
	fieldSubmit
	fieldCount
)

// FormScreen collects the request parameters and the learner text.
type FormScreen struct {
	deps  result.Deps
	quote string

	focus    field
	level    components.Selector
	analysis components.Selector
	depth    components.Slider
	text     textarea.Model
	submit   components.Button

	alert string
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)

// New creates a FormScreen preset with the default request.
func New(deps result.Deps, quote string) *FormScreen {
	def := feedback.DefaultRequest()

	levels := make([]string, len(feedback.LevelOptions))
	levelSel := 0
	for i, o := range feedback.LevelOptions {
		levels[i] = o.Label
		if o.Value == def.Level {
			levelSel = i
		}
	}

	analyses := make([]string, len(feedback.AnalysisOptions))
	analysisSel := 0
	for i, o := range feedback.AnalysisOptions {
		analyses[i] = o.Label
		if o.Value == def.AnalysisType {
			analysisSel = i
		}
	}

	ta := textarea.New()
	ta.Placeholder = "Coller ici le texte intégral de l’apprenant..."
	ta.ShowLineNumbers = false
	ta.SetHeight(8)

	f := &FormScreen{
		deps:     deps,
		quote:    quote,
		level:    components.NewSelector(levels, levelSel),
		analysis: components.NewSelector(analyses, analysisSel),
		depth:    components.NewSlider(int(feedback.DepthSurface), int(feedback.DepthDeep), int(def.Depth), 24),
		text:     ta,
		submit:   components.NewButton(submitLabel, nil),
	}
	f.submit.OnPress = f.submitCmd
	f.setFocus(fieldText)
	return f
}

func (f *FormScreen) Init() tea.Cmd {
	return textarea.Blink
}

func (f *FormScreen) Title() string {
	return "Nouveau feedback"
}

func (f *FormScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Champ suivant"},
	}
	if f.focus != fieldText && f.focus != fieldSubmit {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Choisir"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+S", Description: "Générer"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quitter"},
	)
}

// Request returns the request described by the current form state.
func (f *FormScreen) Request() feedback.Request {
	return feedback.Request{
		Level:        feedback.LevelOptions[f.level.Selected].Value,
		AnalysisType: feedback.AnalysisOptions[f.analysis.Selected].Value,
		Depth:        feedback.Depth(f.depth.Value),
		Text:         f.text.Value(),
	}
}

func (f *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case result.DoneMsg:
		// The result screen was left before the reply arrived.
		f.deps.Session.Complete(msg.Result.Ticket)
		return f, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			f.setFocus((f.focus + 1) % fieldCount)
			return f, nil
		case "shift+tab":
			f.setFocus((f.focus + fieldCount - 1) % fieldCount)
			return f, nil
		case "ctrl+s":
			return f, f.submitCmd()
		}
		f.alert = ""
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldLevel:
		f.level, cmd = f.level.Update(msg)
	case fieldAnalysis:
		f.analysis, cmd = f.analysis.Update(msg)
	case fieldDepth:
		f.depth, cmd = f.depth.Update(msg)
	case fieldText:
		f.text, cmd = f.text.Update(msg)
	case fieldSubmit:
		f.submit.Disabled = !f.canSubmit()
		f.submit, cmd = f.submit.Update(msg)
	}
	return f, cmd
}

func (f *FormScreen) setFocus(fl field) {
	f.focus = fl
	f.level.Focused = fl == fieldLevel
	f.analysis.Focused = fl == fieldAnalysis
	f.depth.Focused = fl == fieldDepth
	f.submit.Focused = fl == fieldSubmit
	if fl == fieldText {
		f.text.Focus()
	} else {
		f.text.Blur()
	}
}

func (f *FormScreen) canSubmit() bool {
	return strings.TrimSpace(f.text.Value()) != "" && !f.deps.Session.InFlight()
}

// submitCmd validates the form and opens the result screen under a new
// ticket.
func (f *FormScreen) submitCmd() tea.Cmd {
	if f.deps.Session.InFlight() {
		return nil
	}

	req := f.Request()
	if strings.TrimSpace(req.Text) == "" {
		f.alert = blankTextAlert
		return nil
	}
	if f.deps.Service == nil {
		f.alert = noProviderAlert
		return nil
	}
	if err := req.Validate(); err != nil {
		f.alert = err.Error()
		return nil
	}

	ticket := f.deps.Session.Begin(req)
	if f.deps.Logger != nil {
		f.deps.Logger.Info("feedback requested",
			zap.String("ticket", ticket.ID),
			zap.String("level", string(req.Level)),
			zap.String("analysis_type", string(req.AnalysisType)),
			zap.Int("depth", int(req.Depth)),
			zap.Int("words", feedback.WordCount(req.Text)),
		)
	}
	scr := result.New(f.deps, ticket)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: scr}
	}
}

func (f *FormScreen) View(width, height int) string {
	inner := width - 8
	if inner > 110 {
		inner = 110
	}
	f.text.SetWidth(inner - 4)

	var b strings.Builder
	b.WriteString(renderBanner(inner, height, f.quote))
	b.WriteString("\n\n")

	b.WriteString(f.label(fieldLevel, "1. Niveau de l’apprenant"))
	b.WriteString(f.level.View())
	b.WriteString("\n\n")

	b.WriteString(f.label(fieldAnalysis, "2. Type d’analyse"))
	b.WriteString(f.analysis.View())
	b.WriteString("\n\n")

	depth := feedback.Depth(f.depth.Value)
	b.WriteString(f.label(fieldDepth, "3. Profondeur d’analyse"))
	b.WriteString(f.depth.View())
	b.WriteString("  ")
	b.WriteString(theme.Hint.Render(depthHint(depth)))
	b.WriteString("\n\n")

	b.WriteString(f.label(fieldText, "4. Texte à évaluer"))
	box := theme.Blurred
	if f.focus == fieldText {
		box = theme.Focused
	}
	b.WriteString(box.Render(f.text.View()))
	b.WriteString("\n")
	words := feedback.WordCount(f.text.Value())
	b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Right,
		theme.Hint.Render(fmt.Sprintf("%d mot(s)", words))))
	b.WriteString("\n")

	f.submit.Disabled = !f.canSubmit()
	f.submit.Label = submitLabel
	if f.deps.Session.InFlight() {
		f.submit.Label = pendingLabel
	}
	b.WriteString(f.submit.View())
	b.WriteString("\n")

	if f.alert != "" {
		b.WriteString(theme.Alert.Render(f.alert))
	} else {
		b.WriteString(theme.Hint.Render(idleText))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(inner).Render(b.String()))
}

func (f *FormScreen) label(fl field, text string) string {
	style := theme.Label
	if f.focus == fl {
		style = theme.Selected
	}
	return style.Render(text) + "\n"
}

func depthHint(d feedback.Depth) string {
	for _, o := range feedback.DepthOptions {
		if o.Value == d {
			return o.Label + " · " + o.Description
		}
	}
	return ""
}
