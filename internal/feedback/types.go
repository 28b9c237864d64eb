package feedback

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Level is the learner's proficiency tier. The value is the French wording
// substituted into the prompt.
type Level string

const (
	LevelBeginner     Level = "Débutant"
	LevelIntermediate Level = "Intermédiaire"
	LevelAdvanced     Level = "Avancé"
)

// AnalysisType is the pedagogical lens the feedback should emphasize.
type AnalysisType string

const (
	AnalysisArgumentation        AnalysisType = "argumentation"
	AnalysisClarity              AnalysisType = "clarté"
	AnalysisCriticalThinking     AnalysisType = "esprit critique"
	AnalysisCreativity           AnalysisType = "créativité"
	AnalysisCoherence            AnalysisType = "cohérence"
	AnalysisTheoreticalAnchoring AnalysisType = "ancrage théorique"
)

// Depth controls how conceptually deep the critique should go (1-3).
type Depth int

const (
	DepthSurface      Depth = 1
	DepthIntermediate Depth = 2
	DepthDeep         Depth = 3
)

var (
	ErrEmptyText           = errors.New("text to evaluate is empty")
	ErrInvalidLevel        = errors.New("invalid learner level")
	ErrInvalidAnalysisType = errors.New("invalid analysis type")
	ErrInvalidDepth        = errors.New("invalid analysis depth")
)

// Request holds everything needed to build one feedback prompt.
type Request struct {
	Level        Level
	AnalysisType AnalysisType
	Depth        Depth
	Text         string
}

// DefaultRequest returns the form defaults: intermediate learner,
// argumentation lens, depth 2.
func DefaultRequest() Request {
	return Request{
		Level:        LevelIntermediate,
		AnalysisType: AnalysisArgumentation,
		Depth:        DepthIntermediate,
	}
}

// Validate checks the request is well formed. Text must contain at least one
// non-whitespace character.
func (r Request) Validate() error {
	if _, ok := levelIndex(r.Level); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, r.Level)
	}
	if _, ok := analysisIndex(r.AnalysisType); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidAnalysisType, r.AnalysisType)
	}
	if r.Depth < DepthSurface || r.Depth > DepthDeep {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, r.Depth)
	}
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	return nil
}

// LevelOption describes a selectable learner level.
type LevelOption struct {
	Key   string `json:"key"`
	Value Level  `json:"value"`
	Label string `json:"label"`
}

// AnalysisOption describes a selectable analysis type.
type AnalysisOption struct {
	Key   string       `json:"key"`
	Value AnalysisType `json:"value"`
	Label string       `json:"label"`
}

// DepthOption describes a selectable analysis depth.
type DepthOption struct {
	Value       Depth  `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// LevelOptions lists learner levels in display order.
var LevelOptions = []LevelOption{
	{Key: "beginner", Value: LevelBeginner, Label: "Débutant"},
	{Key: "intermediate", Value: LevelIntermediate, Label: "Intermédiaire"},
	{Key: "advanced", Value: LevelAdvanced, Label: "Avancé"},
}

// AnalysisOptions lists analysis types in display order.
var AnalysisOptions = []AnalysisOption{
	{Key: "argumentation", Value: AnalysisArgumentation, Label: "Argumentation"},
	{Key: "clarity", Value: AnalysisClarity, Label: "Clarté"},
	{Key: "critical-thinking", Value: AnalysisCriticalThinking, Label: "Esprit Critique"},
	{Key: "creativity", Value: AnalysisCreativity, Label: "Créativité"},
	{Key: "coherence", Value: AnalysisCoherence, Label: "Cohérence"},
	{Key: "theoretical-anchoring", Value: AnalysisTheoreticalAnchoring, Label: "Ancrage Théorique"},
}

// DepthOptions lists analysis depths in display order.
var DepthOptions = []DepthOption{
	{Value: DepthSurface, Label: "Surface", Description: "Repérage d’idées principales"},
	{Value: DepthIntermediate, Label: "Intermédiaire", Description: "Cohérence logique, compréhension des notions"},
	{Value: DepthDeep, Label: "Approfondie", Description: "Analyse du raisonnement, des implicites et des cadres théoriques"},
}

func levelIndex(l Level) (int, bool) {
	for i, o := range LevelOptions {
		if o.Value == l {
			return i, true
		}
	}
	return 0, false
}

func analysisIndex(a AnalysisType) (int, bool) {
	for i, o := range AnalysisOptions {
		if o.Value == a {
			return i, true
		}
	}
	return 0, false
}

// Label returns the display label for the level.
func (l Level) Label() string {
	if i, ok := levelIndex(l); ok {
		return LevelOptions[i].Label
	}
	return string(l)
}

// Label returns the display label for the analysis type.
func (a AnalysisType) Label() string {
	if i, ok := analysisIndex(a); ok {
		return AnalysisOptions[i].Label
	}
	return string(a)
}

// String returns the digit substituted into the prompt.
func (d Depth) String() string {
	return strconv.Itoa(int(d))
}

// Label returns the short display label for the depth, e.g. "Surface".
func (d Depth) Label() string {
	for _, o := range DepthOptions {
		if o.Value == d {
			return o.Label
		}
	}
	return d.String()
}

// ParseLevel resolves a level from its key, prompt value or label.
// Matching is case-insensitive.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	for _, o := range LevelOptions {
		if strings.EqualFold(s, o.Key) || strings.EqualFold(s, string(o.Value)) || strings.EqualFold(s, o.Label) {
			return o.Value, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// ParseAnalysisType resolves an analysis type from its key, prompt value or
// label. Matching is case-insensitive.
func ParseAnalysisType(s string) (AnalysisType, error) {
	s = strings.TrimSpace(s)
	for _, o := range AnalysisOptions {
		if strings.EqualFold(s, o.Key) || strings.EqualFold(s, string(o.Value)) || strings.EqualFold(s, o.Label) {
			return o.Value, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAnalysisType, s)
}

// ParseDepth converts an integer to a Depth, rejecting values outside 1-3.
func ParseDepth(n int) (Depth, error) {
	d := Depth(n)
	if d < DepthSurface || d > DepthDeep {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDepth, n)
	}
	return d, nil
}

// WordCount counts whitespace-separated words in the trimmed text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
