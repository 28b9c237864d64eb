package feedback

import (
	"strings"
	"testing"
)

func TestBuildPrompt_SubstitutesFieldsOnce(t *testing.T) {
	levels := []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
	analyses := []AnalysisType{
		AnalysisArgumentation, AnalysisClarity, AnalysisCriticalThinking,
		AnalysisCreativity, AnalysisCoherence, AnalysisTheoreticalAnchoring,
	}
	text := "La motivation intrinsèque précède l'apprentissage durable, selon moi."

	for _, lvl := range levels {
		for _, a := range analyses {
			for d := DepthSurface; d <= DepthDeep; d++ {
				req := Request{Level: lvl, AnalysisType: a, Depth: d, Text: text}
				prompt := BuildPrompt(req)

				wantLines := []string{
					"Niveau de l’apprenant : " + string(lvl) + "\n",
					"Type d’analyse privilégié : " + string(a) + "\n",
					"Profondeur d’analyse conceptuelle : " + d.String() + "\n",
					"Texte à évaluer : " + text + "\n",
				}
				for _, line := range wantLines {
					if n := strings.Count(prompt, line); n != 1 {
						t.Errorf("%v/%v/%d: %q appears %d times, want 1", lvl, a, d, line, n)
					}
				}
				if n := strings.Count(prompt, string(lvl)); n != 1 {
					t.Errorf("level %q appears %d times, want 1", lvl, n)
				}
				if n := strings.Count(prompt, text); n != 1 {
					t.Errorf("text appears %d times, want 1", n)
				}
			}
		}
	}
}

func TestBuildPrompt_ContainsHeadersVerbatim(t *testing.T) {
	prompt := BuildPrompt(Request{
		Level: LevelBeginner, AnalysisType: AnalysisCoherence, Depth: DepthDeep, Text: "x",
	})

	headers := []string{
		HeaderStrengths, HeaderImprovements, HeaderSuggestions,
		HeaderFinalMessage, HeaderSynthesis, HeaderSelfCheck,
	}
	for _, h := range headers {
		if !strings.Contains(prompt, h) {
			t.Errorf("prompt is missing header %q", h)
		}
	}

	for _, m := range []string{MarkerWorking, MarkerToDeepen, MarkerKeyIdea, MarkerNextStep} {
		if !strings.Contains(prompt, m) {
			t.Errorf("prompt is missing synthesis marker %q", m)
		}
	}
}

func TestBuildPrompt_NoPlaceholdersLeft(t *testing.T) {
	prompt := BuildPrompt(DefaultRequest())
	for _, ph := range []string{"{level}", "{analysisType}", "{depth}", "{text}"} {
		if strings.Contains(prompt, ph) {
			t.Errorf("placeholder %s was not substituted", ph)
		}
	}
}

func TestBuildPrompt_TextIsNotReinterpreted(t *testing.T) {
	text := "Mon texte cite {level} et {depth} littéralement."
	prompt := BuildPrompt(Request{
		Level: LevelAdvanced, AnalysisType: AnalysisCreativity, Depth: DepthSurface, Text: text,
	})
	if !strings.Contains(prompt, "Texte à évaluer : "+text) {
		t.Fatalf("learner text was altered during substitution")
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	req := Request{Level: LevelIntermediate, AnalysisType: AnalysisClarity, Depth: DepthIntermediate, Text: "Le texte."}
	if BuildPrompt(req) != BuildPrompt(req) {
		t.Fatal("BuildPrompt is not deterministic")
	}
}
