package feedback

import (
	"errors"
	"testing"
)

func TestRequestValidate(t *testing.T) {
	valid := Request{Level: LevelIntermediate, AnalysisType: AnalysisClarity, Depth: DepthIntermediate, Text: "Le texte."}

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"valid", func(r *Request) {}, nil},
		{"empty text", func(r *Request) { r.Text = "" }, ErrEmptyText},
		{"whitespace text", func(r *Request) { r.Text = " \n\t " }, ErrEmptyText},
		{"unknown level", func(r *Request) { r.Level = "Expert" }, ErrInvalidLevel},
		{"unknown analysis", func(r *Request) { r.AnalysisType = "style" }, ErrInvalidAnalysisType},
		{"depth zero", func(r *Request) { r.Depth = 0 }, ErrInvalidDepth},
		{"depth four", func(r *Request) { r.Depth = 4 }, ErrInvalidDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultRequest(t *testing.T) {
	r := DefaultRequest()
	if r.Level != LevelIntermediate || r.AnalysisType != AnalysisArgumentation || r.Depth != DepthIntermediate {
		t.Fatalf("unexpected defaults %+v", r)
	}
	if !errors.Is(r.Validate(), ErrEmptyText) {
		t.Fatal("defaults without text should fail with ErrEmptyText")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"beginner", LevelBeginner},
		{"Intermédiaire", LevelIntermediate},
		{"INTERMEDIATE", LevelIntermediate},
		{" avancé ", LevelAdvanced},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseLevel("expert"); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestParseAnalysisType(t *testing.T) {
	tests := []struct {
		in   string
		want AnalysisType
	}{
		{"clarity", AnalysisClarity},
		{"clarté", AnalysisClarity},
		{"Esprit Critique", AnalysisCriticalThinking},
		{"theoretical-anchoring", AnalysisTheoreticalAnchoring},
		{"Cohérence", AnalysisCoherence},
	}
	for _, tt := range tests {
		got, err := ParseAnalysisType(tt.in)
		if err != nil {
			t.Errorf("ParseAnalysisType(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAnalysisType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseAnalysisType("style"); !errors.Is(err, ErrInvalidAnalysisType) {
		t.Errorf("expected ErrInvalidAnalysisType, got %v", err)
	}
}

func TestParseDepth(t *testing.T) {
	for n := 1; n <= 3; n++ {
		d, err := ParseDepth(n)
		if err != nil || int(d) != n {
			t.Errorf("ParseDepth(%d) = %v, %v", n, d, err)
		}
	}
	for _, n := range []int{-1, 0, 4} {
		if _, err := ParseDepth(n); !errors.Is(err, ErrInvalidDepth) {
			t.Errorf("ParseDepth(%d): expected ErrInvalidDepth, got %v", n, err)
		}
	}
}

func TestLabels(t *testing.T) {
	if got := AnalysisCriticalThinking.Label(); got != "Esprit Critique" {
		t.Errorf("label = %q", got)
	}
	if got := DepthDeep.Label(); got != "Approfondie" {
		t.Errorf("label = %q", got)
	}
	if got := Depth(7).Label(); got != "7" {
		t.Errorf("label = %q", got)
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"un", 1},
		{"  un deux\ttrois\n quatre ", 4},
		{"l'apprentissage est-il durable ?", 4},
		{"c'est-à-dire : une idée", 4},
	}
	for _, tt := range tests {
		if got := WordCount(tt.text); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
