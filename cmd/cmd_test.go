package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomelo-edu/pomelo/internal/feedback"
)

const sampleReply = `POINTS FORTS :
Une thèse **claire**.

POINTS À AMÉLIORER :
Des exemples manquent.

MESSAGE FINAL :
Bravo !

SYNTHÈSE STRUCTURÉE
✅ Plan lisible
💡 La thèse guide le texte
`

// execute runs the root command with an isolated config file and returns
// what was written to stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "config.yaml")))

	err := rootCmd.Execute()
	return out.String(), err
}

func newInputCommand() *cobra.Command {
	c := &cobra.Command{}
	addRequestFlags(c)
	return c
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texte.txt")
	require.NoError(t, os.WriteFile(path, []byte("depuis un fichier"), 0o644))

	t.Run("args", func(t *testing.T) {
		got, err := readInput(newInputCommand(), []string{"Un", "texte"})
		require.NoError(t, err)
		assert.Equal(t, "Un texte", got)
	})

	t.Run("file", func(t *testing.T) {
		c := newInputCommand()
		require.NoError(t, c.Flags().Set("file", path))
		got, err := readInput(c, nil)
		require.NoError(t, err)
		assert.Equal(t, "depuis un fichier", got)
	})

	t.Run("stdin flag", func(t *testing.T) {
		c := newInputCommand()
		c.SetIn(strings.NewReader("depuis stdin"))
		require.NoError(t, c.Flags().Set("file", "-"))
		got, err := readInput(c, nil)
		require.NoError(t, err)
		assert.Equal(t, "depuis stdin", got)
	})

	t.Run("stdin arg", func(t *testing.T) {
		c := newInputCommand()
		c.SetIn(strings.NewReader("tiret"))
		got, err := readInput(c, []string{"-"})
		require.NoError(t, err)
		assert.Equal(t, "tiret", got)
	})

	t.Run("missing file", func(t *testing.T) {
		c := newInputCommand()
		require.NoError(t, c.Flags().Set("file", filepath.Join(t.TempDir(), "absent.txt")))
		_, err := readInput(c, nil)
		assert.Error(t, err)
	})

	t.Run("nothing", func(t *testing.T) {
		_, err := readInput(newInputCommand(), nil)
		assert.ErrorIs(t, err, errNoInput)
	})
}

func TestRequestFromFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req, err := requestFromFlags(newInputCommand(), "Un texte.")
		require.NoError(t, err)
		want := feedback.DefaultRequest()
		want.Text = "Un texte."
		assert.Equal(t, want, req)
	})

	t.Run("labels and keys", func(t *testing.T) {
		c := newInputCommand()
		require.NoError(t, c.Flags().Set("level", "Avancé"))
		require.NoError(t, c.Flags().Set("type", "critical-thinking"))
		require.NoError(t, c.Flags().Set("depth", "3"))
		req, err := requestFromFlags(c, "Un texte.")
		require.NoError(t, err)
		assert.Equal(t, feedback.LevelAdvanced, req.Level)
		assert.Equal(t, feedback.AnalysisCriticalThinking, req.AnalysisType)
		assert.Equal(t, feedback.DepthDeep, req.Depth)
	})

	tests := []struct {
		name string
		flag string
		val  string
		text string
		want error
	}{
		{"bad level", "level", "expert", "x", feedback.ErrInvalidLevel},
		{"bad type", "type", "poésie", "x", feedback.ErrInvalidAnalysisType},
		{"bad depth", "depth", "4", "x", feedback.ErrInvalidDepth},
		{"blank text", "depth", "1", "  \n ", feedback.ErrEmptyText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newInputCommand()
			require.NoError(t, c.Flags().Set(tt.flag, tt.val))
			_, err := requestFromFlags(c, tt.text)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRender(t *testing.T) {
	out := feedbackOutput{Raw: sampleReply, Feedback: feedback.Parse(sampleReply)}

	t.Run("text", func(t *testing.T) {
		var b bytes.Buffer
		require.NoError(t, render(&b, formatText, out))
		s := b.String()
		assert.Contains(t, s, "🟢 Points forts")
		assert.Contains(t, s, "Une thèse claire.")
		assert.NotContains(t, s, "**")
		assert.Contains(t, s, feedback.EmptySectionText, "missing suggestions section")
		assert.Contains(t, s, "✅ Ce qui fonctionne bien : Plan lisible")
	})

	t.Run("markdown", func(t *testing.T) {
		var b bytes.Buffer
		require.NoError(t, render(&b, formatMarkdown, out))
		assert.Contains(t, b.String(), "## 🟢 Points forts")
		assert.Contains(t, b.String(), "**claire**")
	})

	t.Run("json", func(t *testing.T) {
		var b bytes.Buffer
		require.NoError(t, render(&b, formatJSON, out))
		var got feedbackOutput
		require.NoError(t, json.Unmarshal(b.Bytes(), &got))
		assert.Equal(t, out, got)
	})

	t.Run("raw", func(t *testing.T) {
		var b bytes.Buffer
		require.NoError(t, render(&b, formatRaw, out))
		assert.Equal(t, strings.TrimRight(sampleReply, "\n")+"\n", b.String())
	})

	t.Run("pretty", func(t *testing.T) {
		var b bytes.Buffer
		require.NoError(t, render(&b, formatPretty, out))
		assert.NotEmpty(t, b.String())
	})

	assert.Error(t, validFormat("html"))
}

func TestPromptCommand(t *testing.T) {
	out, err := execute(t, "", "prompt", "--level", "beginner", "--type", "clarity", "--depth", "1", "Mon", "texte")
	require.NoError(t, err)
	assert.Contains(t, out, "Débutant")
	assert.Contains(t, out, "clarté")
	assert.Contains(t, out, "Mon texte")
}

func TestParseCommand(t *testing.T) {
	out, err := execute(t, sampleReply, "parse", "--format", "json", "-")
	require.NoError(t, err)

	var got feedbackOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Bravo !", got.Feedback.FinalMessage)
	assert.Len(t, got.Feedback.Synthesis, 2)
}

func TestOptionsCommand(t *testing.T) {
	out, err := execute(t, "", "options")
	require.NoError(t, err)
	assert.Contains(t, out, "intermediate")
	assert.Contains(t, out, "Ancrage Théorique")
	assert.Contains(t, out, "Approfondie")
}

func TestFeedbackFailureIsRecorded(t *testing.T) {
	t.Setenv("POMELO_LLM_PROVIDER", "mock")
	dbPath := filepath.Join(t.TempDir(), "usage.db")

	// The mock provider has no canned reply, so the call fails.
	_, err := execute(t, "", "feedback", "--db", dbPath, "--format", "text", "Un", "texte")
	require.Error(t, err)
	assert.Equal(t, feedback.RequestFailedMessage, err.Error())

	out, err := execute(t, "", "usage", "list", "--db", dbPath, "--purpose", "cli-feedback")
	require.NoError(t, err)
	assert.Contains(t, out, "cli-feedback")
	assert.Contains(t, out, "✗")
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pomelo", "config.yaml")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"config", "init", "--config", path})
	require.NoError(t, rootCmd.Execute())
	assert.FileExists(t, path)

	rootCmd.SetArgs([]string{"config", "init", "--config", path})
	assert.Error(t, rootCmd.Execute(), "existing file must not be overwritten")

	t.Setenv("POMELO_GEMINI_API_KEY", "AIzaSyExampleKey123")
	out.Reset()
	rootCmd.SetArgs([]string{"config", "show", "--config", path})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "provider: gemini")
	assert.Contains(t, out.String(), "AIza****23")
	assert.NotContains(t, out.String(), "AIzaSyExampleKey123")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0012", formatCost(0.0012))
	assert.Equal(t, "$1.50", formatCost(1.5))
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "éà", truncate("éà", 5))
}
