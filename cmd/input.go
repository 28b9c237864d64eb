package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pomelo-edu/pomelo/internal/feedback"
)

var errNoInput = errors.New("no input: pass --file, - for stdin, or the text as arguments")

// readInput returns the command input from --file, stdin ("-" as file or
// sole argument) or the positional arguments joined by spaces.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	file, _ := cmd.Flags().GetString("file")
	if file == "" && len(args) == 1 && args[0] == "-" {
		file = "-"
	}

	switch {
	case file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	}
	return "", errNoInput
}

func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("level", "l", "intermediate", "Learner level (beginner, intermediate, advanced)")
	cmd.Flags().StringP("type", "t", "argumentation", "Analysis type (argumentation, clarity, critical-thinking, creativity, coherence, theoretical-anchoring)")
	cmd.Flags().IntP("depth", "d", int(feedback.DepthIntermediate), "Analysis depth, 1 (surface) to 3 (deep)")
	cmd.Flags().StringP("file", "f", "", "Read the text from a file, or - for stdin")
}

// requestFromFlags builds and validates a feedback request.
func requestFromFlags(cmd *cobra.Command, text string) (feedback.Request, error) {
	levelFlag, _ := cmd.Flags().GetString("level")
	typeFlag, _ := cmd.Flags().GetString("type")
	depthFlag, _ := cmd.Flags().GetInt("depth")

	level, err := feedback.ParseLevel(levelFlag)
	if err != nil {
		return feedback.Request{}, err
	}
	analysis, err := feedback.ParseAnalysisType(typeFlag)
	if err != nil {
		return feedback.Request{}, err
	}
	depth, err := feedback.ParseDepth(depthFlag)
	if err != nil {
		return feedback.Request{}, err
	}

	req := feedback.Request{
		Level:        level,
		AnalysisType: analysis,
		Depth:        depth,
		Text:         text,
	}
	if err := req.Validate(); err != nil {
		return feedback.Request{}, err
	}
	return req, nil
}
