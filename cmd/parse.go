package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pomelo-edu/pomelo/internal/feedback"
)

var parseCmd = &cobra.Command{
	Use:   "parse [reply...]",
	Short: "Parse a saved model reply into feedback sections",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if err := validFormat(format); err != nil {
			return err
		}

		raw, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), format, feedbackOutput{
			Raw:      raw,
			Feedback: feedback.Parse(raw),
		})
	},
}

func init() {
	parseCmd.Flags().StringP("file", "f", "", "Read the reply from a file, or - for stdin")
	parseCmd.Flags().String("format", formatText, "Output format: text, markdown, pretty, json or raw")
}
