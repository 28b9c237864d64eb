package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pomelo-edu/pomelo/internal/feedback"
)

var promptCmd = &cobra.Command{
	Use:   "prompt [text...]",
	Short: "Print the prompt that would be sent to the model",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		req, err := requestFromFlags(cmd, text)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), feedback.BuildPrompt(req))
		return err
	},
}

func init() {
	addRequestFlags(promptCmd)
}
