package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pomelo-edu/pomelo/internal/feedback"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List learner levels, analysis types and depths",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Levels        []feedback.LevelOption    `json:"levels"`
				AnalysisTypes []feedback.AnalysisOption `json:"analysisTypes"`
				Depths        []feedback.DepthOption    `json:"depths"`
			}{feedback.LevelOptions, feedback.AnalysisOptions, feedback.DepthOptions})
		}

		def := feedback.DefaultRequest()
		mark := func(isDefault bool) string {
			if isDefault {
				return "*"
			}
			return " "
		}

		fmt.Fprintln(w, "Levels (--level)")
		fmt.Fprintln(w, strings.Repeat("─", 40))
		for _, o := range feedback.LevelOptions {
			fmt.Fprintf(w, "%s %-24s %s\n", mark(o.Value == def.Level), o.Key, o.Label)
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Analysis types (--type)")
		fmt.Fprintln(w, strings.Repeat("─", 40))
		for _, o := range feedback.AnalysisOptions {
			fmt.Fprintf(w, "%s %-24s %s\n", mark(o.Value == def.AnalysisType), o.Key, o.Label)
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Depths (--depth)")
		fmt.Fprintln(w, strings.Repeat("─", 40))
		for _, o := range feedback.DepthOptions {
			fmt.Fprintf(w, "%s %-3d %-14s %s\n", mark(o.Value == def.Depth), o.Value, o.Label, o.Description)
		}
		return nil
	},
}

func init() {
	optionsCmd.Flags().Bool("json", false, "Print the options as JSON")
}
