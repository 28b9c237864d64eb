package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pomelo-edu/pomelo/internal/export"
	"github.com/pomelo-edu/pomelo/internal/feedback"
	"github.com/pomelo-edu/pomelo/internal/llm"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback [text...]",
	Short: "Generate feedback for a learner text",
	Example: `  pomelo feedback --level beginner --type clarity -f essay.txt
  cat essay.txt | pomelo feedback -d 3 --format pretty -
  pomelo feedback -f essay.txt --pdf feedback.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		pdfPath, _ := cmd.Flags().GetString("pdf")
		if err := validFormat(format); err != nil {
			return err
		}

		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		req, err := requestFromFlags(cmd, text)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
		}

		ctx := cmd.Context()
		svc, err := newService(ctx, st, logger)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		id := uuid.NewString()
		logger.Info("generating feedback",
			zap.String("request_id", id),
			zap.String("level", string(req.Level)),
			zap.String("analysis_type", string(req.AnalysisType)),
			zap.Int("depth", int(req.Depth)),
			zap.Int("words", feedback.WordCount(req.Text)))

		start := time.Now()
		raw, err := svc.Generate(llm.WithPurpose(ctx, "cli-feedback"), req)
		if err != nil {
			var reqErr *feedback.RequestError
			if errors.As(err, &reqErr) {
				logger.Error("feedback generation failed", zap.String("request_id", id), zap.Error(err))
				return errors.New(reqErr.Message())
			}
			return err
		}
		logger.Debug("feedback generated",
			zap.String("request_id", id),
			zap.Duration("elapsed", time.Since(start)))

		parsed := feedback.Parse(raw)
		if parsed.IsEmpty() {
			logger.Warn("no section recognized in the model reply", zap.String("request_id", id))
		}

		if pdfPath != "" {
			printer := export.NewPrinter(cfg.Export.BrowserBin, logger)
			if err := printer.WritePDF(ctx, parsed, pdfPath); err != nil {
				return fmt.Errorf("export pdf: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "PDF written to", pdfPath)
		}

		return render(cmd.OutOrStdout(), format, feedbackOutput{
			RequestID: id,
			Model:     svc.ModelID(),
			Raw:       raw,
			Feedback:  parsed,
		})
	},
}

func init() {
	addRequestFlags(feedbackCmd)
	feedbackCmd.Flags().String("format", formatText, "Output format: text, markdown, pretty, json or raw")
	feedbackCmd.Flags().String("pdf", "", "Also export the feedback as a PDF file")
}
