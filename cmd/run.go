package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pomelo-edu/pomelo/internal/app"
	"github.com/pomelo-edu/pomelo/internal/export"
	"github.com/pomelo-edu/pomelo/internal/feedback"
	"github.com/pomelo-edu/pomelo/internal/llm"
	"github.com/pomelo-edu/pomelo/internal/logging"
	"github.com/pomelo-edu/pomelo/internal/screens/result"
	"github.com/pomelo-edu/pomelo/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	tuiLogger := zap.NewNop()
	if logPath, err := logging.DefaultLogPath(); err == nil {
		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		if l, err := logging.NewFile(logPath, level); err == nil {
			tuiLogger = l
			defer l.Sync()
		}
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	deps := result.Deps{
		Printer: export.NewPrinter(cfg.Export.BrowserBin, tuiLogger),
		Logger:  tuiLogger,
	}
	if dir, err := os.Getwd(); err == nil {
		deps.ExportDir = dir
	}

	svc, err := newService(ctx, st, tuiLogger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Feedback generation will be unavailable.")
	} else {
		deps.Service = svc
	}

	return app.Run(deps)
}

// newService builds the feedback service from the loaded config. A missing
// API key is looked up in the standard provider variables before giving up.
// st may be nil, in which case no usage is recorded.
func newService(ctx context.Context, st *store.Store, l *zap.Logger) (*feedback.Service, error) {
	llmCfg, ok := llm.Discover(cfg.LLM.Config)
	if !ok {
		return nil, llmCfg.Validate()
	}

	var repo store.EventRepo
	if st != nil {
		repo = st.EventRepo()
	}

	provider, err := llm.NewProvider(ctx, llmCfg, repo, l)
	if err != nil {
		return nil, err
	}
	l.Debug("llm provider ready",
		zap.String("provider", llmCfg.Provider),
		zap.String("model", provider.ModelID()))
	return feedback.NewService(provider, cfg.Feedback()), nil
}
