package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/dsamentor/internal/analysis"
	"github.com/abhisek/dsamentor/internal/execsim"
	"github.com/abhisek/dsamentor/internal/lang"
	"github.com/abhisek/dsamentor/internal/llm"
	"github.com/abhisek/dsamentor/internal/review"
	"github.com/abhisek/dsamentor/internal/scoring"
	"github.com/abhisek/dsamentor/internal/tui"
)

// runEditor builds the analysis stack and launches the TUI.
func runEditor(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, logger := current.cfg, current.logger

	l := lang.Python
	if s, _ := cmd.Flags().GetString("lang"); s != "" {
		parsed, err := lang.ParseSupported(s)
		if err != nil {
			return err
		}
		l = parsed
	}

	var initial string
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		initial = string(data)
		if !cmd.Flags().Changed("lang") {
			if detected := lang.FromFilename(path); detected != lang.Unknown {
				l = detected
			}
		}
	}

	bridge := tui.NewBridge()
	defer bridge.Close()

	p := current.profile
	opts := analysis.Options{
		Debounce:  cfg.Analysis.Debounce,
		Logger:    logger,
		OnPublish: bridge.Publish,
		Profile:   &p,
	}
	if cfg.Remote.Enabled {
		opts.Augmenter = newScoringClient()
		opts.OnRemote = bridge.Remote
	}
	orch := analysis.New(analysis.NewPipeline(logger), opts)
	defer orch.Close()

	reviews := review.NewService(newProvider(ctx), logger)
	defer reviews.Close()

	return tui.Run(tui.Deps{
		Engine:   orch,
		Bridge:   bridge,
		Runner:   execsim.NewRunner(execsim.WithDelays(cfg.Delays()), execsim.WithLogger(logger)),
		Review:   reviews,
		Profile:  p,
		Language: l,
		Initial:  initial,
	})
}

func newScoringClient() *scoring.Client {
	return scoring.NewClient(current.cfg.Remote.URL,
		scoring.WithTimeout(current.cfg.Remote.Timeout),
		scoring.WithLogger(current.logger),
	)
}

// newProvider returns the configured LLM provider, or nil when none is
// configured. The mentor review is optional, so failures only warn.
func newProvider(ctx context.Context) llm.Provider {
	if !current.cfg.LLM.Enabled() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	provider, err := llm.NewProvider(ctx, current.cfg.LLM, current.logger)
	if err != nil {
		warn("LLM provider not configured: %v", err)
		warn("Mentor reviews will be unavailable.")
		return nil
	}
	return provider
}
