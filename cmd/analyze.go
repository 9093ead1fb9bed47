package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/abhisek/dsamentor/internal/analysis"
	"github.com/abhisek/dsamentor/internal/formatter"
	"github.com/abhisek/dsamentor/internal/lang"
	"github.com/abhisek/dsamentor/internal/review"
	"github.com/abhisek/dsamentor/internal/scoring"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a solution file once and print the report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatter.ParseFormat(mustString(cmd, "output"))
		if err != nil {
			return err
		}
		l, err := languageFor(cmd, args[0])
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		opts := reportOptions{
			remote: mustBool(cmd, "remote") || current.cfg.Remote.Enabled,
			review: mustBool(cmd, "review"),
			spin:   format == formatter.FormatHuman,
		}
		report, err := buildReport(cmd.Context(), filepath.Base(args[0]), string(data), l, opts)
		if err != nil {
			return err
		}
		return formatter.Write(cmd.OutOrStdout(), report, format)
	},
}

func init() {
	analyzeCmd.Flags().String("lang", "", "Language override: python, java or cpp (default: from the file extension)")
	analyzeCmd.Flags().StringP("output", "o", "human", "Output format: human, json or yaml")
	analyzeCmd.Flags().Bool("remote", false, "Also ask the remote scoring backend")
	analyzeCmd.Flags().Bool("review", false, "Ask the configured LLM for a mentor review")
}

type reportOptions struct {
	remote bool
	review bool
	spin   bool
}

// buildReport runs the local pipeline and, when asked, the remote
// scorer and the mentor review. Optional stages never fail the report;
// their errors become notes.
func buildReport(ctx context.Context, name, code string, l lang.Language, opts reportOptions) (*formatter.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	in := analysis.Input{Text: code, Language: l, Profile: current.profile}
	snap, err := analysis.NewPipeline(current.logger).Analyze(in)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", name, err)
	}
	report := &formatter.Report{File: name, Analysis: snap}
	if snap.Empty() {
		return report, nil
	}

	if opts.remote {
		stop := startSpinner(opts.spin, " Asking the scoring backend...")
		preds, err := newScoringClient().Augment(ctx, analysis.RemoteRequest(snap, in))
		stop()
		report.Remote = preds
		if err != nil {
			report.Notes = append(report.Notes, "Remote scoring failed: "+scoring.UserMessage(err))
		}
	}

	if opts.review {
		svc := review.NewService(newProvider(ctx), current.logger)
		defer svc.Close()
		if !svc.Enabled() {
			report.Notes = append(report.Notes, "Mentor review needs an LLM provider (set DSAMENTOR_LLM_PROVIDER and an API key)")
			return report, nil
		}
		stop := startSpinner(opts.spin, " Asking the mentor...")
		rv, err := svc.Review(ctx, review.FromSnapshot(code, snap))
		stop()
		if err != nil {
			report.Notes = append(report.Notes, "Mentor review failed: "+err.Error())
		}
		report.Review = rv
	}
	return report, nil
}

// startSpinner shows a spinner on stderr and returns its stop func.
func startSpinner(enabled bool, suffix string) func() {
	if !enabled {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = suffix
	s.Start()
	return s.Stop
}

// languageFor resolves --lang or falls back to the file extension, then
// Python.
func languageFor(cmd *cobra.Command, path string) (lang.Language, error) {
	if s := mustString(cmd, "lang"); s != "" {
		return lang.ParseSupported(s)
	}
	if l := lang.FromFilename(path); l != lang.Unknown {
		return l, nil
	}
	return lang.Python, nil
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func mustBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}
