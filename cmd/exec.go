package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/dsamentor/internal/analysis"
	"github.com/abhisek/dsamentor/internal/execsim"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Simulate running a solution and stream its output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := languageFor(cmd, args[0])
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		code := string(data)

		snap, err := analysis.NewPipeline(current.logger).Analyze(analysis.Input{Text: code, Language: l, Profile: current.profile})
		if err != nil {
			return fmt.Errorf("analyze %s: %w", args[0], err)
		}

		// Ctrl+C stops the run instead of killing the process so the
		// partial transcript and stop marker still print.
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		runner := execsim.NewRunner(execsim.WithDelays(current.cfg.Delays()), execsim.WithLogger(current.logger))
		res := runner.Run(ctx, execsim.Request{Code: code, Language: l, Snapshot: snap}, func(chunk string) {
			fmt.Fprint(out, chunk)
		})
		fmt.Fprintln(out)
		current.logger.Debug("simulated run finished", "run_id", res.RunID, "stopped", res.Stopped, "elapsed", res.Elapsed)
		return nil
	},
}

func init() {
	runCmd.Flags().String("lang", "", "Language override: python, java or cpp (default: from the file extension)")
}
