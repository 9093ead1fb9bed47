package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/abhisek/dsamentor/internal/analysis"
	"github.com/abhisek/dsamentor/internal/formatter"
	"github.com/abhisek/dsamentor/internal/lang"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-analyze a file every time it is saved",
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
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchFile(ctx, cmd.OutOrStdout(), path, l, format)
	},
}

func init() {
	watchCmd.Flags().String("lang", "", "Language override: python, java or cpp (default: from the file extension)")
	watchCmd.Flags().StringP("output", "o", "human", "Output format: human, json or yaml")
}

// watchFile feeds the file into the orchestrator on every change and
// prints each published snapshot. Watching the directory catches editors
// that save by renaming a temp file over the original.
func watchFile(ctx context.Context, out io.Writer, path string, l lang.Language, format string) error {
	logger := current.logger
	name := filepath.Base(path)

	p := current.profile
	orch := analysis.New(analysis.NewPipeline(logger), analysis.Options{
		Debounce: current.cfg.Analysis.Debounce,
		Logger:   logger,
		Profile:  &p,
		OnPublish: func(s *analysis.Snapshot) {
			if err := formatter.Write(out, &formatter.Report{File: name, Analysis: s}, format); err != nil {
				logger.Error("failed to write report", "error", err)
			}
		},
	})
	defer orch.Close()

	submit := func() {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("failed to read watched file", "file", path, "error", err)
			return
		}
		orch.Submit(string(data), l)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	warn("Watching %s (Ctrl+C to stop)", name)
	submit()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				logger.Debug("watched file changed", "file", path, "op", ev.Op.String())
				submit()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
