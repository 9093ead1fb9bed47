package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/dsamentor/internal/config"
	"github.com/abhisek/dsamentor/internal/logging"
	"github.com/abhisek/dsamentor/internal/profile"
)

// session is what every command runs with once flags and config are
// resolved.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	profile  profile.Profile
	closeLog func() error
}

var current session

var rootCmd = &cobra.Command{
	Use:   "dsamentor",
	Short: "Live mentor for data structures and algorithms practice",
	Long: "DSA Mentor analyzes your solution as you type: difficulty, likely mistakes,\n" +
		"topics, a study timeline and what to practice next.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current.closeLog != nil {
			return current.closeLog()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEditor(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file (default: ./config.yaml or the user config dir)")
	pf.String("log-level", "", "Log level: DEBUG, INFO, WARN or ERROR")
	pf.Float64("skill", 0, "Skill level as a percentage (0-100)")
	pf.Float64("experience", 0, "Programming experience as a percentage (0-100)")
	pf.Float64("dsa", 0, "DSA knowledge as a percentage (0-100)")

	rootCmd.Flags().String("lang", "", "Editor language: python, java or cpp")
	rootCmd.Flags().String("file", "", "Open this file in the editor instead of the starter solution")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration, applies flag overrides and installs the
// logger.
func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		if !logging.ValidLevel(lvl) {
			return fmt.Errorf("unknown log level %q", lvl)
		}
		cfg.Log.Level = lvl
	}

	p, err := profileFromFlags(cmd, cfg.LearnerProfile())
	if err != nil {
		return err
	}

	current = session{cfg: cfg, profile: p}

	// The editor owns the terminal, so it only logs to a file.
	if !cmd.HasParent() && cfg.Log.File == "" {
		current.logger = logging.Discard()
		slog.SetDefault(current.logger)
		return nil
	}
	logger, closeLog, err := logging.Setup(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return err
	}
	current.logger, current.closeLog = logger, closeLog
	return nil
}

func profileFromFlags(cmd *cobra.Command, p profile.Profile) (profile.Profile, error) {
	flags := []struct {
		name string
		key  string
	}{
		{"skill", profile.KeySkillLevel},
		{"experience", profile.KeyProgrammingExperience},
		{"dsa", profile.KeyDSAKnowledge},
	}
	for _, f := range flags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		pct, _ := cmd.Flags().GetFloat64(f.name)
		if err := p.Adjust(f.key, pct); err != nil {
			return p, fmt.Errorf("--%s: %w", f.name, err)
		}
	}
	return p, nil
}

func warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
