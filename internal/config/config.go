// Package config loads settings from defaults, an optional YAML file, an
// optional .env file and DSAMENTOR_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/dsamentor/internal/execsim"
	"github.com/abhisek/dsamentor/internal/llm"
	"github.com/abhisek/dsamentor/internal/profile"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides. Nested keys use
// underscores: analysis.debounce is DSAMENTOR_ANALYSIS_DEBOUNCE.
const EnvPrefix = "DSAMENTOR"

// Config is the full application configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Remote   RemoteConfig   `mapstructure:"remote"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Profile  ProfileConfig  `mapstructure:"profile"`
	Exec     ExecConfig     `mapstructure:"exec"`
	LLM      llm.Config     `mapstructure:"llm"`
}

// AnalysisConfig controls the live analysis loop.
type AnalysisConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// RemoteConfig points at the scoring backend.
type RemoteConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig is the HTTP API listener.
type ServerConfig struct {
	Addr       string `mapstructure:"addr"`
	Production bool   `mapstructure:"production"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// ProfileConfig seeds the learner profile. Scalars are fractions in [0, 1].
type ProfileConfig struct {
	SkillLevel            float64 `mapstructure:"skill_level"`
	ProgrammingExperience float64 `mapstructure:"programming_experience"`
	DSAKnowledge          float64 `mapstructure:"dsa_knowledge"`
	LearningStyle         string  `mapstructure:"learning_style"`
}

// ExecConfig sets the simulated execution pauses.
type ExecConfig struct {
	AnalyzeDelay time.Duration `mapstructure:"analyze_delay"`
	CompileDelay time.Duration `mapstructure:"compile_delay"`
	ExecuteDelay time.Duration `mapstructure:"execute_delay"`
}

// Default returns the built-in configuration.
func Default() *Config {
	p := profile.Default()
	d := execsim.DefaultDelays()
	return &Config{
		Analysis: AnalysisConfig{Debounce: 300 * time.Millisecond},
		Remote: RemoteConfig{
			URL:     "http://localhost:7860",
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{Addr: ":7860"},
		Log:    LogConfig{Level: "INFO", Format: "text"},
		Profile: ProfileConfig{
			SkillLevel:            p.SkillLevel,
			ProgrammingExperience: p.ProgrammingExperience,
			DSAKnowledge:          p.DSAKnowledge,
			LearningStyle:         string(p.LearningStyle),
		},
		Exec: ExecConfig{
			AnalyzeDelay: d.Analyze,
			CompileDelay: d.Compile,
			ExecuteDelay: d.Execute,
		},
		LLM: llm.DefaultConfig(),
	}
}

// SetDefaults registers every key with v so that environment overrides
// apply even when no config file mentions the key.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("analysis.debounce", d.Analysis.Debounce)

	v.SetDefault("remote.enabled", d.Remote.Enabled)
	v.SetDefault("remote.url", d.Remote.URL)
	v.SetDefault("remote.timeout", d.Remote.Timeout)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.production", d.Server.Production)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)

	v.SetDefault("profile.skill_level", d.Profile.SkillLevel)
	v.SetDefault("profile.programming_experience", d.Profile.ProgrammingExperience)
	v.SetDefault("profile.dsa_knowledge", d.Profile.DSAKnowledge)
	v.SetDefault("profile.learning_style", d.Profile.LearningStyle)

	v.SetDefault("exec.analyze_delay", d.Exec.AnalyzeDelay)
	v.SetDefault("exec.compile_delay", d.Exec.CompileDelay)
	v.SetDefault("exec.execute_delay", d.Exec.ExecuteDelay)

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.retry.max_attempts", d.LLM.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.LLM.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.LLM.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.LLM.Retry.Multiplier)
	for name, vendor := range map[string]llm.VendorConfig{
		"anthropic":  d.LLM.Anthropic,
		"openai":     d.LLM.OpenAI,
		"gemini":     d.LLM.Gemini,
		"openrouter": d.LLM.OpenRouter,
	} {
		v.SetDefault("llm."+name+".api_key", vendor.APIKey)
		v.SetDefault("llm."+name+".model", vendor.Model)
		v.SetDefault("llm."+name+".base_url", vendor.BaseURL)
	}
}

// bindLLMEnv maps the short variable names used by llm.ConfigFromEnv
// (DSAMENTOR_OPENAI_API_KEY) onto the nested llm keys.
func bindLLMEnv(v *viper.Viper) {
	_ = v.BindEnv("llm.provider", EnvPrefix+"_LLM_PROVIDER")
	for _, name := range []string{"anthropic", "openai", "gemini", "openrouter"} {
		upper := strings.ToUpper(name)
		for _, field := range []string{"api_key", "model", "base_url"} {
			key := "llm." + name + "." + field
			_ = v.BindEnv(key,
				EnvPrefix+"_"+upper+"_"+strings.ToUpper(field),
				EnvPrefix+"_LLM_"+upper+"_"+strings.ToUpper(field))
		}
	}
}

// Load reads configuration. path names a YAML file; when empty the file
// is looked up as config.yaml in the working directory and Dir(), and
// its absence is not an error. A .env file in
// the working directory is loaded first without overriding variables that
// are already set.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLLMEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if !cfg.LLM.Enabled() {
		if found, ok := llm.DiscoverConfig(); ok {
			found.Retry = cfg.LLM.Retry
			found.Timeout = cfg.LLM.Timeout
			cfg.LLM = found
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Analysis.Debounce < 0 {
		return fmt.Errorf("analysis.debounce must not be negative, got %s", c.Analysis.Debounce)
	}
	if c.Remote.Enabled && c.Remote.URL == "" {
		return errors.New("remote.url is required when remote scoring is enabled")
	}
	if c.Remote.Timeout <= 0 {
		return fmt.Errorf("remote.timeout must be positive, got %s", c.Remote.Timeout)
	}
	for key, val := range map[string]float64{
		"profile.skill_level":            c.Profile.SkillLevel,
		"profile.programming_experience": c.Profile.ProgrammingExperience,
		"profile.dsa_knowledge":          c.Profile.DSAKnowledge,
	} {
		if val < 0 || val > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", key, val)
		}
	}
	if _, err := profile.ParseLearningStyle(c.Profile.LearningStyle); err != nil {
		return fmt.Errorf("profile.learning_style: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.LLM.Enabled() {
		if err := c.LLM.Validate(); err != nil {
			return fmt.Errorf("llm: %w", err)
		}
	}
	return nil
}

// LearnerProfile builds the starting profile from the configured scalars.
func (c *Config) LearnerProfile() profile.Profile {
	p := profile.Default()
	p.SkillLevel = c.Profile.SkillLevel
	p.ProgrammingExperience = c.Profile.ProgrammingExperience
	p.DSAKnowledge = c.Profile.DSAKnowledge
	if s, err := profile.ParseLearningStyle(c.Profile.LearningStyle); err == nil {
		p.LearningStyle = s
	}
	return p
}

// Delays converts the exec settings for the simulated runner.
func (c *Config) Delays() execsim.Delays {
	return execsim.Delays{
		Analyze: c.Exec.AnalyzeDelay,
		Compile: c.Exec.CompileDelay,
		Execute: c.Exec.ExecuteDelay,
	}
}

// Dir returns the per-user config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dsamentor")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dsamentor"
	}
	return filepath.Join(home, ".config", "dsamentor")
}
