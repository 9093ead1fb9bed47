package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// EnvPrefix prefixes every variable ConfigFromEnv reads.
const EnvPrefix = "DSAMENTOR_"

// Config selects and configures a provider.
type Config struct {
	Provider string `mapstructure:"provider"`

	Anthropic  VendorConfig `mapstructure:"anthropic"`
	OpenAI     VendorConfig `mapstructure:"openai"`
	Gemini     VendorConfig `mapstructure:"gemini"`
	OpenRouter VendorConfig `mapstructure:"openrouter"`
	Retry      RetryConfig  `mapstructure:"retry"`

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration `mapstructure:"timeout"`
}

// VendorConfig is the per-vendor credential and model choice. BaseURL is
// only honoured by the OpenAI-compatible providers.
type VendorConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// RetryConfig is exponential backoff with jitter.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig returns the defaults. Provider is empty, so the mentor
// review stays off until one is chosen.
func DefaultConfig() Config {
	return Config{
		Anthropic:  VendorConfig{Model: "claude-haiku"},
		OpenAI:     VendorConfig{Model: "gpt-4o-mini"},
		Gemini:     VendorConfig{Model: "gemini-flash"},
		OpenRouter: VendorConfig{Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// Enabled reports whether a provider was selected.
func (c Config) Enabled() bool { return c.Provider != "" }

// ConfigFromEnv overlays DSAMENTOR_* variables on the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, "LLM_PROVIDER")
	for name, v := range cfg.vendors() {
		setFromEnv(&v.APIKey, name+"_API_KEY")
		setFromEnv(&v.Model, name+"_MODEL")
		setFromEnv(&v.BaseURL, name+"_BASE_URL")
	}
	return cfg
}

// DiscoverConfig falls back to the vendors' own key variables, in the
// order Gemini, OpenAI, Anthropic, OpenRouter.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	probes := []struct {
		env      string
		provider string
		vendor   *VendorConfig
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			p.vendor.APIKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.vendor(c.Provider).APIKey == "" {
			return fmt.Errorf("%s%s_API_KEY is required for the %s provider",
				EnvPrefix, envName(c.Provider), c.Provider)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider: %q", c.Provider)
}

func (c *Config) vendors() map[string]*VendorConfig {
	return map[string]*VendorConfig{
		"ANTHROPIC":  &c.Anthropic,
		"OPENAI":     &c.OpenAI,
		"GEMINI":     &c.Gemini,
		"OPENROUTER": &c.OpenRouter,
	}
}

// Selected returns the chosen vendor's settings, or the zero value for
// the mock provider and when none is chosen.
func (c Config) Selected() VendorConfig {
	if v, ok := c.vendors()[envName(c.Provider)]; ok {
		return *v
	}
	return VendorConfig{}
}

func (c Config) vendor(provider string) VendorConfig {
	return *c.vendors()[envName(provider)]
}

func envName(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return "ANTHROPIC"
	case ProviderOpenAI:
		return "OPENAI"
	case ProviderGemini:
		return "GEMINI"
	case ProviderOpenRouter:
		return "OPENROUTER"
	}
	return ""
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(EnvPrefix + name); v != "" {
		*dst = v
	}
}
