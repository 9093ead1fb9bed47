package llm

import (
	"context"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: VendorConfig{APIKey: "k"}}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: VendorConfig{APIKey: "k"}}, false},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"mock", Config{Provider: ProviderMock}, false},
		{"unknown", Config{Provider: "tea-leaves"}, true},
		{"disabled", Config{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateNamesEnvVar(t *testing.T) {
	err := Config{Provider: ProviderOpenAI}.Validate()
	if err == nil || err.Error() != "DSAMENTOR_OPENAI_API_KEY is required for the openai provider" {
		t.Fatalf("got %v", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DSAMENTOR_LLM_PROVIDER", "openrouter")
	t.Setenv("DSAMENTOR_OPENROUTER_API_KEY", "or-key")
	t.Setenv("DSAMENTOR_ANTHROPIC_MODEL", "claude-sonnet")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenRouter {
		t.Errorf("got provider %q", cfg.Provider)
	}
	if cfg.OpenRouter.APIKey != "or-key" {
		t.Errorf("got key %q", cfg.OpenRouter.APIKey)
	}
	if cfg.OpenRouter.BaseURL != defaultOpenRouterBaseURL {
		t.Errorf("got base URL %q", cfg.OpenRouter.BaseURL)
	}
	if cfg.Anthropic.Model != "claude-sonnet" {
		t.Errorf("got anthropic model %q", cfg.Anthropic.Model)
	}
	if !cfg.Enabled() {
		t.Error("expected enabled")
	}
}

func TestDefaultConfigDisabled(t *testing.T) {
	if DefaultConfig().Enabled() {
		t.Fatal("default config should not select a provider")
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider discovered")
	}

	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("OPENAI_API_KEY", "o")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "o" {
		t.Fatalf("got %+v, %v; want openai first", cfg.Provider, ok)
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("got model %q", p.ModelID())
	}

	if _, err := NewProvider(context.Background(), Config{Provider: ProviderAnthropic}, nil); err == nil {
		t.Error("expected missing key error")
	}

	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.OpenAI.APIKey = "k"
	p, err = NewProvider(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Errorf("got %T, want retry wrapper", p)
	}
}

func TestConfig_Selected(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Selected(); got != (VendorConfig{}) {
		t.Errorf("got %+v with no provider, want zero", got)
	}
	cfg.Provider = ProviderGemini
	if got := cfg.Selected().Model; got != "gemini-flash" {
		t.Errorf("got model %q, want gemini-flash", got)
	}
	cfg.Provider = ProviderMock
	if got := cfg.Selected(); got != (VendorConfig{}) {
		t.Errorf("got %+v for mock, want zero", got)
	}
}
