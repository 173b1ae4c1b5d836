package app

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"LLM_PROVIDER", "DOCSTORE_BACKEND", "LLM_MAX_TOKENS", "LLM_HISTORY_WINDOW", "CORS_ALLOWED_ORIGINS", "GROUNDING_RESOLVE_PARALLEL"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig(nil)
	if cfg.LLMProvider != ProviderOpenAI || cfg.DocstoreBackend != DocstoreMemory {
		t.Fatalf("provider=%q backend=%q", cfg.LLMProvider, cfg.DocstoreBackend)
	}
	if cfg.MaxTokens != 256 || cfg.HistoryWindow != 10 {
		t.Fatalf("max_tokens=%d window=%d", cfg.MaxTokens, cfg.HistoryWindow)
	}
	if cfg.OpenAITimeout != 60*time.Second {
		t.Fatalf("timeout=%s", cfg.OpenAITimeout)
	}
	if cfg.CORSOrigins != nil || cfg.ResolveParallel {
		t.Fatalf("cors=%v parallel=%v", cfg.CORSOrigins, cfg.ResolveParallel)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("DOCSTORE_BACKEND", "BOLT")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.test, ,https://b.test")
	t.Setenv("GROUNDING_RESOLVE_PARALLEL", "true")
	t.Setenv("LLM_MAX_TOKENS", "512")

	cfg := LoadConfig(nil)
	if cfg.LLMProvider != ProviderGemini || cfg.DocstoreBackend != DocstoreBolt {
		t.Fatalf("provider=%q backend=%q", cfg.LLMProvider, cfg.DocstoreBackend)
	}
	if strings.Join(cfg.CORSOrigins, "|") != "https://a.test|https://b.test" {
		t.Fatalf("cors=%v", cfg.CORSOrigins)
	}
	if !cfg.ResolveParallel || cfg.MaxTokens != 512 {
		t.Fatalf("parallel=%v max_tokens=%d", cfg.ResolveParallel, cfg.MaxTokens)
	}
}

func TestConfigValidate(t *testing.T) {
	base := Config{LLMProvider: ProviderOpenAI, OpenAIAPIKey: "k", DocstoreBackend: DocstoreMemory}
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "missing_openai_key", mutate: func(c *Config) { c.OpenAIAPIKey = "" }, wantErr: "OPENAI_API_KEY"},
		{name: "gemini_without_key", mutate: func(c *Config) { c.LLMProvider = ProviderGemini }, wantErr: "GEMINI_API_KEY"},
		{name: "unknown_provider", mutate: func(c *Config) { c.LLMProvider = "llama" }, wantErr: "LLM_PROVIDER"},
		{name: "redis_without_addr", mutate: func(c *Config) { c.DocstoreBackend = DocstoreRedis }, wantErr: "REDIS_ADDR"},
		{name: "gcs_without_bucket", mutate: func(c *Config) { c.DocstoreBackend = DocstoreGCS }, wantErr: "DOCSTORE_GCS_BUCKET"},
		{name: "unknown_backend", mutate: func(c *Config) { c.DocstoreBackend = "mongo" }, wantErr: "DOCSTORE_BACKEND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err=%v, want mention of %s", err, tc.wantErr)
			}
		})
	}
}
