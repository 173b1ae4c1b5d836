package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/coursechat-backend/internal/data/db"
	"github.com/yungbote/coursechat-backend/internal/modules/grounding/catalog"
	"github.com/yungbote/coursechat-backend/internal/platform/envutil"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
	"github.com/yungbote/coursechat-backend/internal/services"
)

const (
	DocstoreMemory   = "memory"
	DocstorePostgres = "postgres"
	DocstoreSQLite   = "sqlite"
	DocstoreRedis    = "redis"
	DocstoreBolt     = "bolt"
	DocstoreGCS      = "gcs"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	LogMode     string
	HTTPAddr    string
	ServiceName string
	Environment string
	CORSOrigins []string

	LLMProvider     string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAITimeout   time.Duration
	GeminiAPIKey    string
	ClassifierModel string
	GeneratorModel  string
	MaxTokens       int
	HistoryWindow   int

	DocstoreBackend string
	Postgres        db.PostgresConfig
	SQLitePath      string
	RedisAddr       string
	RedisKeyPrefix  string
	BoltPath        string
	GCSBucket       string
	GCSPrefix       string
	GCSEmulatorHost string
	AutoMigrate     bool
	ResolveParallel bool
	MetricsEnabled  bool
	CatalogPath     string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		LogMode:     envutil.String("LOG_MODE", "development"),
		HTTPAddr:    envutil.String("HTTP_ADDR", ":8080"),
		ServiceName: envutil.String("SERVICE_NAME", "coursechat"),
		Environment: envutil.String("APP_ENV", "development"),
		CORSOrigins: splitList(envutil.String("CORS_ALLOWED_ORIGINS", "")),

		LLMProvider:     strings.ToLower(envutil.String("LLM_PROVIDER", ProviderOpenAI)),
		OpenAIAPIKey:    envutil.String("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   envutil.String("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAITimeout:   envutil.Seconds("OPENAI_TIMEOUT_SECONDS", 60*time.Second),
		GeminiAPIKey:    envutil.String("GEMINI_API_KEY", ""),
		ClassifierModel: envutil.String("CLASSIFIER_MODEL", "gpt-4o-mini"),
		GeneratorModel:  envutil.String("GENERATOR_MODEL", "gpt-4o"),
		MaxTokens:       envutil.Int("LLM_MAX_TOKENS", services.DefaultMaxTokens),
		HistoryWindow:   envutil.Int("LLM_HISTORY_WINDOW", services.DefaultHistoryWindow),

		DocstoreBackend: strings.ToLower(envutil.String("DOCSTORE_BACKEND", DocstoreMemory)),
		Postgres: db.PostgresConfig{
			Host:     envutil.String("POSTGRES_HOST", "localhost"),
			Port:     envutil.String("POSTGRES_PORT", "5432"),
			User:     envutil.String("POSTGRES_USER", "postgres"),
			Password: envutil.String("POSTGRES_PASSWORD", ""),
			Name:     envutil.String("POSTGRES_NAME", "coursechat"),
			SSLMode:  envutil.String("POSTGRES_SSLMODE", "disable"),
		},
		SQLitePath:      envutil.String("SQLITE_PATH", "coursechat.db"),
		RedisAddr:       envutil.String("REDIS_ADDR", ""),
		RedisKeyPrefix:  envutil.String("REDIS_KEY_PREFIX", "coursechat:"),
		BoltPath:        envutil.String("BOLT_PATH", "coursechat.bolt"),
		GCSBucket:       envutil.String("DOCSTORE_GCS_BUCKET", ""),
		GCSPrefix:       envutil.String("DOCSTORE_GCS_PREFIX", ""),
		GCSEmulatorHost: envutil.String("STORAGE_EMULATOR_HOST", ""),
		AutoMigrate:     envutil.Bool("DOCSTORE_AUTO_MIGRATE", true),
		ResolveParallel: envutil.Bool("GROUNDING_RESOLVE_PARALLEL", false),
		MetricsEnabled:  envutil.Bool("METRICS_ENABLED", false),
		CatalogPath:     envutil.String(catalog.CatalogPathEnv, ""),
	}
	if log != nil {
		log.Info("config loaded",
			"http_addr", cfg.HTTPAddr,
			"llm_provider", cfg.LLMProvider,
			"classifier_model", cfg.ClassifierModel,
			"generator_model", cfg.GeneratorModel,
			"docstore_backend", cfg.DocstoreBackend,
			"resolve_parallel", cfg.ResolveParallel,
		)
	}
	return cfg
}

// Validate reports settings that would make startup fail later.
func (c Config) Validate() error {
	switch c.LLMProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("missing OPENAI_API_KEY")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("missing GEMINI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}
	switch c.DocstoreBackend {
	case DocstoreMemory, DocstorePostgres, DocstoreSQLite, DocstoreBolt:
	case DocstoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("missing REDIS_ADDR")
		}
	case DocstoreGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("missing DOCSTORE_GCS_BUCKET")
		}
	default:
		return fmt.Errorf("unknown DOCSTORE_BACKEND %q", c.DocstoreBackend)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
