package app

import (
	"context"
	"fmt"

	"github.com/yungbote/coursechat-backend/internal/platform/gemini"
	"github.com/yungbote/coursechat-backend/internal/platform/llm"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
	"github.com/yungbote/coursechat-backend/internal/platform/openai"
)

// NewProvider builds the chat-completion backend selected by LLM_PROVIDER.
func NewProvider(ctx context.Context, cfg Config, log *logger.Logger) (llm.Provider, error) {
	switch cfg.LLMProvider {
	case ProviderOpenAI, "":
		c, err := openai.NewClientWithConfig(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: cfg.OpenAITimeout,
		}, log)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderGemini:
		c, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, log)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
}
