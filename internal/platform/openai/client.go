package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/coursechat-backend/internal/platform/envutil"
	"github.com/yungbote/coursechat-backend/internal/platform/llm"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		APIKey:  strings.TrimSpace(envutil.String("OPENAI_API_KEY", "")),
		BaseURL: envutil.String("OPENAI_BASE_URL", "https://api.openai.com"),
		Timeout: envutil.Seconds("OPENAI_TIMEOUT_SECONDS", 60*time.Second),
	}
}

type Client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ llm.Provider = (*Client)(nil)

func NewClient(log *logger.Logger) (*Client, error) {
	return NewClientWithConfig(ConfigFromEnv(), log)
}

func NewClientWithConfig(cfg Config, log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		log:        log.With("service", "OpenAIClient"),
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) Name() string { return "openai" }

type openAIHTTPError struct {
	StatusCode int
	Body       string
}

func (e *openAIHTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (e *openAIHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []llm.Message   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Chat sends one /v1/chat/completions request. There is no retry loop; the
// caller decides how to degrade.
func (c *Client) Chat(ctx context.Context, req llm.Request) (string, error) {
	body := chatCompletionRequest{
		Model:     req.Model,
		Messages:  req.Messages,
		MaxTokens: req.MaxTokens,
	}
	if req.JSONMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	start := time.Now()
	raw, err := c.doOnce(ctx, http.MethodPost, "/v1/chat/completions", body)
	if err != nil {
		return "", err
	}
	var out chatCompletionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("openai decode error: %w; raw=%s", err, string(raw))
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openai: empty choices")
	}
	c.log.Debug("chat completion",
		"model", req.Model,
		"json_mode", req.JSONMode,
		"prompt_tokens", out.Usage.PromptTokens,
		"completion_tokens", out.Usage.CompletionTokens,
		"finish_reason", out.Choices[0].FinishReason,
		"elapsed", time.Since(start).String(),
	)
	return out.Choices[0].Message.Content, nil
}

func (c *Client) doOnce(ctx context.Context, method, path string, body any) ([]byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return raw, &openAIHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}
