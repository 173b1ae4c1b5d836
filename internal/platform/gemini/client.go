package gemini

import (
	"context"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"github.com/yungbote/coursechat-backend/internal/platform/llm"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

// Client adapts role/content chat requests to the Gemini API. System
// messages become the system instruction; assistant turns use the "model" role.
type Client struct {
	cli *genai.Client
	log *logger.Logger
}

var _ llm.Provider = (*Client)(nil)

func NewClient(ctx context.Context, apiKey string, log *logger.Logger) (*Client, error) {
	cfg := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if key := strings.TrimSpace(apiKey); key != "" {
		cfg.APIKey = key
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{cli: cli, log: log.With("service", "GeminiClient")}, nil
}

func (c *Client) Name() string { return "gemini" }

func (c *Client) Chat(ctx context.Context, req llm.Request) (string, error) {
	system, contents := toContents(req.Messages)
	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}
	if req.JSONMode {
		cfg.ResponseMIMEType = "application/json"
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := c.cli.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: empty candidates")
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	c.log.Debug("chat completion", "model", req.Model, "json_mode", req.JSONMode, "finish_reason", resp.Candidates[0].FinishReason)
	return b.String(), nil
}

func toContents(messages []llm.Message) (string, []*genai.Content) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			system = append(system, m.Content)
		case "assistant":
			contents = append(contents, &genai.Content{Role: "model", Parts: []*genai.Part{{Text: m.Content}}})
		default:
			contents = append(contents, &genai.Content{Role: "user", Parts: []*genai.Part{{Text: m.Content}}})
		}
	}
	return strings.Join(system, "\n\n"), contents
}
