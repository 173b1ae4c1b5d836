package services

import (
	"context"
	"regexp"
	"time"

	"github.com/yungbote/coursechat-backend/internal/domain"
	"github.com/yungbote/coursechat-backend/internal/observability"
	"github.com/yungbote/coursechat-backend/internal/platform/llm"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

// ApologyMessage replaces the reply whenever the completion provider fails.
const ApologyMessage = "I'm sorry, there is an error with the chat service. Please try again later!"

const (
	DefaultHistoryWindow = 10
	DefaultMaxTokens     = 256
)

type CompletionRequest struct {
	Model     string
	Messages  []domain.ChatMessage
	JSONMode  bool
	MaxTokens int
}

// CompletionService never returns an error: provider failures come back as
// ApologyMessage.
type CompletionService interface {
	Complete(ctx context.Context, req CompletionRequest) string
}

type NameCorrection struct {
	From string
	To   string
}

type CompletionConfig struct {
	// HistoryWindow bounds the messages sent: the first one plus the most
	// recent HistoryWindow-1.
	HistoryWindow   int
	MaxTokens       int
	NameCorrections []NameCorrection
}

type compiledCorrection struct {
	re *regexp.Regexp
	to string
}

type completionService struct {
	provider    llm.Provider
	window      int
	maxTokens   int
	corrections []compiledCorrection
	log         *logger.Logger
}

func NewCompletionService(provider llm.Provider, cfg CompletionConfig, baseLog *logger.Logger) CompletionService {
	window := cfg.HistoryWindow
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	corrections := make([]compiledCorrection, 0, len(cfg.NameCorrections))
	for _, nc := range cfg.NameCorrections {
		if nc.From == "" {
			continue
		}
		corrections = append(corrections, compiledCorrection{
			re: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(nc.From) + `\b`),
			to: nc.To,
		})
	}
	return &completionService{
		provider:    provider,
		window:      window,
		maxTokens:   maxTokens,
		corrections: corrections,
		log:         baseLog.With("service", "CompletionService"),
	}
}

func (s *completionService) Complete(ctx context.Context, req CompletionRequest) string {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = s.maxTokens
	}
	trimmed := TrimHistory(req.Messages, s.window)
	msgs := make([]llm.Message, 0, len(trimmed))
	for _, m := range trimmed {
		msgs = append(msgs, llm.Message{Role: m.Role, Content: m.Content})
	}

	start := time.Now()
	out, err := s.provider.Chat(ctx, llm.Request{
		Model:     req.Model,
		Messages:  msgs,
		JSONMode:  req.JSONMode,
		MaxTokens: maxTokens,
	})
	elapsed := time.Since(start)
	status := "ok"
	if err != nil {
		status = "error"
	}
	if metrics := observability.Current(); metrics != nil {
		metrics.ObserveLLMRequest(s.provider.Name(), req.Model, status, elapsed)
	}
	if err != nil {
		s.log.Error("completion failed",
			"provider", s.provider.Name(),
			"model", req.Model,
			"messages", len(msgs),
			"elapsed", elapsed.String(),
			"error", err,
		)
		return ApologyMessage
	}
	return s.applyCorrections(out)
}

func (s *completionService) applyCorrections(text string) string {
	for _, c := range s.corrections {
		text = c.re.ReplaceAllLiteralString(text, c.to)
	}
	return text
}

// TrimHistory keeps the first message and the last window-1 messages.
func TrimHistory(messages []domain.ChatMessage, window int) []domain.ChatMessage {
	if window <= 0 || len(messages) <= window {
		return messages
	}
	out := make([]domain.ChatMessage, 0, window)
	out = append(out, messages[0])
	return append(out, messages[len(messages)-window+1:]...)
}
