package llm

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is one chat-completion call. JSONMode asks the provider for a
// single JSON object. MaxTokens <= 0 leaves the provider default.
type Request struct {
	Model     string
	Messages  []Message
	JSONMode  bool
	MaxTokens int
}

// Provider is a chat-completion backend.
type Provider interface {
	Name() string
	Chat(ctx context.Context, req Request) (string, error)
}
