package steps

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/coursechat-backend/internal/domain"
	"github.com/yungbote/coursechat-backend/internal/modules/grounding/prompts"
	"github.com/yungbote/coursechat-backend/internal/services"
)

type RespondDeps struct {
	ContextDeps

	GeneratorModel string
}

type RespondInput struct {
	UserID         string
	Messages       []domain.ChatMessage
	CurrentContent string
	LessonID       string
	Personified    bool
}

type RespondOutput struct {
	Reply string `json:"reply"`
	// Materials is what the reply was grounded on; callers only log it.
	Materials []domain.ResolvedMaterial `json:"materials"`
}

// Respond answers one chat turn: ground, assemble the system prompt, generate.
func Respond(ctx context.Context, deps RespondDeps, in RespondInput) (RespondOutput, error) {
	out := RespondOutput{Materials: []domain.ResolvedMaterial{}}
	if deps.Completion == nil || deps.Log == nil {
		return out, fmt.Errorf("grounding respond: missing deps")
	}

	grounded, err := GenerateContext(ctx, deps.ContextDeps, ContextInput{
		UserID:         in.UserID,
		Messages:       in.Messages,
		CurrentContent: in.CurrentContent,
		LessonID:       in.LessonID,
	})
	if err != nil {
		return out, err
	}
	out.Materials = grounded.Materials

	ctx, span := tracer.Start(ctx, "grounding.generate")
	defer span.End()
	span.SetAttributes(
		attribute.Int("grounding.materials", len(grounded.Materials)),
		attribute.Bool("grounding.personified", in.Personified),
	)

	system := prompts.AssembleGroundedPrompt(grounded.Materials, in.CurrentContent, in.Personified)
	msgs := make([]domain.ChatMessage, 0, len(in.Messages)+1)
	msgs = append(msgs, domain.ChatMessage{Role: domain.RoleSystem, Content: system})
	msgs = append(msgs, in.Messages...)

	out.Reply = deps.Completion.Complete(ctx, services.CompletionRequest{
		Model:     deps.GeneratorModel,
		Messages:  msgs,
		MaxTokens: deps.MaxTokens,
	})
	deps.Log.Debug("grounded reply generated",
		"materials", len(grounded.Materials),
		"classification", grounded.Status.String(),
		"reply_len", len(out.Reply),
	)
	return out, nil
}
