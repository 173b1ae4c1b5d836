package grounding

import (
	"context"

	"github.com/yungbote/coursechat-backend/internal/domain"
	"github.com/yungbote/coursechat-backend/internal/modules/grounding/steps"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
	"github.com/yungbote/coursechat-backend/internal/services"
)

type UsecasesDeps struct {
	Log *logger.Logger

	Catalog    steps.MaterialCatalog
	Selector   steps.MaterialSelector
	Resolver   steps.MaterialResolver
	Completion services.CompletionService

	ClassifierModel string
	GeneratorModel  string
	MaxTokens       int
	ResolveParallel bool
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases { return Usecases{deps: deps} }

func (u Usecases) WithLog(log *logger.Logger) Usecases {
	u.deps.Log = log
	return u
}

type (
	ContextInput  = steps.ContextInput
	RespondInput  = steps.RespondInput
	RespondOutput = steps.RespondOutput
)

func (u Usecases) contextDeps() steps.ContextDeps {
	return steps.ContextDeps{
		Log:             u.deps.Log,
		Catalog:         u.deps.Catalog,
		Selector:        u.deps.Selector,
		Resolver:        u.deps.Resolver,
		Completion:      u.deps.Completion,
		ClassifierModel: u.deps.ClassifierModel,
		MaxTokens:       u.deps.MaxTokens,
		ResolveParallel: u.deps.ResolveParallel,
	}
}

// GenerateGroundedContext returns the resolved materials worth citing for the
// latest turn, in selector order. It never fails; problems yield fewer items.
func (u Usecases) GenerateGroundedContext(ctx context.Context, in ContextInput) []domain.ResolvedMaterial {
	out, err := steps.GenerateContext(ctx, u.contextDeps(), in)
	if err != nil {
		u.logError("grounded context failed", err)
		return []domain.ResolvedMaterial{}
	}
	return out.Materials
}

// RespondGrounded runs a full grounded turn. On internal failure the reply is
// the completion service's apology.
func (u Usecases) RespondGrounded(ctx context.Context, in RespondInput) RespondOutput {
	out, err := steps.Respond(ctx, steps.RespondDeps{
		ContextDeps:    u.contextDeps(),
		GeneratorModel: u.deps.GeneratorModel,
	}, in)
	if err != nil {
		u.logError("grounded respond failed", err)
		return RespondOutput{Reply: services.ApologyMessage, Materials: []domain.ResolvedMaterial{}}
	}
	return out
}

func (u Usecases) logError(msg string, err error) {
	if u.deps.Log != nil {
		u.deps.Log.Error(msg, "error", err)
	}
}
