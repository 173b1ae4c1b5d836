package steps

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/coursechat-backend/internal/domain"
	"github.com/yungbote/coursechat-backend/internal/observability"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
	"github.com/yungbote/coursechat-backend/internal/services"
)

type ContextDeps struct {
	Log        *logger.Logger
	Catalog    MaterialCatalog
	Selector   MaterialSelector
	Resolver   MaterialResolver
	Completion services.CompletionService

	ClassifierModel string
	MaxTokens       int
	// ResolveParallel resolves selected descriptors concurrently. Output
	// order still follows selector order.
	ResolveParallel bool
}

type ContextInput struct {
	UserID         string
	Messages       []domain.ChatMessage
	CurrentContent string
	LessonID       string
}

type ContextOutput struct {
	Materials []domain.ResolvedMaterial
	Status    ClassificationStatus
	Selected  int
}

// GenerateContext runs classify, lookup, select and resolve for one turn.
// Any failure along the way shrinks the result; only missing deps error.
func GenerateContext(ctx context.Context, deps ContextDeps, in ContextInput) (ContextOutput, error) {
	out := ContextOutput{Materials: []domain.ResolvedMaterial{}}
	if deps.Log == nil || deps.Catalog == nil || deps.Selector == nil || deps.Resolver == nil || deps.Completion == nil {
		return out, fmt.Errorf("grounding context: missing deps")
	}

	cls, err := Classify(ctx, ClassifyDeps{
		Log:        deps.Log,
		Catalog:    deps.Catalog,
		Completion: deps.Completion,
		Model:      deps.ClassifierModel,
		MaxTokens:  deps.MaxTokens,
	}, ClassifyInput{Messages: in.Messages, CurrentContent: in.CurrentContent})
	if err != nil {
		return out, err
	}
	out.Status = cls.Status
	if cls.Status != ClassificationReference {
		return out, nil
	}

	candidates := deps.Catalog.Lookup(cls.Classification.MaterialType, cls.Classification.Concept)
	selected := deps.Selector.Select(candidates, in.LessonID)
	out.Selected = len(selected)
	deps.Log.Debug("grounding candidates",
		"concept", cls.Classification.Concept,
		"type", string(cls.Classification.MaterialType),
		"candidates", len(candidates),
		"selected", len(selected),
	)
	if len(selected) == 0 {
		return out, nil
	}

	out.Materials = resolveAll(ctx, deps, in.UserID, selected)
	return out, nil
}

func resolveAll(ctx context.Context, deps ContextDeps, userID string, selected []domain.MaterialDescriptor) []domain.ResolvedMaterial {
	ctx, span := tracer.Start(ctx, "grounding.resolve")
	defer span.End()
	span.SetAttributes(
		attribute.Int("grounding.selected", len(selected)),
		attribute.Bool("grounding.parallel", deps.ResolveParallel),
	)

	metrics := observability.Current()
	slots := make([]*domain.ResolvedMaterial, len(selected))
	resolveOne := func(ctx context.Context, i int) {
		desc := selected[i]
		m, err := deps.Resolver.Resolve(ctx, userID, desc)
		switch {
		case err != nil:
			metrics.IncMaterial(string(desc.Type), "error")
			deps.Log.Warn("material unavailable",
				"type", string(desc.Type),
				"doc_id", desc.DocID,
				"lesson_id", desc.LessonID,
				"error", err,
			)
		case m == nil:
			metrics.IncMaterial(string(desc.Type), "unavailable")
		default:
			metrics.IncMaterial(string(desc.Type), "resolved")
			slots[i] = m
		}
	}

	if deps.ResolveParallel && len(selected) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		for i := range selected {
			i := i
			g.Go(func() error {
				resolveOne(gctx, i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range selected {
			resolveOne(ctx, i)
		}
	}

	out := make([]domain.ResolvedMaterial, 0, len(selected))
	for _, m := range slots {
		if m != nil {
			out = append(out, *m)
		}
	}
	span.SetAttributes(attribute.Int("grounding.resolved", len(out)))
	return out
}
