package steps

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/yungbote/coursechat-backend/internal/domain"
)

var tracer = otel.Tracer("github.com/yungbote/coursechat-backend/internal/modules/grounding")

// MaterialCatalog is the read-only course reference data.
type MaterialCatalog interface {
	Concepts() []string
	MaterialTypes() []domain.MaterialType
	Lookup(t domain.MaterialType, concept string) []domain.MaterialDescriptor
}

type MaterialSelector interface {
	Select(descs []domain.MaterialDescriptor, currentLessonID string) []domain.MaterialDescriptor
}

// MaterialResolver returns nil, nil for unavailable material.
type MaterialResolver interface {
	Resolve(ctx context.Context, userID string, desc domain.MaterialDescriptor) (*domain.ResolvedMaterial, error)
}
