package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/coursechat-backend/internal/domain"
	"github.com/yungbote/coursechat-backend/internal/modules/grounding/prompts"
	"github.com/yungbote/coursechat-backend/internal/observability"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
	"github.com/yungbote/coursechat-backend/internal/services"
)

// ClassificationStatus tags how a classifier reply was understood.
type ClassificationStatus int

const (
	ClassificationUnparseable ClassificationStatus = iota
	ClassificationNoReference
	ClassificationReference
	ClassificationUnknownType
)

func (s ClassificationStatus) String() string {
	switch s {
	case ClassificationNoReference:
		return "no_reference"
	case ClassificationReference:
		return "reference"
	case ClassificationUnknownType:
		return "unknown_type"
	default:
		return "unparseable"
	}
}

type classifierReply struct {
	ShouldReference json.RawMessage `json:"shouldReference"`
	Materials       json.RawMessage `json:"materials"`
}

type classifierMaterials struct {
	Concept string `json:"concept"`
	Type    string `json:"type"`
}

// ParseClassification decodes the classifier's JSON answer. Only a reply with
// a true shouldReference and a materials object yields ClassificationReference.
// For ClassificationUnknownType the returned MaterialType carries the raw value.
func ParseClassification(raw string) (domain.Classification, ClassificationStatus) {
	out := domain.Classification{}
	var reply classifierReply
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &reply); err != nil {
		return out, ClassificationUnparseable
	}
	if !truthy(reply.ShouldReference) {
		return out, ClassificationNoReference
	}
	out.ShouldReference = true
	if isAbsent(reply.Materials) {
		return out, ClassificationNoReference
	}
	var m classifierMaterials
	if err := json.Unmarshal(reply.Materials, &m); err != nil {
		return out, ClassificationUnparseable
	}
	out.Concept = strings.TrimSpace(m.Concept)
	t, ok := domain.ParseMaterialType(m.Type)
	out.MaterialType = t
	if !ok {
		return out, ClassificationUnknownType
	}
	return out, ClassificationReference
}

func truthy(raw json.RawMessage) bool {
	if isAbsent(raw) {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.EqualFold(strings.TrimSpace(s), "true")
	}
	return false
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

type ClassifyDeps struct {
	Log        *logger.Logger
	Catalog    MaterialCatalog
	Completion services.CompletionService
	Model      string
	MaxTokens  int
}

type ClassifyInput struct {
	Messages       []domain.ChatMessage
	CurrentContent string
}

type ClassifyOutput struct {
	Classification domain.Classification
	Status         ClassificationStatus
}

// Classify asks the classifier model whether course material should be cited.
func Classify(ctx context.Context, deps ClassifyDeps, in ClassifyInput) (ClassifyOutput, error) {
	out := ClassifyOutput{Status: ClassificationUnparseable}
	if deps.Log == nil || deps.Catalog == nil || deps.Completion == nil {
		return out, fmt.Errorf("grounding classify: missing deps")
	}

	ctx, span := tracer.Start(ctx, "grounding.classify")
	defer span.End()

	system := prompts.ClassificationPrompt(deps.Catalog.Concepts(), deps.Catalog.MaterialTypes(), in.CurrentContent)
	msgs := make([]domain.ChatMessage, 0, len(in.Messages)+1)
	msgs = append(msgs, domain.ChatMessage{Role: domain.RoleSystem, Content: system})
	msgs = append(msgs, in.Messages...)

	raw := deps.Completion.Complete(ctx, services.CompletionRequest{
		Model:     deps.Model,
		Messages:  msgs,
		JSONMode:  true,
		MaxTokens: deps.MaxTokens,
	})

	out.Classification, out.Status = ParseClassification(raw)
	span.SetAttributes(attribute.String("grounding.classification", out.Status.String()))
	if metrics := observability.Current(); metrics != nil {
		metrics.IncClassification(out.Status.String())
	}

	switch out.Status {
	case ClassificationUnparseable:
		deps.Log.Warn("classifier reply not parseable; answering without course material", "reply_len", len(raw))
	case ClassificationUnknownType:
		deps.Log.Error("invariant violation: classifier returned unknown material type",
			"type", string(out.Classification.MaterialType),
			"concept", out.Classification.Concept,
		)
	default:
		deps.Log.Debug("classified turn",
			"status", out.Status.String(),
			"concept", out.Classification.Concept,
			"type", string(out.Classification.MaterialType),
		)
	}
	return out, nil
}
