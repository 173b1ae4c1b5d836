package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursechat-backend/internal/domain"
	"github.com/yungbote/coursechat-backend/internal/http/response"
	"github.com/yungbote/coursechat-backend/internal/modules/grounding"
	"github.com/yungbote/coursechat-backend/internal/platform/apierr"
	"github.com/yungbote/coursechat-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

type GroundingUsecases interface {
	GenerateGroundedContext(ctx context.Context, in grounding.ContextInput) []domain.ResolvedMaterial
	RespondGrounded(ctx context.Context, in grounding.RespondInput) grounding.RespondOutput
}

// DocumentNormalizer flattens an editor document into prompt text.
type DocumentNormalizer interface {
	NormalizeJSON(raw []byte) string
}

type GroundingHandler struct {
	grounding  GroundingUsecases
	normalizer DocumentNormalizer
	log        *logger.Logger
}

func NewGroundingHandler(g GroundingUsecases, normalizer DocumentNormalizer, log *logger.Logger) *GroundingHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &GroundingHandler{grounding: g, normalizer: normalizer, log: log.With("handler", "GroundingHandler")}
}

type groundedChatReq struct {
	UserID         string               `json:"user_id"`
	Messages       []domain.ChatMessage `json:"messages"`
	CurrentContent string               `json:"current_content"`
	// CurrentDocument is the rich-text page the student is on; it is
	// flattened and used when CurrentContent is empty.
	CurrentDocument json.RawMessage `json:"current_document,omitempty"`
	LessonID        string          `json:"lesson_id"`
	Personified     bool            `json:"personified"`
}

func (h *GroundingHandler) bind(c *gin.Context) (groundedChatReq, error) {
	var req groundedChatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, apierr.BadRequest("invalid_request", err)
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		return req, apierr.BadRequest("missing_user_id", fmt.Errorf("user_id is required"))
	}
	if len(req.Messages) == 0 {
		return req, apierr.BadRequest("missing_messages", fmt.Errorf("messages must not be empty"))
	}
	for i, m := range req.Messages {
		if m.Role != domain.RoleUser && m.Role != domain.RoleAssistant {
			return req, apierr.BadRequest("invalid_message_role", fmt.Errorf("messages[%d]: role %q must be user or assistant", i, m.Role))
		}
	}
	if strings.TrimSpace(req.CurrentContent) == "" && len(req.CurrentDocument) > 0 && h.normalizer != nil {
		req.CurrentContent = h.normalizer.NormalizeJSON(req.CurrentDocument)
	}
	return req, nil
}

// POST /api/chat/grounded
func (h *GroundingHandler) Respond(c *gin.Context) {
	req, err := h.bind(c)
	if err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}
	out := h.grounding.RespondGrounded(c.Request.Context(), grounding.RespondInput{
		UserID:         req.UserID,
		Messages:       req.Messages,
		CurrentContent: req.CurrentContent,
		LessonID:       req.LessonID,
		Personified:    req.Personified,
	})

	fields := append([]interface{}{
		"lesson_id", req.LessonID,
		"materials", materialTitles(out.Materials),
	}, ctxutil.LogFields(c.Request.Context())...)
	h.log.Info("grounded reply", fields...)

	response.RespondOK(c, gin.H{"reply": out.Reply})
}

// POST /api/chat/grounded/context
func (h *GroundingHandler) Context(c *gin.Context) {
	req, err := h.bind(c)
	if err != nil {
		response.RespondAPIError(c, err, "invalid_request")
		return
	}
	materials := h.grounding.GenerateGroundedContext(c.Request.Context(), grounding.ContextInput{
		UserID:         req.UserID,
		Messages:       req.Messages,
		CurrentContent: req.CurrentContent,
		LessonID:       req.LessonID,
	})
	response.RespondOK(c, gin.H{"materials": materials})
}

func materialTitles(ms []domain.ResolvedMaterial) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, string(m.Type)+":"+m.Title)
	}
	return out
}
