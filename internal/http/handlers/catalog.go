package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursechat-backend/internal/domain"
	"github.com/yungbote/coursechat-backend/internal/http/response"
	"github.com/yungbote/coursechat-backend/internal/platform/apierr"
)

type MaterialCatalog interface {
	Concepts() []string
	MaterialTypes() []domain.MaterialType
	Lookup(t domain.MaterialType, concept string) []domain.MaterialDescriptor
}

type CatalogHandler struct {
	catalog MaterialCatalog
}

func NewCatalogHandler(catalog MaterialCatalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type materialTypeView struct {
	Type  domain.MaterialType `json:"type"`
	Label string              `json:"label"`
}

// GET /api/catalog/vocabulary
func (h *CatalogHandler) Vocabulary(c *gin.Context) {
	types := h.catalog.MaterialTypes()
	views := make([]materialTypeView, 0, len(types))
	for _, t := range types {
		views = append(views, materialTypeView{Type: t, Label: t.Label()})
	}
	response.RespondOK(c, gin.H{"concepts": h.catalog.Concepts(), "material_types": views})
}

// GET /api/catalog/materials?type=code_example&concept=for%20loops
func (h *CatalogHandler) ListMaterials(c *gin.Context) {
	rawType := strings.TrimSpace(c.Query("type"))
	concept := strings.TrimSpace(c.Query("concept"))
	if rawType == "" || concept == "" {
		response.RespondAPIError(c, apierr.BadRequest("missing_query", fmt.Errorf("type and concept are required")), "invalid_request")
		return
	}
	t, ok := domain.ParseMaterialType(rawType)
	if !ok {
		response.RespondAPIError(c, apierr.BadRequest("invalid_material_type", fmt.Errorf("unknown material type %q", rawType)), "invalid_request")
		return
	}
	response.RespondOK(c, gin.H{"materials": h.catalog.Lookup(t, concept)})
}
