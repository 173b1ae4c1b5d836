package domain

import (
	"github.com/yungbote/coursechat-backend/internal/domain/chat"
	"github.com/yungbote/coursechat-backend/internal/domain/documents"
	"github.com/yungbote/coursechat-backend/internal/domain/materials"
)

type (
	ChatMessage = chat.ChatMessage

	MaterialType       = materials.MaterialType
	MaterialDescriptor = materials.MaterialDescriptor
	ResolvedMaterial   = materials.ResolvedMaterial
	Classification     = materials.Classification

	CourseDocument = documents.CourseDocument
)

const (
	RoleSystem    = chat.RoleSystem
	RoleUser      = chat.RoleUser
	RoleAssistant = chat.RoleAssistant

	MaterialCodeExample   = materials.MaterialCodeExample
	MaterialLectureVideo  = materials.MaterialLectureVideo
	MaterialPythonChapter = materials.MaterialPythonChapter
	MaterialKarelChapter  = materials.MaterialKarelChapter
	MaterialAssignment    = materials.MaterialAssignment
	MaterialDocumentation = materials.MaterialDocumentation
)

var (
	AllMaterialTypes  = materials.AllMaterialTypes
	ParseMaterialType = materials.ParseMaterialType
)
