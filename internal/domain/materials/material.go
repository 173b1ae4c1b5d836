package materials

import "strings"

// MaterialType is the closed set of course material kinds the grounding
// pipeline knows how to select and resolve.
type MaterialType string

const (
	MaterialCodeExample   MaterialType = "code_example"
	MaterialLectureVideo  MaterialType = "lecture_video"
	MaterialPythonChapter MaterialType = "python_chapter"
	MaterialKarelChapter  MaterialType = "karel_chapter"
	MaterialAssignment    MaterialType = "assignment"
	MaterialDocumentation MaterialType = "documentation"
)

// AllMaterialTypes lists every known type in classifier-prompt order.
var AllMaterialTypes = []MaterialType{
	MaterialCodeExample,
	MaterialLectureVideo,
	MaterialPythonChapter,
	MaterialKarelChapter,
	MaterialAssignment,
	MaterialDocumentation,
}

var materialLabels = map[MaterialType]string{
	MaterialCodeExample:   "code example",
	MaterialLectureVideo:  "lecture video",
	MaterialPythonChapter: "python textbook chapter",
	MaterialKarelChapter:  "karel textbook chapter",
	MaterialAssignment:    "assignment",
	MaterialDocumentation: "code documentation",
}

func (t MaterialType) Valid() bool {
	_, ok := materialLabels[t]
	return ok
}

// Label is the human wording used in prompts ("lecture video").
func (t MaterialType) Label() string {
	if l, ok := materialLabels[t]; ok {
		return l
	}
	return string(t)
}

// ParseMaterialType accepts either the wire value ("lecture_video") or the
// prompt label ("lecture video"). Unknown input is returned as-is with ok=false
// so callers can log the offending value.
func ParseMaterialType(raw string) (MaterialType, bool) {
	s := strings.TrimSpace(raw)
	if t := MaterialType(s); t.Valid() {
		return t, true
	}
	low := strings.ToLower(s)
	for t, label := range materialLabels {
		if low == label {
			return t, true
		}
	}
	return MaterialType(s), false
}

// MaterialDescriptor identifies one catalog entry without its content.
type MaterialDescriptor struct {
	Type     MaterialType `json:"type" yaml:"type"`
	DocID    string       `json:"doc_id,omitempty" yaml:"doc_id,omitempty"`
	LessonID string       `json:"lesson_id,omitempty" yaml:"lesson_id,omitempty"`
	Title    string       `json:"title" yaml:"title"`
	Tags     string       `json:"tags" yaml:"tags"`
}

// ResolvedMaterial is a descriptor hydrated with content, link and the
// student's completion status. URL is nil for materials without a page.
type ResolvedMaterial struct {
	Content      string       `json:"content"`
	URL          *string      `json:"url"`
	HasCompleted bool         `json:"has_completed"`
	Title        string       `json:"title"`
	Type         MaterialType `json:"type"`
}

// Classification is the parsed grounding decision for one chat turn.
type Classification struct {
	ShouldReference bool
	Concept         string
	MaterialType    MaterialType
}
