package steps

import (
	"testing"

	"github.com/yungbote/coursechat-backend/internal/domain"
)

func TestParseClassification(t *testing.T) {
	cases := []struct {
		name        string
		raw         string
		wantStatus  ClassificationStatus
		wantType    domain.MaterialType
		wantConcept string
	}{
		{
			name:        "reference_with_label",
			raw:         `{"shouldReference": true, "materials": {"concept": "for loops", "type": "code example"}}`,
			wantStatus:  ClassificationReference,
			wantType:    domain.MaterialCodeExample,
			wantConcept: "for loops",
		},
		{
			name:        "reference_with_wire_value",
			raw:         ` {"shouldReference": true, "materials": {"concept": "lists", "type": "lecture_video"}} `,
			wantStatus:  ClassificationReference,
			wantType:    domain.MaterialLectureVideo,
			wantConcept: "lists",
		},
		{
			name:        "string_true",
			raw:         `{"shouldReference": "true", "materials": {"concept": "lists", "type": "assignment"}}`,
			wantStatus:  ClassificationReference,
			wantType:    domain.MaterialAssignment,
			wantConcept: "lists",
		},
		{name: "should_reference_false", raw: `{"shouldReference": false, "materials": {"concept": "lists", "type": "assignment"}}`, wantStatus: ClassificationNoReference},
		{name: "should_reference_missing", raw: `{"materials": {"concept": "lists", "type": "assignment"}}`, wantStatus: ClassificationNoReference},
		{name: "materials_missing", raw: `{"shouldReference": true}`, wantStatus: ClassificationNoReference},
		{name: "materials_null", raw: `{"shouldReference": true, "materials": null}`, wantStatus: ClassificationNoReference},
		{name: "materials_array", raw: `{"shouldReference": true, "materials": [{"concept": "lists"}]}`, wantStatus: ClassificationUnparseable},
		{name: "not_json", raw: `I think the student should read chapter 3.`, wantStatus: ClassificationUnparseable},
		{name: "apology", raw: "I'm sorry, there is an error with the chat service. Please try again later!", wantStatus: ClassificationUnparseable},
		{name: "empty", raw: "", wantStatus: ClassificationUnparseable},
		{
			name:        "unknown_type",
			raw:         `{"shouldReference": true, "materials": {"concept": "lists", "type": "podcast"}}`,
			wantStatus:  ClassificationUnknownType,
			wantType:    domain.MaterialType("podcast"),
			wantConcept: "lists",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, status := ParseClassification(tc.raw)
			if status != tc.wantStatus {
				t.Fatalf("status=%s, want %s", status, tc.wantStatus)
			}
			if got.MaterialType != tc.wantType {
				t.Fatalf("type=%q, want %q", got.MaterialType, tc.wantType)
			}
			if got.Concept != tc.wantConcept {
				t.Fatalf("concept=%q, want %q", got.Concept, tc.wantConcept)
			}
			if status == ClassificationReference && !got.ShouldReference {
				t.Fatalf("ShouldReference=false on a reference")
			}
		})
	}
}
