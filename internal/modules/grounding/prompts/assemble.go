package prompts

import (
	"strconv"
	"strings"

	"github.com/yungbote/coursechat-backend/internal/domain"
)

// ClassificationPrompt is the system prompt for the grounding decision call.
// It lists the closed concept and material-type vocabularies, then the
// student's current on-screen content, then the JSON answer format.
func ClassificationPrompt(concepts []string, types []domain.MaterialType, currentContent string) string {
	var b strings.Builder
	b.WriteString("**Programming concepts**:\n")
	for _, c := range concepts {
		b.WriteString("* " + c + "\n")
	}
	b.WriteString("\n**Material types**:\n")
	for _, t := range types {
		b.WriteString("* " + t.Label() + "\n")
	}
	b.WriteString("\n**Current Context**:\n")
	b.WriteString(currentContent)
	b.WriteString("\n\n")
	b.WriteString(classificationTask)
	return b.String()
}

// AssembleGroundedPrompt builds the generation system prompt. With materials
// it restates each one and asks the model to cite them; without, it falls
// back to generic tutoring instructions.
func AssembleGroundedPrompt(materials []domain.ResolvedMaterial, currentContent string, personified bool) string {
	var b strings.Builder
	b.WriteString(ContextPrompt)
	b.WriteString("\n\n")
	b.WriteString(viewingPrompt)
	b.WriteString(currentContent)
	b.WriteString("\n\n")

	if len(materials) > 0 {
		b.WriteString(materialsIntro)
		for _, m := range materials {
			writeMaterial(&b, m)
		}
		b.WriteString("\n\n")
		b.WriteString(groundingSteps)
		b.WriteString("\n\n")
	} else {
		b.WriteString(InstructionsPrompt)
		b.WriteString("\n\n")
	}

	if personified {
		b.WriteString(PersonifiedExplanation)
	} else {
		b.WriteString(ToolExplanation)
	}
	return b.String()
}

func writeMaterial(b *strings.Builder, m domain.ResolvedMaterial) {
	url := "null"
	if m.URL != nil {
		url = *m.URL
	}
	content := strings.ReplaceAll(m.Content, "&#39;", "'")
	b.WriteString("\n        {")
	b.WriteString("\n            \"title\": \"" + m.Title + "\",")
	b.WriteString("\n            \"type\": \"" + m.Type.Label() + "\",")
	b.WriteString("\n            \"url\": \"" + url + "\",")
	b.WriteString("\n            \"hasCompleted\": \"" + strconv.FormatBool(m.HasCompleted) + "\",")
	b.WriteString("\n            \"content\": \"" + content + "\"")
	b.WriteString("\n        },")
}
