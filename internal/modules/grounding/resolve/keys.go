package resolve

import "github.com/yungbote/coursechat-backend/internal/data/docstore"

// Document layout of the course store.

func LessonItemKey(lessonID, docID string) docstore.Key {
	return docstore.Path("lessons", "public", "lessonsList", lessonID, "itemsList", docID)
}

// AssignmentDocKey addresses one of an assignment's docs: "prompt", "soln"
// or "starterCode".
func AssignmentDocKey(assignmentKey, doc string) docstore.Key {
	return docstore.Path("assns", "public", "assignments", assignmentKey, "docs", doc)
}

func TranscriptKey(lessonID, docID string) docstore.Key {
	return docstore.Path("transcripts", lessonID, "items", docID)
}

func TextbookChapterKey(file string) docstore.Key {
	return docstore.Path("textbook", "public", "chapters", file)
}

func KarelChapterKey(docID string) docstore.Key {
	return docstore.Path("karel_textbook", docID)
}

func LibraryDocKey(library string) docstore.Key {
	return docstore.Path("docs", "public", "libraries", library)
}

const (
	DocPrompt      = "prompt"
	DocSolution    = "soln"
	DocStarterCode = "starterCode"
)
