package testutil

import (
	"context"
	"testing"

	"github.com/yungbote/coursechat-backend/internal/data/docstore"
	"github.com/yungbote/coursechat-backend/internal/modules/grounding/catalog"
	"github.com/yungbote/coursechat-backend/internal/modules/grounding/resolve"
	"github.com/yungbote/coursechat-backend/internal/modules/grounding/richtext"
	"github.com/yungbote/coursechat-backend/internal/modules/progress"
)

const (
	SiteBaseURL = "https://course.test"
	CourseRun   = "run1"
	UserID      = "student-1"
)

// CourseYAML is a small catalog: five lessons, for-loop materials of every
// type, and a python chapter that points at the excluded external site.
const CourseYAML = `
course: fixture
site_base_url: https://course.test
course_run: run1
excluded_chapter_marker: compedu
name_corrections:
  - {from: carol, to: Karel}
lessons: [intro, loops, functions, graphics, lists]
concepts: [for loops, functions, graphics]
materials:
  - {type: code_example, lesson_id: loops, doc_id: countTen, title: "Count to Ten", tags: for loops}
  - {type: code_example, lesson_id: graphics, doc_id: rowOfSquares, title: "Row of Squares", tags: for loops}
  - {type: lecture_video, lesson_id: loops, doc_id: loopsLecture, title: "Loops Lecture", tags: for loops}
  - {type: python_chapter, lesson_id: loops, doc_id: readingForLoops, title: "For Loops", tags: for loops}
  - {type: python_chapter, lesson_id: functions, doc_id: readingExternal, title: "External Functions", tags: functions}
  - {type: karel_chapter, lesson_id: intro, doc_id: for-loops, title: "Karel For Loops", tags: for loops}
  - {type: assignment, lesson_id: loops, doc_id: pyramid, title: "Pyramid", tags: for loops}
  - {type: documentation, lesson_id: graphics, title: "Graphics Library", tags: graphics}
  - {type: code_example, lesson_id: functions, doc_id: missingPointer, title: "Missing Pointer", tags: functions}
`

func Catalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse([]byte(CourseYAML))
	if err != nil {
		t.Fatalf("catalog.Parse: %v", err)
	}
	return cat
}

func Paragraphs(lines ...string) *richtext.Node {
	children := make([]*richtext.Node, 0, len(lines))
	for _, l := range lines {
		children = append(children, richtext.Container("paragraph", richtext.TextNode(l)))
	}
	return richtext.Container("doc", children...)
}

func Code(code string) *richtext.Node {
	return richtext.Container("doc", richtext.CodeNode("runnable-code", code))
}

func put(t *testing.T, store docstore.Store, key docstore.Key, fields map[string]any) {
	t.Helper()
	rec, err := docstore.NewRecord(fields)
	if err != nil {
		t.Fatalf("NewRecord %s: %v", key, err)
	}
	if err := store.Put(context.Background(), key, rec); err != nil {
		t.Fatalf("Put %s: %v", key, err)
	}
}

// SeedCourse writes the documents behind CourseYAML. countTen has both a
// solution and starter code; rowOfSquares only starter code.
func SeedCourse(t *testing.T, store docstore.Store) {
	t.Helper()

	put(t, store, resolve.LessonItemKey("loops", "countTen"), map[string]any{"url": "countTen"})
	put(t, store, resolve.AssignmentDocKey("countTen", resolve.DocPrompt), map[string]any{"content": Paragraphs("Print the numbers 1 to 10.")})
	put(t, store, resolve.AssignmentDocKey("countTen", resolve.DocSolution), map[string]any{"content": Code("for i in range(10):\n    print(i + 1)")})
	put(t, store, resolve.AssignmentDocKey("countTen", resolve.DocStarterCode), map[string]any{"content": Code("# TODO")})

	put(t, store, resolve.LessonItemKey("graphics", "rowOfSquares"), map[string]any{"url": "rowOfSquares"})
	put(t, store, resolve.AssignmentDocKey("rowOfSquares", resolve.DocPrompt), map[string]any{"content": Paragraphs("Draw a row of squares.")})
	put(t, store, resolve.AssignmentDocKey("rowOfSquares", resolve.DocStarterCode), map[string]any{"content": Code("def main():\n    pass")})

	put(t, store, resolve.TranscriptKey("loops", "loopsLecture"), map[string]any{
		"transcript": []map[string]any{{"text": "Welcome back."}, {"text": "Today: for loops."}},
	})

	put(t, store, resolve.LessonItemKey("loops", "readingForLoops"), map[string]any{"url": "/textbook/for-loops"})
	put(t, store, resolve.TextbookChapterKey("for-loops"), map[string]any{"content": Paragraphs("A for loop repeats code.")})
	put(t, store, resolve.LessonItemKey("functions", "readingExternal"), map[string]any{"url": "https://compedu.example/functions"})

	put(t, store, resolve.KarelChapterKey("for-loops"), map[string]any{
		"content": "Karel can repeat with for loops.",
		"url":     "https://course.test/karel/for-loops",
	})

	put(t, store, resolve.AssignmentDocKey("pyramid", resolve.DocPrompt), map[string]any{"content": Paragraphs("Build a pyramid of bricks.")})

	put(t, store, resolve.LibraryDocKey("graphics"), map[string]any{"content": Paragraphs("create_rectangle(x1, y1, x2, y2)")})

	put(t, store, progress.LessonsProgressKey(UserID, CourseRun), map[string]any{"loops/countTen": true})
	put(t, store, progress.AssignmentProgressKey(UserID, CourseRun), map[string]any{"pyramid": true})
}

// Store returns a seeded in-memory store.
func Store(t *testing.T) *docstore.MemoryStore {
	t.Helper()
	store := docstore.NewMemoryStore()
	SeedCourse(t, store)
	return store
}
