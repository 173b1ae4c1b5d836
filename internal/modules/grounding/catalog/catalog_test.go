package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yungbote/coursechat-backend/internal/domain"
)

const fixtureYAML = `
site_base_url: https://example.edu/
course_run: run1
lessons: [a, b, c]
concepts: [for loops, lists]
materials:
  - {type: code_example, lesson_id: a, doc_id: x1, title: X1, tags: for loops}
  - {type: code_example, lesson_id: c, doc_id: x2, title: X2, tags: for loops}
  - {type: lecture_video, lesson_id: b, doc_id: v1, title: V1, tags: for loops}
  - {type: code_example, lesson_id: b, doc_id: x3, title: X3, tags: lists}
`

func TestLookup(t *testing.T) {
	cat, err := Parse([]byte(fixtureYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cases := []struct {
		name    string
		typ     domain.MaterialType
		concept string
		want    []string
	}{
		{name: "type_and_tag", typ: domain.MaterialCodeExample, concept: "for loops", want: []string{"x1", "x2"}},
		{name: "other_type", typ: domain.MaterialLectureVideo, concept: "for loops", want: []string{"v1"}},
		{name: "case_sensitive", typ: domain.MaterialCodeExample, concept: "For Loops", want: nil},
		{name: "no_match", typ: domain.MaterialAssignment, concept: "lists", want: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cat.Lookup(tc.typ, tc.concept)
			if got == nil {
				t.Fatalf("Lookup returned nil slice")
			}
			if len(got) != len(tc.want) {
				t.Fatalf("Lookup len=%d, want %d (%+v)", len(got), len(tc.want), got)
			}
			for i, d := range got {
				if d.DocID != tc.want[i] {
					t.Fatalf("Lookup[%d]=%q, want %q", i, d.DocID, tc.want[i])
				}
			}
		})
	}
}

func TestLessonIndex(t *testing.T) {
	cat, err := Parse([]byte(fixtureYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := cat.LessonIndex("a"); got != 0 {
		t.Fatalf("LessonIndex(a)=%d, want 0", got)
	}
	if got := cat.LessonIndex("c"); got != 2 {
		t.Fatalf("LessonIndex(c)=%d, want 2", got)
	}
	if got := cat.LessonIndex("missing"); got != InvalidLesson {
		t.Fatalf("LessonIndex(missing)=%d, want InvalidLesson", got)
	}
	if id, ok := cat.LessonAt(1); !ok || id != "b" {
		t.Fatalf("LessonAt(1)=(%q,%v)", id, ok)
	}
	if _, ok := cat.LessonAt(3); ok {
		t.Fatalf("LessonAt(3) should be out of range")
	}
	if cat.SiteBaseURL() != "https://example.edu" {
		t.Fatalf("SiteBaseURL=%q, trailing slash not trimmed", cat.SiteBaseURL())
	}
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{name: "no_lessons", yaml: "lessons: []", want: "no lessons"},
		{name: "duplicate_lesson", yaml: "lessons: [a, a]", want: "duplicate lesson"},
		{name: "unknown_type", yaml: "lessons: [a]\nmaterials:\n  - {type: about_page, title: t, tags: x}", want: "unknown type"},
		{name: "missing_lesson", yaml: "lessons: [a]\nmaterials:\n  - {type: lecture_video, doc_id: v, title: t, tags: x}", want: "needs a lesson_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Parse err=%v, want containing %q", err, tc.want)
			}
		})
	}
}

func TestLoadDefaultCourse(t *testing.T) {
	t.Setenv(CatalogPathEnv, "")
	cat, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cat.Concepts()) != 23 {
		t.Fatalf("concepts=%d, want 23", len(cat.Concepts()))
	}
	for _, m := range cat.Materials() {
		found := false
		for _, c := range cat.Concepts() {
			if c == m.Tags {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("material %q tagged with unknown concept %q", m.Title, m.Tags)
		}
		if m.Type != domain.MaterialDocumentation && m.Type != domain.MaterialKarelChapter && cat.LessonIndex(m.LessonID) == InvalidLesson {
			t.Fatalf("material %q references unknown lesson %q", m.Title, m.LessonID)
		}
	}
	if len(cat.NameCorrections()) == 0 {
		t.Fatalf("default course should carry name corrections")
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.yaml")
	if err := os.WriteFile(path, []byte(fixtureYAML), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(CatalogPathEnv, path)
	cat, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cat.CourseRun() != "run1" || cat.LessonCount() != 3 {
		t.Fatalf("unexpected catalog: run=%q lessons=%d", cat.CourseRun(), cat.LessonCount())
	}
}
