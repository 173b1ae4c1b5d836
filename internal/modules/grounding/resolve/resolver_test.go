package resolve_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yungbote/coursechat-backend/internal/data/docstore"
	"github.com/yungbote/coursechat-backend/internal/domain"
	"github.com/yungbote/coursechat-backend/internal/modules/grounding/resolve"
	"github.com/yungbote/coursechat-backend/internal/modules/grounding/testutil"
	"github.com/yungbote/coursechat-backend/internal/modules/progress"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

func newResolver(t *testing.T, store docstore.Store) *resolve.Resolver {
	t.Helper()
	log := logger.NewNop()
	tracker := progress.NewTracker(store, testutil.CourseRun, log)
	return resolve.New(store, tracker, resolve.Config{
		SiteBaseURL:           testutil.SiteBaseURL,
		ExcludedChapterMarker: "compedu",
	}, log)
}

func desc(t *testing.T, typ domain.MaterialType, docID string) domain.MaterialDescriptor {
	t.Helper()
	for _, d := range testutil.Catalog(t).Materials() {
		if d.Type == typ && d.DocID == docID {
			return d
		}
	}
	t.Fatalf("no fixture descriptor %s/%s", typ, docID)
	return domain.MaterialDescriptor{}
}

func TestResolveByType(t *testing.T) {
	r := newResolver(t, testutil.Store(t))
	docs := testutil.Catalog(t).Lookup(domain.MaterialDocumentation, "graphics")

	cases := []struct {
		name          string
		desc          domain.MaterialDescriptor
		wantContent   []string
		rejectContent []string
		wantURL       string
		wantCompleted bool
	}{
		{
			name:          "code_example_prefers_solution",
			desc:          desc(t, domain.MaterialCodeExample, "countTen"),
			wantContent:   []string{"Print the numbers 1 to 10.", "\n\nfor i in range(10):"},
			rejectContent: []string{"# TODO"},
			wantURL:       "https://course.test/public/ide/a/countTen",
			wantCompleted: true,
		},
		{
			name:          "code_example_falls_back_to_starter",
			desc:          desc(t, domain.MaterialCodeExample, "rowOfSquares"),
			wantContent:   []string{"Draw a row of squares.", "\n\ndef main():"},
			wantURL:       "https://course.test/public/ide/a/rowOfSquares",
			wantCompleted: false,
		},
		{
			name:        "lecture_video_joins_segments",
			desc:        desc(t, domain.MaterialLectureVideo, "loopsLecture"),
			wantContent: []string{"Welcome back.\nToday: for loops."},
			wantURL:     "https://course.test/public/learn/loops/loopsLecture",
		},
		{
			name:        "python_chapter_uses_last_url_segment",
			desc:        desc(t, domain.MaterialPythonChapter, "readingForLoops"),
			wantContent: []string{"A for loop repeats code."},
			wantURL:     "https://course.test/public/textbook/for-loops",
		},
		{
			name:        "karel_chapter_plain_content",
			desc:        desc(t, domain.MaterialKarelChapter, "for-loops"),
			wantContent: []string{"Karel can repeat with for loops."},
			wantURL:     "https://course.test/karel/for-loops",
		},
		{
			name:          "assignment_prompt",
			desc:          desc(t, domain.MaterialAssignment, "pyramid"),
			wantContent:   []string{"Build a pyramid of bricks."},
			wantURL:       "https://course.test/public/ide/a/pyramid",
			wantCompleted: true,
		},
		{
			name:          "documentation_has_no_url",
			desc:          docs[0],
			wantContent:   []string{"create_rectangle"},
			wantCompleted: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), testutil.UserID, tc.desc)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got == nil {
				t.Fatalf("Resolve returned nil")
			}
			for _, want := range tc.wantContent {
				if !strings.Contains(got.Content, want) {
					t.Fatalf("content %q missing %q", got.Content, want)
				}
			}
			for _, reject := range tc.rejectContent {
				if strings.Contains(got.Content, reject) {
					t.Fatalf("content %q should not contain %q", got.Content, reject)
				}
			}
			if tc.wantURL == "" {
				if got.URL != nil {
					t.Fatalf("url=%q, want nil", *got.URL)
				}
			} else if got.URL == nil || *got.URL != tc.wantURL {
				t.Fatalf("url=%v, want %q", got.URL, tc.wantURL)
			}
			if got.HasCompleted != tc.wantCompleted {
				t.Fatalf("HasCompleted=%v, want %v", got.HasCompleted, tc.wantCompleted)
			}
			if got.Title != tc.desc.Title || got.Type != tc.desc.Type {
				t.Fatalf("title/type not carried: %+v", got)
			}
		})
	}
}

func TestResolveUnavailable(t *testing.T) {
	r := newResolver(t, testutil.Store(t))
	cases := []struct {
		name string
		desc domain.MaterialDescriptor
	}{
		{name: "missing_lesson_item", desc: desc(t, domain.MaterialCodeExample, "missingPointer")},
		{name: "excluded_python_chapter", desc: desc(t, domain.MaterialPythonChapter, "readingExternal")},
		{name: "missing_transcript", desc: domain.MaterialDescriptor{Type: domain.MaterialLectureVideo, LessonID: "loops", DocID: "nope"}},
		{name: "missing_karel_chapter", desc: domain.MaterialDescriptor{Type: domain.MaterialKarelChapter, DocID: "nope"}},
		{name: "missing_assignment", desc: domain.MaterialDescriptor{Type: domain.MaterialAssignment, DocID: "nope"}},
		{name: "missing_library", desc: domain.MaterialDescriptor{Type: domain.MaterialDocumentation, LessonID: "nope"}},
		{name: "unknown_type", desc: domain.MaterialDescriptor{Type: domain.MaterialType("about_page"), DocID: "about"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), testutil.UserID, tc.desc)
			if err != nil {
				t.Fatalf("Resolve err=%v, want nil", err)
			}
			if got != nil {
				t.Fatalf("Resolve=%+v, want nil", got)
			}
		})
	}
}

func TestCodeExampleWithoutCodeDocs(t *testing.T) {
	store := testutil.Store(t)
	ctx := context.Background()
	ptr, _ := docstore.NewRecord(map[string]any{"url": "promptOnly"})
	prompt, _ := docstore.NewRecord(map[string]any{"content": testutil.Paragraphs("Only a prompt.")})
	_ = store.Put(ctx, resolve.LessonItemKey("loops", "promptOnly"), ptr)
	_ = store.Put(ctx, resolve.AssignmentDocKey("promptOnly", resolve.DocPrompt), prompt)

	r := newResolver(t, store)
	got, err := r.Resolve(ctx, testutil.UserID, domain.MaterialDescriptor{Type: domain.MaterialCodeExample, LessonID: "loops", DocID: "promptOnly", Title: "p"})
	if err != nil || got == nil {
		t.Fatalf("Resolve=(%v,%v)", got, err)
	}
	if got.Content != "Only a prompt. \n" {
		t.Fatalf("content=%q", got.Content)
	}
}

type failingStore struct{ docstore.Store }

var errBackend = errors.New("backend down")

func (failingStore) Get(context.Context, docstore.Key) (docstore.Record, bool, error) {
	return nil, false, errBackend
}

func TestResolveSurfacesStoreErrors(t *testing.T) {
	r := newResolver(t, failingStore{})
	_, err := r.Resolve(context.Background(), testutil.UserID, domain.MaterialDescriptor{Type: domain.MaterialAssignment, DocID: "pyramid"})
	if !errors.Is(err, errBackend) {
		t.Fatalf("err=%v, want wrapped errBackend", err)
	}
}
