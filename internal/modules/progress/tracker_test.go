package progress

import (
	"context"
	"testing"

	"github.com/yungbote/coursechat-backend/internal/data/docstore"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

func seedProgress(t *testing.T) *Tracker {
	t.Helper()
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	lessons, _ := docstore.NewRecord(map[string]any{
		"karel":                   true,
		"control-flow/beeperLine": true,
		"control-flow/walkToWall": false,
	})
	assns, _ := docstore.NewRecord(map[string]any{"stoneMason": true, "nimm": false})
	if err := store.Put(ctx, LessonsProgressKey("u1", "cip4"), lessons); err != nil {
		t.Fatalf("seed lessons: %v", err)
	}
	if err := store.Put(ctx, AssignmentProgressKey("u1", "cip4"), assns); err != nil {
		t.Fatalf("seed assns: %v", err)
	}
	return NewTracker(store, "cip4", logger.NewNop())
}

func TestHasCompletedItem(t *testing.T) {
	tr := seedProgress(t)
	cases := []struct {
		name   string
		user   string
		lesson string
		doc    string
		want   bool
	}{
		{name: "whole_lesson", user: "u1", lesson: "karel", doc: "anything", want: true},
		{name: "single_slide", user: "u1", lesson: "control-flow", doc: "beeperLine", want: true},
		{name: "slide_marked_false", user: "u1", lesson: "control-flow", doc: "walkToWall", want: false},
		{name: "not_started", user: "u1", lesson: "graphics", doc: "checkerboard", want: false},
		{name: "empty_lesson_counts", user: "u1", lesson: "", doc: "intro", want: true},
		{name: "unknown_user", user: "u2", lesson: "karel", doc: "x", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tr.HasCompletedItem(context.Background(), tc.user, tc.lesson, tc.doc)
			if err != nil {
				t.Fatalf("HasCompletedItem: %v", err)
			}
			if got != tc.want {
				t.Fatalf("HasCompletedItem=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestHasCompletedAssignment(t *testing.T) {
	tr := seedProgress(t)
	for doc, want := range map[string]bool{"stoneMason": true, "nimm": false, "pyramid": false} {
		got, err := tr.HasCompletedAssignment(context.Background(), "u1", doc)
		if err != nil || got != want {
			t.Fatalf("HasCompletedAssignment(%q)=(%v,%v), want %v", doc, got, err, want)
		}
	}
	got, err := tr.HasCompletedAssignment(context.Background(), "nobody", "stoneMason")
	if err != nil || got {
		t.Fatalf("unknown user: (%v,%v)", got, err)
	}
}
