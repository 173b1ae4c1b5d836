package progress

import (
	"context"
	"fmt"

	"github.com/yungbote/coursechat-backend/internal/data/docstore"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

// Tracker answers completion questions from the per-user progress documents
// users/{uid}/{run}/lessonsProgress and users/{uid}/{run}/assnProgress.
type Tracker struct {
	store     docstore.Store
	courseRun string
	log       *logger.Logger
}

func NewTracker(store docstore.Store, courseRun string, log *logger.Logger) *Tracker {
	return &Tracker{store: store, courseRun: courseRun, log: log.With("service", "ProgressTracker")}
}

func LessonsProgressKey(userID, courseRun string) docstore.Key {
	return docstore.Path("users", userID, courseRun, "lessonsProgress")
}

func AssignmentProgressKey(userID, courseRun string) docstore.Key {
	return docstore.Path("users", userID, courseRun, "assnProgress")
}

// HasCompletedItem is true when the whole lesson or the single lesson/doc
// slide is marked complete. Items with no lesson count as completed.
func (t *Tracker) HasCompletedItem(ctx context.Context, userID, lessonID, docID string) (bool, error) {
	if lessonID == "" {
		return true, nil
	}
	rec, found, err := t.store.Get(ctx, LessonsProgressKey(userID, t.courseRun))
	if err != nil {
		return false, fmt.Errorf("lessons progress: %w", err)
	}
	if !found {
		return false, nil
	}
	return rec.Truthy(lessonID) || rec.Truthy(lessonID+"/"+docID), nil
}

func (t *Tracker) HasCompletedAssignment(ctx context.Context, userID, docID string) (bool, error) {
	rec, found, err := t.store.Get(ctx, AssignmentProgressKey(userID, t.courseRun))
	if err != nil {
		return false, fmt.Errorf("assignment progress: %w", err)
	}
	if !found {
		return false, nil
	}
	return rec.Truthy(docID), nil
}
