package selection

import (
	"math/rand/v2"

	"github.com/yungbote/coursechat-backend/internal/domain"
	"github.com/yungbote/coursechat-backend/internal/modules/grounding/catalog"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

// Chooser returns an index in [0, n). n is always > 0.
type Chooser func(n int) int

// RandomChooser picks uniformly.
func RandomChooser(n int) int { return rand.IntN(n) }

// Outline is the slice of the catalog the selector needs.
type Outline interface {
	LessonIndex(lessonID string) int
	LessonAt(index int) (string, bool)
	LessonCount() int
}

type Selector struct {
	outline Outline
	choose  Chooser
	log     *logger.Logger
}

func New(outline Outline, choose Chooser, log *logger.Logger) *Selector {
	if choose == nil {
		choose = RandomChooser
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Selector{outline: outline, choose: choose, log: log.With("component", "PrioritySelector")}
}

// Select keeps at most one item each of example, lecture, reading and
// assignment, nearest to currentLessonID, followed by every documentation
// item in input order.
func (s *Selector) Select(descs []domain.MaterialDescriptor, currentLessonID string) []domain.MaterialDescriptor {
	var examples, lectures, readings, assignments, docs []domain.MaterialDescriptor
	for _, d := range descs {
		switch d.Type {
		case domain.MaterialCodeExample:
			examples = append(examples, d)
		case domain.MaterialLectureVideo:
			lectures = append(lectures, d)
		case domain.MaterialPythonChapter, domain.MaterialKarelChapter:
			readings = append(readings, d)
		case domain.MaterialAssignment:
			assignments = append(assignments, d)
		case domain.MaterialDocumentation:
			docs = append(docs, d)
		default:
			s.log.Warn("selector dropped descriptor with unknown type", "type", d.Type, "title", d.Title)
		}
	}

	out := make([]domain.MaterialDescriptor, 0, 4+len(docs))
	for _, bucket := range [][]domain.MaterialDescriptor{examples, lectures, readings, assignments} {
		if len(bucket) == 0 {
			continue
		}
		out = append(out, s.nearest(bucket, currentLessonID))
	}
	return append(out, docs...)
}

// nearest implements the lesson-adjacency walk: the current lesson wins,
// then earlier lessons nearest first, then later lessons nearest first.
func (s *Selector) nearest(bucket []domain.MaterialDescriptor, currentLessonID string) domain.MaterialDescriptor {
	current := s.outline.LessonIndex(currentLessonID)
	if current == catalog.InvalidLesson {
		s.log.Debug("unknown current lesson, picking at random", "lesson_id", currentLessonID)
		return s.pick(bucket)
	}
	if items := inLesson(bucket, currentLessonID); len(items) > 0 {
		return s.pick(items)
	}
	for i := current - 1; i >= 0; i-- {
		if items := s.atIndex(bucket, i); len(items) > 0 {
			return s.pick(items)
		}
	}
	for i := current + 1; i < s.outline.LessonCount(); i++ {
		if items := s.atIndex(bucket, i); len(items) > 0 {
			return s.pick(items)
		}
	}
	s.log.Warn("no lesson-indexed match, picking at random", "lesson_id", currentLessonID, "bucket_size", len(bucket))
	return s.pick(bucket)
}

func (s *Selector) atIndex(bucket []domain.MaterialDescriptor, index int) []domain.MaterialDescriptor {
	id, ok := s.outline.LessonAt(index)
	if !ok {
		return nil
	}
	return inLesson(bucket, id)
}

func (s *Selector) pick(items []domain.MaterialDescriptor) domain.MaterialDescriptor {
	i := s.choose(len(items))
	if i < 0 || i >= len(items) {
		i = 0
	}
	return items[i]
}

func inLesson(bucket []domain.MaterialDescriptor, lessonID string) []domain.MaterialDescriptor {
	var out []domain.MaterialDescriptor
	for _, d := range bucket {
		if d.LessonID == lessonID {
			out = append(out, d)
		}
	}
	return out
}
