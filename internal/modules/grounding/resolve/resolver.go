package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/coursechat-backend/internal/data/docstore"
	"github.com/yungbote/coursechat-backend/internal/domain"
	"github.com/yungbote/coursechat-backend/internal/modules/grounding/richtext"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

type ProgressChecker interface {
	HasCompletedItem(ctx context.Context, userID, lessonID, docID string) (bool, error)
	HasCompletedAssignment(ctx context.Context, userID, docID string) (bool, error)
}

type Config struct {
	SiteBaseURL string
	// ExcludedChapterMarker flags python chapters hosted outside the course
	// site. Empty disables the check.
	ExcludedChapterMarker string
}

type Resolver struct {
	store    docstore.Store
	progress ProgressChecker
	norm     *richtext.Normalizer
	cfg      Config
	log      *logger.Logger
}

func New(store docstore.Store, progress ProgressChecker, cfg Config, log *logger.Logger) *Resolver {
	cfg.SiteBaseURL = strings.TrimRight(cfg.SiteBaseURL, "/")
	return &Resolver{
		store:    store,
		progress: progress,
		norm:     richtext.NewNormalizer(log),
		cfg:      cfg,
		log:      log.With("service", "ContentResolver"),
	}
}

// Resolve hydrates one descriptor. It returns nil, nil when any document the
// material depends on is missing; errors are store failures only.
func (r *Resolver) Resolve(ctx context.Context, userID string, desc domain.MaterialDescriptor) (*domain.ResolvedMaterial, error) {
	var (
		out *domain.ResolvedMaterial
		err error
	)
	switch desc.Type {
	case domain.MaterialCodeExample:
		out, err = r.codeExample(ctx, userID, desc)
	case domain.MaterialLectureVideo:
		out, err = r.lectureVideo(ctx, userID, desc)
	case domain.MaterialPythonChapter:
		out, err = r.pythonChapter(ctx, userID, desc)
	case domain.MaterialKarelChapter:
		out, err = r.karelChapter(ctx, userID, desc)
	case domain.MaterialAssignment:
		out, err = r.assignment(ctx, userID, desc)
	case domain.MaterialDocumentation:
		out, err = r.documentation(ctx, desc)
	default:
		r.log.Error("invariant violation: unknown material type", "type", desc.Type, "title", desc.Title)
		return nil, nil
	}
	if err != nil || out == nil {
		return nil, err
	}
	out.Title = desc.Title
	out.Type = desc.Type
	return out, nil
}

func (r *Resolver) codeExample(ctx context.Context, userID string, desc domain.MaterialDescriptor) (*domain.ResolvedMaterial, error) {
	assnKey, ok, err := r.lessonItemURL(ctx, desc)
	if err != nil || !ok {
		return nil, err
	}
	prompt, ok, err := r.richDoc(ctx, AssignmentDocKey(assnKey, DocPrompt))
	if err != nil || !ok {
		return nil, err
	}

	content := prompt
	for _, doc := range []string{DocSolution, DocStarterCode} {
		code, found, err := r.richDoc(ctx, AssignmentDocKey(assnKey, doc))
		if err != nil {
			return nil, err
		}
		if found {
			content += "\n\n" + code
			break
		}
	}

	return &domain.ResolvedMaterial{
		Content:      content,
		URL:          r.siteURL("public", "ide", "a", assnKey),
		HasCompleted: r.itemCompleted(ctx, userID, desc),
	}, nil
}

func (r *Resolver) lectureVideo(ctx context.Context, userID string, desc domain.MaterialDescriptor) (*domain.ResolvedMaterial, error) {
	rec, found, err := r.store.Get(ctx, TranscriptKey(desc.LessonID, desc.DocID))
	if err != nil || !found {
		return nil, wrapStore(err, "transcript")
	}
	var segments []struct {
		Text string `json:"text"`
	}
	ok, err := rec.Decode("transcript", &segments)
	if err != nil || !ok {
		r.log.Warn("transcript document without segments", "lesson_id", desc.LessonID, "doc_id", desc.DocID, "error", err)
		return nil, nil
	}
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		texts = append(texts, seg.Text)
	}
	return &domain.ResolvedMaterial{
		Content:      strings.Join(texts, "\n"),
		URL:          r.siteURL("public", "learn", desc.LessonID, desc.DocID),
		HasCompleted: r.itemCompleted(ctx, userID, desc),
	}, nil
}

func (r *Resolver) pythonChapter(ctx context.Context, userID string, desc domain.MaterialDescriptor) (*domain.ResolvedMaterial, error) {
	storedURL, ok, err := r.lessonItemURL(ctx, desc)
	if err != nil || !ok {
		return nil, err
	}
	if r.cfg.ExcludedChapterMarker != "" && strings.Contains(storedURL, r.cfg.ExcludedChapterMarker) {
		r.log.Debug("python chapter hosted externally, skipping", "url", storedURL)
		return nil, nil
	}
	file := storedURL
	if i := strings.LastIndex(storedURL, "/"); i >= 0 {
		file = storedURL[i+1:]
	}
	if file == "" {
		return nil, nil
	}
	content, ok, err := r.richDoc(ctx, TextbookChapterKey(file))
	if err != nil || !ok {
		return nil, err
	}
	return &domain.ResolvedMaterial{
		Content:      content,
		URL:          r.siteURL("public", "textbook", file),
		HasCompleted: r.itemCompleted(ctx, userID, desc),
	}, nil
}

func (r *Resolver) karelChapter(ctx context.Context, userID string, desc domain.MaterialDescriptor) (*domain.ResolvedMaterial, error) {
	rec, found, err := r.store.Get(ctx, KarelChapterKey(desc.DocID))
	if err != nil || !found {
		return nil, wrapStore(err, "karel chapter")
	}
	content, _ := rec.String("content")
	var url *string
	if u, ok := rec.String("url"); ok {
		url = &u
	}
	return &domain.ResolvedMaterial{
		Content:      content,
		URL:          url,
		HasCompleted: r.itemCompleted(ctx, userID, desc),
	}, nil
}

func (r *Resolver) assignment(ctx context.Context, userID string, desc domain.MaterialDescriptor) (*domain.ResolvedMaterial, error) {
	content, ok, err := r.richDoc(ctx, AssignmentDocKey(desc.DocID, DocPrompt))
	if err != nil || !ok {
		return nil, err
	}
	done, err := r.progress.HasCompletedAssignment(ctx, userID, desc.DocID)
	if err != nil {
		r.log.Warn("assignment progress lookup failed", "doc_id", desc.DocID, "error", err)
		done = false
	}
	return &domain.ResolvedMaterial{
		Content:      content,
		URL:          r.siteURL("public", "ide", "a", desc.DocID),
		HasCompleted: done,
	}, nil
}

// documentation uses the descriptor's lesson id as the library key.
func (r *Resolver) documentation(ctx context.Context, desc domain.MaterialDescriptor) (*domain.ResolvedMaterial, error) {
	content, ok, err := r.richDoc(ctx, LibraryDocKey(desc.LessonID))
	if err != nil || !ok {
		return nil, err
	}
	return &domain.ResolvedMaterial{Content: content, URL: nil, HasCompleted: true}, nil
}

// lessonItemURL follows the lesson-item pointer and returns its "url" field.
func (r *Resolver) lessonItemURL(ctx context.Context, desc domain.MaterialDescriptor) (string, bool, error) {
	rec, found, err := r.store.Get(ctx, LessonItemKey(desc.LessonID, desc.DocID))
	if err != nil || !found {
		return "", false, wrapStore(err, "lesson item")
	}
	url, ok := rec.String("url")
	if !ok || url == "" {
		r.log.Warn("lesson item without url", "lesson_id", desc.LessonID, "doc_id", desc.DocID)
		return "", false, nil
	}
	return url, true, nil
}

// richDoc fetches a document and normalizes its "content" tree.
func (r *Resolver) richDoc(ctx context.Context, key docstore.Key) (string, bool, error) {
	rec, found, err := r.store.Get(ctx, key)
	if err != nil || !found {
		return "", false, wrapStore(err, string(key))
	}
	return r.norm.NormalizeJSON(rec.Raw("content")), true, nil
}

func (r *Resolver) itemCompleted(ctx context.Context, userID string, desc domain.MaterialDescriptor) bool {
	done, err := r.progress.HasCompletedItem(ctx, userID, desc.LessonID, desc.DocID)
	if err != nil {
		r.log.Warn("item progress lookup failed", "lesson_id", desc.LessonID, "doc_id", desc.DocID, "error", err)
		return false
	}
	return done
}

func (r *Resolver) siteURL(segments ...string) *string {
	u := r.cfg.SiteBaseURL + "/" + strings.Join(segments, "/")
	return &u
}

func wrapStore(err error, what string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("fetch %s: %w", what, err)
}
