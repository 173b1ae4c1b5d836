package catalog

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/coursechat-backend/internal/domain"
)

const CatalogPathEnv = "COURSE_CATALOG_PATH"

// InvalidLesson is returned by LessonIndex for ids outside the outline.
const InvalidLesson = -1

//go:embed default_course.yaml
var defaultCourseFS embed.FS

// NameCorrection rewrites a whole word (case-insensitive) in model output.
type NameCorrection struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Course is the on-disk shape of the course reference data.
type Course struct {
	Course                string                      `yaml:"course"`
	SiteBaseURL           string                      `yaml:"site_base_url"`
	CourseRun             string                      `yaml:"course_run"`
	ExcludedChapterMarker string                      `yaml:"excluded_chapter_marker"`
	NameCorrections       []NameCorrection            `yaml:"name_corrections"`
	Lessons               []string                    `yaml:"lessons"`
	Concepts              []string                    `yaml:"concepts"`
	Materials             []domain.MaterialDescriptor `yaml:"materials"`
}

// Catalog is the immutable material table plus lesson outline. It is built
// once at startup and shared read-only by the selector and resolver.
type Catalog struct {
	course      Course
	lessonIndex map[string]int
}

// Load reads COURSE_CATALOG_PATH when set, otherwise the embedded default.
func Load() (*Catalog, error) {
	data, err := readCourse()
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func readCourse() ([]byte, error) {
	if path := strings.TrimSpace(os.Getenv(CatalogPathEnv)); path != "" {
		return os.ReadFile(path)
	}
	return defaultCourseFS.ReadFile("default_course.yaml")
}

func Parse(data []byte) (*Catalog, error) {
	var c Course
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse course catalog: %w", err)
	}
	return New(c)
}

func New(c Course) (*Catalog, error) {
	if err := validateCourse(&c); err != nil {
		return nil, err
	}
	idx := make(map[string]int, len(c.Lessons))
	for i, id := range c.Lessons {
		idx[id] = i
	}
	c.SiteBaseURL = strings.TrimRight(c.SiteBaseURL, "/")
	return &Catalog{course: c, lessonIndex: idx}, nil
}

func validateCourse(c *Course) error {
	if len(c.Lessons) == 0 {
		return errors.New("course catalog: no lessons defined")
	}
	seen := map[string]bool{}
	for _, id := range c.Lessons {
		if strings.TrimSpace(id) == "" {
			return errors.New("course catalog: empty lesson id")
		}
		if seen[id] {
			return fmt.Errorf("course catalog: duplicate lesson id: %s", id)
		}
		seen[id] = true
	}
	for i, m := range c.Materials {
		if !m.Type.Valid() {
			return fmt.Errorf("course catalog: material %d (%q) has unknown type %q", i, m.Title, m.Type)
		}
		if m.Type != domain.MaterialDocumentation && m.Type != domain.MaterialAssignment && m.Type != domain.MaterialKarelChapter && m.LessonID == "" {
			return fmt.Errorf("course catalog: material %d (%q) needs a lesson_id", i, m.Title)
		}
	}
	for i, nc := range c.NameCorrections {
		if strings.TrimSpace(nc.From) == "" {
			return fmt.Errorf("course catalog: name correction %d has empty from", i)
		}
	}
	return nil
}

// Lookup returns every descriptor whose type and tag match exactly.
func (c *Catalog) Lookup(t domain.MaterialType, concept string) []domain.MaterialDescriptor {
	out := []domain.MaterialDescriptor{}
	for _, m := range c.course.Materials {
		if m.Type == t && m.Tags == concept {
			out = append(out, m)
		}
	}
	return out
}

func (c *Catalog) LessonIndex(lessonID string) int {
	if i, ok := c.lessonIndex[lessonID]; ok {
		return i
	}
	return InvalidLesson
}

func (c *Catalog) LessonAt(index int) (string, bool) {
	if index < 0 || index >= len(c.course.Lessons) {
		return "", false
	}
	return c.course.Lessons[index], true
}

func (c *Catalog) LessonCount() int { return len(c.course.Lessons) }

func (c *Catalog) Concepts() []string {
	return append([]string(nil), c.course.Concepts...)
}

func (c *Catalog) MaterialTypes() []domain.MaterialType {
	return append([]domain.MaterialType(nil), domain.AllMaterialTypes...)
}

func (c *Catalog) Materials() []domain.MaterialDescriptor {
	return append([]domain.MaterialDescriptor(nil), c.course.Materials...)
}

func (c *Catalog) CourseName() string            { return c.course.Course }
func (c *Catalog) SiteBaseURL() string           { return c.course.SiteBaseURL }
func (c *Catalog) CourseRun() string             { return c.course.CourseRun }
func (c *Catalog) ExcludedChapterMarker() string { return c.course.ExcludedChapterMarker }

func (c *Catalog) NameCorrections() []NameCorrection {
	return append([]NameCorrection(nil), c.course.NameCorrections...)
}
