package documents

import (
	"time"

	"gorm.io/datatypes"
)

// CourseDocument is one stored course record addressed by its slash path,
// e.g. "assns/public/assignments/diceRoll/docs/prompt".
type CourseDocument struct {
	Path       string         `gorm:"column:path;primaryKey" json:"path"`
	Collection string         `gorm:"column:collection;index" json:"collection"`
	Body       datatypes.JSON `gorm:"column:body;not null" json:"body"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (CourseDocument) TableName() string { return "course_documents" }
