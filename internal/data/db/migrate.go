package db

import (
	"fmt"

	types "github.com/yungbote/coursechat-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&types.CourseDocument{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
