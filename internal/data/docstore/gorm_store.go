package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/coursechat-backend/internal/domain"
	"github.com/yungbote/coursechat-backend/internal/platform/dbctx"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

var (
	// ErrUnavailable marks connection-level database failures.
	ErrUnavailable = errors.New("docstore unavailable")
	// ErrConflict marks write conflicts (serialization, deadlock).
	ErrConflict = errors.New("docstore conflict")
)

// GormStore keeps documents in the course_documents table (Postgres or SQLite).
type GormStore struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGormStore(db *gorm.DB, baseLog *logger.Logger) *GormStore {
	return &GormStore{db: db, log: baseLog.With("repo", "CourseDocumentStore")}
}

func (s *GormStore) Get(ctx context.Context, key Key) (Record, bool, error) {
	var doc types.CourseDocument
	err := dbctx.Context{Ctx: ctx}.DB(s.db).
		Where("path = ?", string(key)).
		Limit(1).
		Find(&doc).Error
	if err != nil {
		return nil, false, mapGormError("get", err)
	}
	if doc.Path == "" {
		return nil, false, nil
	}
	rec, err := DecodeRecord(doc.Body)
	if err != nil {
		s.log.Warn("stored document body is not an object", "path", key, "error", err)
		return nil, false, err
	}
	return rec, true, nil
}

func (s *GormStore) Put(ctx context.Context, key Key, rec Record) error {
	return s.PutTx(dbctx.Context{Ctx: ctx}, key, rec)
}

// PutTx upserts one document, inside dbc.Tx when set.
func (s *GormStore) PutTx(dbc dbctx.Context, key Key, rec Record) error {
	body, err := rec.Encode()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	doc := types.CourseDocument{
		Path:       string(key),
		Collection: key.Collection(),
		Body:       datatypes.JSON(body),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = dbc.DB(s.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"collection", "body", "updated_at"}),
	}).Create(&doc).Error
	return mapGormError("put", err)
}

// PutMany writes all documents in one transaction.
func (s *GormStore) PutMany(ctx context.Context, docs map[Key]Record) error {
	if len(docs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, rec := range docs {
			if err := s.PutTx(dbctx.Context{Ctx: ctx, Tx: tx}, key, rec); err != nil {
				return fmt.Errorf("put %s: %w", key, err)
			}
		}
		return nil
	})
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mapGormError("ping", err)
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func mapGormError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		code := strings.TrimSpace(pgErr.Code)
		switch {
		case strings.HasPrefix(code, "08"), code == "57P01", code == "53300":
			return errors.Join(ErrUnavailable, fmt.Errorf("docstore %s: %w", op, err))
		case code == "40001", code == "40P01":
			return errors.Join(ErrConflict, fmt.Errorf("docstore %s: %w", op, err))
		}
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return errors.Join(ErrUnavailable, fmt.Errorf("docstore %s: %w", op, err))
	}
	return fmt.Errorf("docstore %s: %w", op, err)
}
