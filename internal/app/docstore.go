package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/coursechat-backend/internal/data/db"
	"github.com/yungbote/coursechat-backend/internal/data/docstore"
	"github.com/yungbote/coursechat-backend/internal/platform/gcp"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

// OpenDocstore builds the document store selected by DOCSTORE_BACKEND.
func OpenDocstore(ctx context.Context, cfg Config, log *logger.Logger) (docstore.Store, error) {
	switch cfg.DocstoreBackend {
	case DocstoreMemory, "":
		log.Warn("using in-memory document store; contents are lost on restart")
		return docstore.NewMemoryStore(), nil

	case DocstorePostgres, DocstoreSQLite:
		var (
			gdb *gorm.DB
			err error
		)
		if cfg.DocstoreBackend == DocstorePostgres {
			gdb, err = db.OpenPostgres(cfg.Postgres, log)
		} else {
			gdb, err = db.OpenSQLite(cfg.SQLitePath, log)
		}
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", cfg.DocstoreBackend, err)
		}
		if cfg.AutoMigrate {
			if err := db.AutoMigrateAll(gdb); err != nil {
				return nil, fmt.Errorf("%s automigrate: %w", cfg.DocstoreBackend, err)
			}
		}
		return docstore.NewGormStore(gdb, log), nil

	case DocstoreRedis:
		store, err := docstore.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisKeyPrefix, log)
		if err != nil {
			return nil, err
		}
		return store, nil

	case DocstoreBolt:
		store, err := docstore.NewBoltStore(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		return store, nil

	case DocstoreGCS:
		client, err := gcp.NewStorageClient(ctx, cfg.GCSEmulatorHost)
		if err != nil {
			return nil, fmt.Errorf("gcs client: %w", err)
		}
		store, err := docstore.NewGCSStore(client, cfg.GCSBucket, cfg.GCSPrefix, log)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown DOCSTORE_BACKEND %q", cfg.DocstoreBackend)
}
