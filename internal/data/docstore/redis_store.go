package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

// RedisStore keeps each document as a JSON string under prefix+path.
type RedisStore struct {
	rdb    *goredis.Client
	prefix string
	log    *logger.Logger
}

func NewRedisStore(ctx context.Context, addr, prefix string, log *logger.Logger) (*RedisStore, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStoreWithClient(rdb, prefix, log), nil
}

func NewRedisStoreWithClient(rdb *goredis.Client, prefix string, log *logger.Logger) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix, log: log.With("service", "RedisDocStore")}
}

func (s *RedisStore) key(k Key) string { return s.prefix + string(k) }

func (s *RedisStore) Get(ctx context.Context, key Key) (Record, bool, error) {
	body, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	rec, err := DecodeRecord(body)
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key Key, rec Record) error {
	body, err := rec.Encode()
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.key(key), body, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error { return s.rdb.Ping(ctx).Err() }

func (s *RedisStore) Close() error { return s.rdb.Close() }
