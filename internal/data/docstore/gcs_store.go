package docstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

// GCSStore reads documents exported as JSON objects named
// "{prefix}{path}.json" in one bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string
	log    *logger.Logger
}

func NewGCSStore(client *storage.Client, bucket, prefix string, log *logger.Logger) (*GCSStore, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, fmt.Errorf("missing env var DOCSTORE_GCS_BUCKET")
	}
	return &GCSStore{
		client: client,
		bucket: bucket,
		prefix: strings.TrimLeft(prefix, "/"),
		log:    log.With("service", "GCSDocStore"),
	}, nil
}

func (s *GCSStore) object(key Key) string {
	return s.prefix + string(key) + ".json"
}

func (s *GCSStore) Get(ctx context.Context, key Key) (Record, bool, error) {
	r, err := s.client.Bucket(s.bucket).Object(s.object(key)).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("gcs read %s: %w", key, err)
	}
	defer r.Close()

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, false, fmt.Errorf("gcs read %s: %w", key, err)
	}
	rec, err := DecodeRecord(body)
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

func (s *GCSStore) Put(ctx context.Context, key Key, rec Record) error {
	body, err := rec.Encode()
	if err != nil {
		return err
	}
	w := s.client.Bucket(s.bucket).Object(s.object(key)).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs write %s: %w", key, err)
	}
	return nil
}

// Ping checks that the bucket exists and is readable.
func (s *GCSStore) Ping(ctx context.Context) error {
	if _, err := s.client.Bucket(s.bucket).Attrs(ctx); err != nil {
		return fmt.Errorf("gcs bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *GCSStore) Close() error { return s.client.Close() }
