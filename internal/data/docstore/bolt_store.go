package docstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

// BoltStore is a single-file embedded store. Each top-level collection is a
// bucket keyed by the remainder of the path.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}
	return &BoltStore{db: db}, nil
}

func splitKey(key Key) (bucket, rest []byte) {
	s := string(key)
	i := strings.IndexByte(s, '/')
	if i < 0 {
		return []byte(s), []byte{}
	}
	return []byte(s[:i]), []byte(s[i+1:])
}

func (s *BoltStore) Get(ctx context.Context, key Key) (Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	bucket, rest := splitKey(key)
	var rec Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		data := b.Get(rest)
		if data == nil {
			return nil
		}
		decoded, err := DecodeRecord(data)
		if err != nil {
			return err
		}
		rec = decoded
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return rec, rec != nil, nil
}

func (s *BoltStore) Put(ctx context.Context, key Key, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := rec.Encode()
	if err != nil {
		return err
	}
	bucket, rest := splitKey(key)
	if len(bucket) == 0 || len(rest) == 0 {
		return fmt.Errorf("bolt key %q needs a collection and a document path", key)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}
		return b.Put(rest, body)
	})
}

func (s *BoltStore) Close() error { return s.db.Close() }
