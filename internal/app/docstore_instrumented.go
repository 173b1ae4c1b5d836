package app

import (
	"context"
	"time"

	"github.com/yungbote/coursechat-backend/internal/data/docstore"
	"github.com/yungbote/coursechat-backend/internal/observability"
)

type instrumentedDocstore struct {
	backend string
	inner   docstore.Store
	metrics *observability.Metrics
}

func instrumentDocstore(backend string, inner docstore.Store, metrics *observability.Metrics) docstore.Store {
	if inner == nil || metrics == nil {
		return inner
	}
	return &instrumentedDocstore{backend: backend, inner: inner, metrics: metrics}
}

func (s *instrumentedDocstore) Get(ctx context.Context, key docstore.Key) (docstore.Record, bool, error) {
	start := time.Now()
	rec, found, err := s.inner.Get(ctx, key)
	status := "hit"
	switch {
	case err != nil:
		status = "error"
	case !found:
		status = "miss"
	}
	s.metrics.ObserveDocstoreOperation(s.backend, "get", status, time.Since(start))
	return rec, found, err
}

func (s *instrumentedDocstore) Put(ctx context.Context, key docstore.Key, rec docstore.Record) error {
	start := time.Now()
	err := s.inner.Put(ctx, key, rec)
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.ObserveDocstoreOperation(s.backend, "put", status, time.Since(start))
	return err
}

func (s *instrumentedDocstore) Close() error { return s.inner.Close() }

// Ping forwards to the wrapped store when it supports health checks.
func (s *instrumentedDocstore) Ping(ctx context.Context) error {
	if p, ok := s.inner.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
