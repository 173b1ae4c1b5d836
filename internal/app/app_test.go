package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yungbote/coursechat-backend/internal/data/docstore"
	"github.com/yungbote/coursechat-backend/internal/observability"
	"github.com/yungbote/coursechat-backend/internal/platform/llm"
	"github.com/yungbote/coursechat-backend/internal/platform/logger"
)

type stubProvider struct{}

func (stubProvider) Name() string { return "stub" }

func (stubProvider) Chat(_ context.Context, req llm.Request) (string, error) {
	if req.JSONMode {
		return `{"shouldReference": false}`, nil
	}
	return "Ask maron about it.", nil
}

func TestOpenDocstoreBackends(t *testing.T) {
	log := logger.NewNop()
	dir := t.TempDir()
	cases := []struct {
		name string
		cfg  Config
	}{
		{name: "memory", cfg: Config{DocstoreBackend: DocstoreMemory}},
		{name: "sqlite", cfg: Config{DocstoreBackend: DocstoreSQLite, SQLitePath: ":memory:", AutoMigrate: true}},
		{name: "bolt", cfg: Config{DocstoreBackend: DocstoreBolt, BoltPath: filepath.Join(dir, "docs.bolt")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			store, err := OpenDocstore(ctx, tc.cfg, log)
			if err != nil {
				t.Fatalf("OpenDocstore: %v", err)
			}
			defer store.Close()

			rec, _ := docstore.NewRecord(map[string]any{"content": "hello"})
			key := docstore.Path("docs", "a")
			if err := store.Put(ctx, key, rec); err != nil {
				t.Fatalf("Put: %v", err)
			}
			got, found, err := store.Get(ctx, key)
			if err != nil || !found {
				t.Fatalf("Get found=%v err=%v", found, err)
			}
			if content, _ := got.String("content"); content != "hello" {
				t.Fatalf("content=%q", content)
			}
		})
	}

	if _, err := OpenDocstore(context.Background(), Config{DocstoreBackend: "mongo"}, log); err == nil {
		t.Fatalf("unknown backend should fail")
	}
}

func TestInstrumentedDocstoreCountsOperations(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "true")
	metrics := observability.Init(nil)
	if metrics == nil {
		t.Fatalf("metrics not initialized")
	}
	store := instrumentDocstore("memory", docstore.NewMemoryStore(), metrics)
	ctx := context.Background()
	_, _, _ = store.Get(ctx, docstore.Path("missing"))
	rec, _ := docstore.NewRecord(map[string]any{"x": 1})
	_ = store.Put(ctx, docstore.Path("present"), rec)

	var b strings.Builder
	if err := metrics.WritePrometheus(&b); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	for _, want := range []string{
		`cc_docstore_operations_total{backend="memory",operation="get",status="miss"}`,
		`cc_docstore_operations_total{backend="memory",operation="put",status="success"}`,
	} {
		if !strings.Contains(b.String(), want) {
			t.Fatalf("metrics missing %s", want)
		}
	}
	if instrumentDocstore("memory", nil, metrics) != nil {
		t.Fatalf("nil store should stay nil")
	}
}

func TestAppServesGroundedChat(t *testing.T) {
	t.Setenv("DOCSTORE_BACKEND", DocstoreMemory)
	t.Setenv("OTEL_ENABLED", "false")
	ctx := context.Background()
	a, err := New(ctx, logger.NewNop(), stubProvider{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close(ctx)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/grounded", strings.NewReader(
		`{"user_id": "u1", "messages": [{"role": "user", "content": "what is a loop?"}], "lesson_id": "control-flow"}`,
	))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Ask Mehran about it.") {
		t.Fatalf("name correction not applied: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readycheck", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("readycheck status=%d", rec.Code)
	}
}
