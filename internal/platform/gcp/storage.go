package gcp

import (
	"context"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewStorageClient returns a GCS client. A non-empty emulatorHost
// (fake-gcs-server style) disables authentication.
func NewStorageClient(ctx context.Context, emulatorHost string) (*storage.Client, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(emulatorHost), "/")
	if endpoint != "" {
		_ = os.Setenv("STORAGE_EMULATOR_HOST", endpoint)
		return storage.NewClient(ctx, option.WithoutAuthentication())
	}
	opts := ClientOptionsFromEnv()
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	return storage.NewClient(ctx, opts...)
}
