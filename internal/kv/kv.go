// Package kv opens the key-value Store selected by a Config. The store is the
// opaque persistence layer beneath the entity collections; drivers live in
// the subpackages.
package kv

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/coursebook/internal/kv/file"
	"github.com/mesh-intelligence/coursebook/internal/kv/memory"
	"github.com/mesh-intelligence/coursebook/internal/kv/postgres"
	"github.com/mesh-intelligence/coursebook/internal/kv/s3"
	"github.com/mesh-intelligence/coursebook/internal/kv/sqlite"
	"github.com/mesh-intelligence/coursebook/pkg/types"
)

// Open validates cfg and returns the store for cfg.Backend. The caller must
// Close the returned store.
func Open(ctx context.Context, cfg types.Config) (types.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}

	switch cfg.Backend {
	case types.BackendFile:
		return file.New(dataDir)
	case types.BackendSQLite:
		return sqlite.Open(ctx, filepath.Join(dataDir, sqlite.DefaultFileName))
	case types.BackendPostgres:
		return postgres.Open(ctx, cfg.PostgresDSN)
	case types.BackendS3:
		return s3.New(ctx, cfg.S3)
	case types.BackendMemory:
		return memory.New(), nil
	}
	return nil, fmt.Errorf("%w: %s", types.ErrBackendUnknown, cfg.Backend)
}
