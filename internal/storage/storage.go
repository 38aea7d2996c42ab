// Package storage keeps uploaded resume files, on MinIO or on local disk.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"hireflow/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("object not found")

type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// New builds the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "local":
		return NewLocal(cfg.LocalDir)
	case "minio":
		return NewMinIO(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// ResumeKey places the index-th upload of a screening batch under that batch.
// Only the base name of filename is kept, prefixed with index so uploads
// whose names sanitize alike do not overwrite each other.
func ResumeKey(batchID uuid.UUID, index int, filename string) string {
	return path.Join("resumes", batchID.String(), strconv.Itoa(index)+"-"+SafeName(filename))
}

// SafeName strips directories and characters that are awkward in object keys.
func SafeName(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	base := path.Base(strings.TrimSpace(filename))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	name := strings.TrimLeft(b.String(), ".")
	if name == "" {
		return "resume"
	}
	return name
}
