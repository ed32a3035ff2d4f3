// Package storage abstracts where uploaded media lives.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"instaclone/internal/config"

	"github.com/google/uuid"
)

// Store saves and deletes media payloads by key.
//
// Delete is benign on a missing key: a reaped story whose file is already
// gone must not fail the reaper pass.
type Store interface {
	Save(ctx context.Context, key string, contentType string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// NewStore builds the configured backend.
func NewStore(cfg *config.Config) (Store, error) {
	switch cfg.StorageBackend {
	case "s3":
		return NewS3Store(cfg)
	case "disk":
		return NewDiskStore(cfg.UploadDir), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// NewKey generates a collision-free storage key preserving the original
// file extension.
func NewKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.New().String() + ext
}

// AllowedExtension reports whether the upload extension is an accepted
// image type.
func AllowedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	}
	return false
}
