// internal/storage/storage.go

// Package storage lists the media tree the pipeline feeds on. Two listers
// exist: a hosted-bucket client and a local filesystem walker, selected by
// configuration. Both present the same flat-listing contract: an entry
// without an ID is a folder, an entry with one is a file.
package storage

import (
	"context"
	"fmt"

	"estate-pipeline/internal/common/config"
	"estate-pipeline/internal/common/logger"
)

// Entry is one storage listing row. ID is nil for folders.
type Entry struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// IsFolder reports whether the entry denotes a folder rather than a file.
func (e Entry) IsFolder() bool { return e.ID == nil }

// Lister enumerates one level of the storage tree and resolves public URLs.
type Lister interface {
	List(ctx context.Context, path string) ([]Entry, error)
	PublicURL(path string) string
}

// NewLister selects a lister from configuration.
func NewLister(cfg config.StorageConfig, log logger.Logger) (Lister, error) {
	switch cfg.Mode {
	case "bucket":
		return NewBucketLister(cfg, log), nil
	case "local":
		return NewLocalLister(cfg.RootDir, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown storage mode %q", cfg.Mode)
	}
}
