// internal/storage/local.go
package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	commonerrors "estate-pipeline/internal/common/errors"
)

// LocalLister serves the listing contract from a directory tree. It exists
// for development and for on-prem deployments without a hosted bucket.
type LocalLister struct {
	rootDir string
	baseURL string
}

func NewLocalLister(rootDir, baseURL string) *LocalLister {
	return &LocalLister{
		rootDir: rootDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// List enumerates one directory level. Subdirectories come back with a nil
// ID, matching the hosted bucket's folder marker.
func (l *LocalLister) List(_ context.Context, path string) ([]Entry, error) {
	dir := filepath.Join(l.rootDir, filepath.FromSlash(path))
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, commonerrors.NewStorageListFailedError(path, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			entries = append(entries, Entry{Name: de.Name()})
			continue
		}
		id := uuid.NewString()
		entries = append(entries, Entry{ID: &id, Name: de.Name()})
	}
	return entries, nil
}

// PublicURL maps a relative object path onto the configured base URL, or
// onto the filesystem when no base URL is set.
func (l *LocalLister) PublicURL(path string) string {
	if l.baseURL == "" {
		return filepath.Join(l.rootDir, filepath.FromSlash(path))
	}
	return l.baseURL + "/" + strings.TrimPrefix(path, "/")
}
