// internal/storage/storage_test.go
package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-pipeline/internal/common/config"
	"estate-pipeline/internal/common/logger"
)

func strptr(s string) *string { return &s }

func TestBucketListerSinglePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/list/media", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "secret", r.Header.Get("apikey"))

		var req listRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "listings", req.Prefix)
		assert.Equal(t, "name", req.SortBy.Column)

		json.NewEncoder(w).Encode([]Entry{
			{Name: "yali-mahallesi-2+1-850000"},
			{ID: strptr("f1"), Name: "cover.jpg"},
		})
	}))
	defer server.Close()

	lister := NewBucketLister(config.StorageConfig{
		Mode:     "bucket",
		BaseURL:  server.URL,
		Bucket:   "media",
		APIKey:   "secret",
		PageSize: 100,
	}, logger.NewNop())

	entries, err := lister.List(context.Background(), "listings")

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].IsFolder())
	assert.False(t, entries[1].IsFolder())
}

func TestBucketListerPaginates(t *testing.T) {
	var offsets []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req listRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		offsets = append(offsets, req.Offset)

		// Full first page, short second page.
		if req.Offset == 0 {
			json.NewEncoder(w).Encode([]Entry{
				{ID: strptr("a"), Name: "a.jpg"},
				{ID: strptr("b"), Name: "b.jpg"},
			})
			return
		}
		json.NewEncoder(w).Encode([]Entry{{ID: strptr("c"), Name: "c.jpg"}})
	}))
	defer server.Close()

	lister := NewBucketLister(config.StorageConfig{
		BaseURL:  server.URL,
		Bucket:   "media",
		PageSize: 2,
	}, logger.NewNop())

	entries, err := lister.List(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, []int{0, 2}, offsets)
}

func TestBucketListerErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	lister := NewBucketLister(config.StorageConfig{BaseURL: server.URL, Bucket: "media"}, logger.NewNop())

	_, err := lister.List(context.Background(), "listings")
	require.Error(t, err)
}

func TestBucketListerPublicURL(t *testing.T) {
	lister := NewBucketLister(config.StorageConfig{
		BaseURL: "https://cdn.example.com/",
		Bucket:  "media",
	}, logger.NewNop())

	url := lister.PublicURL("listings/yali/cover.jpg")
	assert.Equal(t, "https://cdn.example.com/storage/v1/object/public/media/listings/yali/cover.jpg", url)
}

func TestLocalListerFoldersAndFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "listings", "yali-mahallesi-2+1-850000"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "listings", "notes.txt"), []byte("x"), 0o644))

	lister := NewLocalLister(root, "https://cdn.example.com")

	entries, err := lister.List(context.Background(), "listings")

	require.NoError(t, err)
	require.Len(t, entries, 2)

	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	assert.True(t, byName["yali-mahallesi-2+1-850000"].IsFolder())
	assert.False(t, byName["notes.txt"].IsFolder())
}

func TestLocalListerMissingDir(t *testing.T) {
	lister := NewLocalLister(t.TempDir(), "")

	_, err := lister.List(context.Background(), "does-not-exist")
	require.Error(t, err)
}

func TestLocalListerPublicURL(t *testing.T) {
	lister := NewLocalLister("/srv/media", "https://cdn.example.com")
	assert.Equal(t, "https://cdn.example.com/listings/a.jpg", lister.PublicURL("listings/a.jpg"))

	bare := NewLocalLister("/srv/media", "")
	assert.Equal(t, filepath.Join("/srv/media", "listings/a.jpg"), bare.PublicURL("listings/a.jpg"))
}

func TestNewListerModeSelection(t *testing.T) {
	bucket, err := NewLister(config.StorageConfig{Mode: "bucket", BaseURL: "http://x", Bucket: "m"}, logger.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &BucketLister{}, bucket)

	local, err := NewLister(config.StorageConfig{Mode: "local", RootDir: t.TempDir()}, logger.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LocalLister{}, local)

	_, err = NewLister(config.StorageConfig{Mode: "ftp"}, logger.NewNop())
	require.Error(t, err)
}
