// internal/storage/bucket.go
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"estate-pipeline/internal/common/config"
	commonerrors "estate-pipeline/internal/common/errors"
	"estate-pipeline/internal/common/httpclient"
	"estate-pipeline/internal/common/logger"
)

// listRequest is the hosted bucket's listing body.
type listRequest struct {
	Prefix string   `json:"prefix"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
	SortBy listSort `json:"sortBy"`
}

type listSort struct {
	Column string `json:"column"`
	Order  string `json:"order"`
}

// BucketLister lists a hosted object-storage bucket over its REST API.
type BucketLister struct {
	httpClient *httpclient.Client
	baseURL    string
	bucket     string
	apiKey     string
	pageSize   int
	logger     logger.Logger
}

func NewBucketLister(cfg config.StorageConfig, log logger.Logger) *BucketLister {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	return &BucketLister{
		httpClient: httpclient.NewClient(30 * time.Second),
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		bucket:     cfg.Bucket,
		apiKey:     cfg.APIKey,
		pageSize:   pageSize,
		logger:     log.WithFields(map[string]interface{}{"storage": "bucket"}),
	}
}

// List enumerates one level under path, paging until the service returns a
// short page.
func (l *BucketLister) List(ctx context.Context, path string) ([]Entry, error) {
	var entries []Entry
	offset := 0
	for {
		page, err := l.listPage(ctx, path, offset)
		if err != nil {
			return nil, err
		}
		entries = append(entries, page...)
		if len(page) < l.pageSize {
			return entries, nil
		}
		offset += l.pageSize
	}
}

func (l *BucketLister) listPage(ctx context.Context, path string, offset int) ([]Entry, error) {
	body, err := json.Marshal(listRequest{
		Prefix: path,
		Limit:  l.pageSize,
		Offset: offset,
		SortBy: listSort{Column: "name", Order: "asc"},
	})
	if err != nil {
		return nil, commonerrors.NewStorageListFailedError(path, err)
	}

	url := fmt.Sprintf("%s/storage/v1/object/list/%s", l.baseURL, l.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, commonerrors.NewStorageListFailedError(path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if l.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+l.apiKey)
		req.Header.Set("apikey", l.apiKey)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, commonerrors.NewStorageListFailedError(path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, commonerrors.NewStorageListFailedError(path, err)
	}
	if resp.StatusCode != http.StatusOK {
		l.logger.Warn("bucket list returned non-200", map[string]interface{}{
			"path":   path,
			"status": resp.StatusCode,
		})
		return nil, commonerrors.NewStorageListFailedError(path, fmt.Errorf("status %d", resp.StatusCode))
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, commonerrors.NewStorageListFailedError(path, err)
	}
	return entries, nil
}

// PublicURL resolves the public access URL of an object.
func (l *BucketLister) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", l.baseURL, l.bucket, path)
}
