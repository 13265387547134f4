// internal/store/search.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"estate-pipeline/internal/models"
)

// SearchIndexer mirrors persisted content into an Elasticsearch index so
// the site's search can serve it. Documents are keyed by record id, which
// makes indexing idempotent across update passes.
type SearchIndexer struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchIndexer(client *elasticsearch.Client, index string) *SearchIndexer {
	if index == "" {
		index = "contents"
	}
	return &SearchIndexer{client: client, index: index}
}

func (s *SearchIndexer) Index(ctx context.Context, rec *models.ContentRecord) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal content document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: rec.ID,
		Body:       bytes.NewReader(doc),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("index content %s: %w", rec.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index content %s: %s", rec.ID, res.Status())
	}
	return nil
}
