// internal/store/content.go

// Package store persists content records in PostgreSQL and mirrors them
// into Elasticsearch for search. The mirror is best-effort: an indexing
// failure is logged, never surfaced, since Postgres remains the source of
// truth.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	commonerrors "estate-pipeline/internal/common/errors"
	"estate-pipeline/internal/common/logger"
	"estate-pipeline/internal/models"
)

// ContentStore reads and writes content records. Slug carries a unique
// constraint; the pipeline resolves collisions before insert, so a
// constraint violation here is a real bug, not an expected path.
type ContentStore struct {
	db     *sql.DB
	search *SearchIndexer
	logger logger.Logger
}

// NewContentStore creates a ContentStore. search may be nil to disable the
// Elasticsearch mirror.
func NewContentStore(db *sql.DB, search *SearchIndexer, log logger.Logger) *ContentStore {
	return &ContentStore{db: db, search: search, logger: log}
}

// FindBySlug returns the record with the given slug, or nil when none
// exists.
func (s *ContentStore) FindBySlug(ctx context.Context, slug string) (*models.ContentRecord, error) {
	const query = `
		SELECT id, title, slug, body, excerpt, meta_description, keywords,
		       category, status, price, room_count, area_sqm, neighborhood,
		       intent, created_at, updated_at
		FROM contents
		WHERE slug = $1`

	var rec models.ContentRecord
	var intent sql.NullString
	err := s.db.QueryRowContext(ctx, query, slug).Scan(
		&rec.ID, &rec.Title, &rec.Slug, &rec.Body, &rec.Excerpt,
		&rec.MetaDescription, pq.Array(&rec.Keywords), &rec.Category,
		&rec.Status, &rec.Price, &rec.RoomCount, &rec.AreaSqm,
		&rec.Neighborhood, &intent, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, commonerrors.NewSlugLookupFailedError(slug, err)
	}
	rec.Intent = intent.String
	return &rec, nil
}

// Insert stores a new record and returns its id. CreatedAt/UpdatedAt are
// set here, not by the caller.
func (s *ContentStore) Insert(ctx context.Context, rec *models.ContentRecord) (string, error) {
	const query = `
		INSERT INTO contents (
			id, title, slug, body, excerpt, meta_description, keywords,
			category, status, price, room_count, area_sqm, neighborhood,
			intent, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.Title, rec.Slug, rec.Body, rec.Excerpt,
		rec.MetaDescription, pq.Array(rec.Keywords), rec.Category,
		rec.Status, rec.Price, rec.RoomCount, rec.AreaSqm,
		rec.Neighborhood, nullable(rec.Intent), rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return "", commonerrors.NewDatabaseInsertFailedError(err)
	}

	s.mirror(ctx, rec)
	return rec.ID, nil
}

// Update replaces the mutable fields of an existing record. Used by the
// improvement pass; identity fields (id, slug, created_at) never change.
func (s *ContentStore) Update(ctx context.Context, id string, rec *models.ContentRecord) error {
	const query = `
		UPDATE contents
		SET title = $2, body = $3, excerpt = $4, meta_description = $5,
		    keywords = $6, status = $7, updated_at = $8
		WHERE id = $1`

	rec.UpdatedAt = time.Now().UTC()
	result, err := s.db.ExecContext(ctx, query,
		id, rec.Title, rec.Body, rec.Excerpt, rec.MetaDescription,
		pq.Array(rec.Keywords), rec.Status, rec.UpdatedAt,
	)
	if err != nil {
		return commonerrors.NewDatabaseUpdateFailedError(id, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return commonerrors.NewDatabaseUpdateFailedError(id, sql.ErrNoRows)
	}

	rec.ID = id
	s.mirror(ctx, rec)
	return nil
}

func (s *ContentStore) mirror(ctx context.Context, rec *models.ContentRecord) {
	if s.search == nil {
		return
	}
	if err := s.search.Index(ctx, rec); err != nil {
		s.logger.WithError(err).Warn("search mirror indexing failed", map[string]interface{}{
			"id":   rec.ID,
			"slug": rec.Slug,
		})
	}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
