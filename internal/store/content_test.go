// internal/store/content_test.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-pipeline/internal/common/logger"
	"estate-pipeline/internal/models"
)

func newMockStore(t *testing.T) (*ContentStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContentStore(db, nil, logger.NewNop()), mock
}

func contentColumns() []string {
	return []string{
		"id", "title", "slug", "body", "excerpt", "meta_description",
		"keywords", "category", "status", "price", "room_count",
		"area_sqm", "neighborhood", "intent", "created_at", "updated_at",
	}
}

func TestFindBySlugFound(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM contents").
		WithArgs("modern-daire-ilan").
		WillReturnRows(sqlmock.NewRows(contentColumns()).AddRow(
			"id-1", "Modern Daire", "modern-daire-ilan", "Metin", "Özet",
			"Açıklama", "{emlak}", "listing", "published",
			int64(850000), 2, 95, "yali", "sale", now, now,
		))

	rec, err := s.FindBySlug(context.Background(), "modern-daire-ilan")

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "id-1", rec.ID)
	assert.Equal(t, "modern-daire-ilan", rec.Slug)
	require.NotNil(t, rec.Price)
	assert.Equal(t, int64(850000), *rec.Price)
	assert.Equal(t, "sale", rec.Intent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindBySlugMissingReturnsNil(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM contents").
		WithArgs("yok-bu-slug").
		WillReturnError(sql.ErrNoRows)

	rec, err := s.FindBySlug(context.Background(), "yok-bu-slug")

	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindBySlugQueryError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM contents").
		WithArgs("x").
		WillReturnError(errors.New("connection reset"))

	_, err := s.FindBySlug(context.Background(), "x")
	require.Error(t, err)
}

func TestInsertAssignsIDAndTimestamps(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO contents").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := &models.ContentRecord{
		Title:           "Yalı Mahallesi'nde Satılık 2+1 Daire",
		Slug:            "yali-mahallesinde-satilik-2-1-daire",
		Body:            "Metin",
		Excerpt:         "Özet",
		MetaDescription: "Açıklama",
		Keywords:        []string{"emlak"},
		Category:        "listing",
		Status:          models.StatusPublished,
	}

	id, err := s.Insert(context.Background(), rec)

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertFailure(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO contents").
		WillReturnError(errors.New("unique_violation"))

	_, err := s.Insert(context.Background(), &models.ContentRecord{Slug: "s"})
	require.Error(t, err)
}

func TestUpdateBumpsUpdatedAt(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("UPDATE contents").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := &models.ContentRecord{Title: "Yeni Başlık", Body: "Yeni metin"}
	err := s.Update(context.Background(), "id-1", rec)

	require.NoError(t, err)
	assert.Equal(t, "id-1", rec.ID)
	assert.False(t, rec.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingRow(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("UPDATE contents").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Update(context.Background(), "ghost", &models.ContentRecord{})
	require.Error(t, err)
}
