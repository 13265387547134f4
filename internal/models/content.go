// internal/models/content.go
package models

import "time"

// ContentStatus is the publication state of a content record.
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPublished ContentStatus = "published"
	StatusArchived  ContentStatus = "archived"
)

// ContentRecord is the persisted content entity. The pipeline only ever
// inserts new records or updates existing ones by id; it never deletes.
type ContentRecord struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Slug            string        `json:"slug"`
	Body            string        `json:"body"`
	Excerpt         string        `json:"excerpt"`
	MetaDescription string        `json:"metaDescription"`
	Keywords        []string      `json:"keywords"`
	Category        string        `json:"category"`
	Status          ContentStatus `json:"status"`

	// Listing metadata, filled from the merged fact bundle for listing
	// content. Nil/empty for articles.
	Price        *int64  `json:"price,omitempty"`
	RoomCount    *int    `json:"roomCount,omitempty"`
	AreaSqm      *int    `json:"areaSqm,omitempty"`
	Neighborhood *string `json:"neighborhood,omitempty"`
	Intent       string  `json:"intent,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GeneratedContent is the output of a successful provider call. It is never
// partially populated: a response missing any required field is treated as a
// provider failure by the router.
type GeneratedContent struct {
	Title           string   `json:"title"`
	Body            string   `json:"body"`
	Excerpt         string   `json:"excerpt"`
	MetaDescription string   `json:"metaDescription"`
	Keywords        []string `json:"keywords"`

	// Facts the model inferred from the brief. Optional; always loses to
	// heuristically extracted facts on merge.
	Facts FactBundle `json:"facts,omitempty"`
}
