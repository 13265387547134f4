// internal/models/request.go
package models

// ContentKind selects the shape of content a generation request asks for.
type ContentKind string

const (
	KindListing ContentKind = "listing"
	KindArticle ContentKind = "article"
	KindQA      ContentKind = "qa"
	KindCustom  ContentKind = "custom"
)

// Constraints bound the generated output.
type Constraints struct {
	TargetWordCount int    `json:"targetWordCount"`
	Locale          string `json:"locale"`
}

// GenerationRequest describes one unit of generation work. It is built per
// item and immutable once dispatched to the provider router.
type GenerationRequest struct {
	Kind        ContentKind       `json:"kind"`
	Topic       string            `json:"topic"`
	Context     map[string]string `json:"context,omitempty"`
	Facts       FactBundle        `json:"facts,omitempty"`
	ImageURLs   []string          `json:"imageUrls,omitempty"`
	Constraints Constraints       `json:"constraints"`
}
