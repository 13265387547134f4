// internal/models/facts.go
package models

// ListingIntent says whether a listing is for sale or for rent.
type ListingIntent string

const (
	IntentSale ListingIntent = "sale"
	IntentRent ListingIntent = "rent"
)

// FactBundle holds structured hints derived from a folder or topic name.
// Every field except Intent is optional; a nil field means the pattern did
// not match, which is not an error. Extracted fields are operator-supplied
// ground truth and always take precedence over model-produced values.
type FactBundle struct {
	Price        *int64        `json:"price,omitempty"`
	RoomCount    *int          `json:"roomCount,omitempty"`
	AreaSqm      *int          `json:"areaSqm,omitempty"`
	Neighborhood *string       `json:"neighborhood,omitempty"`
	Intent       ListingIntent `json:"intent,omitempty"`
}

// Empty reports whether no optional field was extracted.
func (f FactBundle) Empty() bool {
	return f.Price == nil && f.RoomCount == nil && f.AreaSqm == nil && f.Neighborhood == nil
}
