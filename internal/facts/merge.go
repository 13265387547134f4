// internal/facts/merge.go
package facts

import "estate-pipeline/internal/models"

// Merge reconciles heuristically extracted facts with model-produced ones.
// The extracted side always wins for every field it carries: folder-name
// facts are operator-supplied ground truth, model facts are inferred. The
// model value is only used to fill fields the extractor left nil. This merge
// rule is the single source of truth even when the prompt asked the model to
// repeat the extracted values.
func Merge(extracted, model models.FactBundle) models.FactBundle {
	merged := model

	if extracted.Price != nil {
		merged.Price = extracted.Price
	}
	if extracted.RoomCount != nil {
		merged.RoomCount = extracted.RoomCount
	}
	if extracted.AreaSqm != nil {
		merged.AreaSqm = extracted.AreaSqm
	}
	if extracted.Neighborhood != nil {
		merged.Neighborhood = extracted.Neighborhood
	}
	if extracted.Intent != "" {
		merged.Intent = extracted.Intent
	}
	if merged.Intent == "" {
		merged.Intent = models.IntentSale
	}

	return merged
}

// ApplyToRecord writes the merged bundle onto a content record's listing
// metadata fields.
func ApplyToRecord(record *models.ContentRecord, bundle models.FactBundle) {
	record.Price = bundle.Price
	record.RoomCount = bundle.RoomCount
	record.AreaSqm = bundle.AreaSqm
	record.Neighborhood = bundle.Neighborhood
	record.Intent = string(bundle.Intent)
}
