// internal/models/batch.go
package models

// BatchResult is the aggregate outcome of one batch run and the only
// externally observable contract of it. Callers must not assume anything
// about which groups succeeded beyond these counts.
type BatchResult struct {
	Message string `json:"message"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
	Errors  int    `json:"errors"`
	Total   int    `json:"total"`
}

// ItemState tracks one batch item through its pipeline stages.
type ItemState string

const (
	StatePending     ItemState = "pending"
	StateExtracting  ItemState = "extracting"
	StateGenerating  ItemState = "generating"
	StateReconciling ItemState = "reconciling"
	StateSlugging    ItemState = "slugging"
	StatePersisting  ItemState = "persisting"
	StateDone        ItemState = "done"
	StateFailed      ItemState = "failed"
)
