// internal/models/improvement.go
package models

// Change records a single modification the improvement engine applied.
type Change struct {
	Type     string `json:"type"`
	Original string `json:"original,omitempty"`
	Improved string `json:"improved"`
	Reason   string `json:"reason"`
}

// ScoreDelta compares quality before and after an improvement attempt.
// Improvement may be zero or negative, in which case the caller must keep
// the original text.
type ScoreDelta struct {
	Before      int `json:"before"`
	After       int `json:"after"`
	Improvement int `json:"improvement"`
}

// ImprovementResult is the outcome of one improvement attempt.
type ImprovementResult struct {
	Original string     `json:"original"`
	Improved string     `json:"improved"`
	Changes  []Change   `json:"changes"`
	Score    ScoreDelta `json:"score"`
}

// ShouldPersist reports whether the improved text may replace the original.
func (r *ImprovementResult) ShouldPersist() bool {
	return r.Score.Improvement > 0
}
