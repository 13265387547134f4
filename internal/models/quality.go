// internal/models/quality.go
package models

// IssueType categorizes a quality finding.
type IssueType string

const (
	IssueGenericPhrase IssueType = "generic-phrase"
	IssueRepetition    IssueType = "repetition"
	IssueStructure     IssueType = "structure"
	IssueTone          IssueType = "tone"
	IssueUniqueness    IssueType = "uniqueness"
)

// IssueSeverity grades a quality finding.
type IssueSeverity string

const (
	SeverityLow    IssueSeverity = "low"
	SeverityMedium IssueSeverity = "medium"
	SeverityHigh   IssueSeverity = "high"
)

// Issue is one categorized quality finding inside a report.
type Issue struct {
	Type       IssueType     `json:"type"`
	Severity   IssueSeverity `json:"severity"`
	Message    string        `json:"message"`
	Suggestion string        `json:"suggestion,omitempty"`
	Location   *int          `json:"location,omitempty"`
}

// QualityReport scores a piece of content for naturalness. Reports are
// ephemeral: recomputed on demand and never the source of truth for stored
// content.
type QualityReport struct {
	HumanLikeScore int      `json:"humanLikeScore"` // 0..100
	AIProbability  float64  `json:"aiProbability"`  // 0.0..1.0
	Issues         []Issue  `json:"issues"`
	Strengths      []string `json:"strengths"`
	Suggestions    []string `json:"suggestions"`
}

// HasIssue reports whether the report contains an issue of the given type.
func (r *QualityReport) HasIssue(t IssueType) bool {
	for _, is := range r.Issues {
		if is.Type == t {
			return true
		}
	}
	return false
}
