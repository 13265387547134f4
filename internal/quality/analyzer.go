// Package quality scores content for naturalness. The local analyzer is the
// normative path: providers are optional, this one is deterministic and
// always available.
package quality

import (
	"strings"

	"estate-pipeline/internal/models"
)

// genericPhrases is the fixed filler list the analyzer counts. Matching is a
// case-insensitive substring check on the stripped text.
var genericPhrases = []string{
	"hayalinizdeki ev",
	"kaçırılmayacak fırsat",
	"eşsiz konum",
	"muhteşem manzara",
	"sizleri bekliyor",
	"son derece",
	"oldukça geniş",
	"harika bir",
}

const (
	baseScore       = 70
	baseProbability = 0.3

	genericScorePenalty    = 20
	genericProbPenalty     = 0.3
	repetitionScorePenalty = 15
	repetitionProbPenalty  = 0.2
	structureScorePenalty  = 10
	structureProbPenalty   = 0.1

	genericOccurrenceFloor = 3
	genericHighOccurrences = 5
	repeatedWordFloor      = 5
	repetitionHighDistinct = 3
	longSentenceAvg        = 25
	goodSentenceMin        = 10
	goodSentenceMax        = 20

	suggestionScoreFloor = 60

	// Words shorter than this are skipped by the frequency table;
	// conjunctions and particles repeat in any natural text.
	minCountedWordLen = 4
)

// AnalyzeLocally produces a quality report from word and sentence statistics
// alone. Identical input always yields an identical report.
func AnalyzeLocally(content, title string) *models.QualityReport {
	text := StripMarkup(content)
	lower := strings.ToLower(text)

	report := &models.QualityReport{
		HumanLikeScore: baseScore,
		AIProbability:  baseProbability,
		Issues:         []models.Issue{},
		Strengths:      []string{},
		Suggestions:    []string{},
	}

	// Rule 1: generic filler phrases.
	genericCount := 0
	for _, phrase := range genericPhrases {
		genericCount += strings.Count(lower, strings.ToLower(phrase))
	}
	if genericCount >= genericOccurrenceFloor {
		severity := models.SeverityMedium
		if genericCount >= genericHighOccurrences {
			severity = models.SeverityHigh
		}
		report.Issues = append(report.Issues, models.Issue{
			Type:       models.IssueGenericPhrase,
			Severity:   severity,
			Message:    "Metin kalıplaşmış tanıtım ifadeleriyle dolu",
			Suggestion: "Genel ifadeleri ilana özgü somut detaylarla değiştirin",
		})
		report.HumanLikeScore -= genericScorePenalty
		report.AIProbability += genericProbPenalty
	}

	// Rule 2: repeated words.
	words := tokenizeWords(lower)
	freq := make(map[string]int, len(words))
	for _, w := range words {
		freq[w]++
	}
	repeated := 0
	for _, n := range freq {
		if n > repeatedWordFloor {
			repeated++
		}
	}
	if repeated >= 1 {
		severity := models.SeverityMedium
		if repeated >= repetitionHighDistinct {
			severity = models.SeverityHigh
		}
		report.Issues = append(report.Issues, models.Issue{
			Type:       models.IssueRepetition,
			Severity:   severity,
			Message:    "Aynı kelimeler çok sık tekrar ediyor",
			Suggestion: "Eş anlamlı kelimelerle çeşitlilik sağlayın",
		})
		report.HumanLikeScore -= repetitionScorePenalty
		report.AIProbability += repetitionProbPenalty
	}

	// Rule 3: sentence length. The average counts every word, not just the
	// ones long enough for the frequency table.
	sentences := splitSentences(text)
	if len(sentences) > 0 {
		avg := float64(len(strings.Fields(text))) / float64(len(sentences))
		switch {
		case avg > longSentenceAvg:
			report.Issues = append(report.Issues, models.Issue{
				Type:       models.IssueStructure,
				Severity:   models.SeverityMedium,
				Message:    "Cümleler çok uzun",
				Suggestion: "Uzun cümleleri bölerek okunabilirliği artırın",
			})
			report.HumanLikeScore -= structureScorePenalty
			report.AIProbability += structureProbPenalty
		case avg >= goodSentenceMin && avg <= goodSentenceMax:
			report.Strengths = append(report.Strengths, "Cümle uzunlukları dengeli")
		}
	}

	report.HumanLikeScore = clampInt(report.HumanLikeScore, 0, 100)
	report.AIProbability = clampFloat(report.AIProbability, 0, 1)

	if report.HumanLikeScore < suggestionScoreFloor {
		report.Suggestions = append(report.Suggestions,
			"Kalıplaşmış ifadeleri metinden çıkarın",
			"Cümle yapılarını çeşitlendirin",
		)
	}

	return report
}

// tokenizeWords splits on whitespace and trims punctuation; words shorter
// than minCountedWordLen are dropped from the repetition count.
func tokenizeWords(lower string) []string {
	fields := strings.Fields(lower)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Trim(f, ".,!?;:()\"'«»")
		if len([]rune(w)) >= minCountedWordLen {
			words = append(words, w)
		}
	}
	return words
}

// splitSentences splits on sentence-terminal punctuation.
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
