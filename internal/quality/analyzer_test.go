// internal/quality/analyzer_test.go
package quality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-pipeline/internal/models"
)

func TestAnalyzeLocally_CleanContent(t *testing.T) {
	content := "Bu daire Göztepe semtinde yer alıyor ve denize yürüme mesafesindedir. " +
		"Salon güney cepheli olduğu için gün boyu aydınlıktır. " +
		"Mutfak yenilenmiş, dolaplar birinci sınıf malzemeden üretilmiştir. " +
		"Bina yirmi yıllık ancak dış cephe geçen sene boyanmıştır."

	report := AnalyzeLocally(content, "Göztepe Satılık Daire")

	assert.Empty(t, report.Issues)
	assert.Equal(t, 70, report.HumanLikeScore)
	assert.InDelta(t, 0.3, report.AIProbability, 0.001)
	assert.Empty(t, report.Suggestions)
}

func TestAnalyzeLocally_GenericPhrases(t *testing.T) {
	// 6 occurrences of filler plus 4 distinct words repeated more than 5
	// times: both issues must be high severity and the score must crater.
	filler := strings.Repeat("Hayalinizdeki ev sizi bekliyor, kaçırılmayacak fırsat ayağınıza geldi. ", 3)
	repeats := strings.Repeat("manzara deniz balkon teras. ", 6)
	content := filler + repeats

	report := AnalyzeLocally(content, "İlan")

	require.True(t, report.HasIssue(models.IssueGenericPhrase))
	require.True(t, report.HasIssue(models.IssueRepetition))
	for _, is := range report.Issues {
		switch is.Type {
		case models.IssueGenericPhrase, models.IssueRepetition:
			assert.Equal(t, models.SeverityHigh, is.Severity, "issue %s", is.Type)
		}
	}
	assert.LessOrEqual(t, report.HumanLikeScore, 35)
	assert.NotEmpty(t, report.Suggestions)
}

func TestAnalyzeLocally_MediumSeverities(t *testing.T) {
	// 3 filler occurrences and a single repeated word: both issues present
	// at medium severity.
	content := "Hayalinizdeki ev burada. Hayalinizdeki ev derken ciddiyiz. Hayalinizdeki ev tam karşınızda. " +
		strings.Repeat("balkon keyfi. ", 6)

	report := AnalyzeLocally(content, "İlan")

	require.Len(t, report.Issues, 2)
	for _, is := range report.Issues {
		assert.Equal(t, models.SeverityMedium, is.Severity)
	}
	assert.Equal(t, 70-20-15, report.HumanLikeScore)
}

func TestAnalyzeLocally_LongSentences(t *testing.T) {
	// One 30-word sentence.
	content := strings.Repeat("kelime ", 30) + "."

	report := AnalyzeLocally(content, "İlan")

	require.True(t, report.HasIssue(models.IssueStructure))
	assert.Equal(t, 70-15-10, report.HumanLikeScore) // "kelime" also repeats
}

func TestAnalyzeLocally_BalancedSentencesAreStrength(t *testing.T) {
	sentence := "Bu evin salonu genis ferah aydinlik konforlu sicak davetkar ve huzurlu bir ortam sunuyor. "
	report := AnalyzeLocally(strings.Repeat(sentence, 3), "İlan")

	assert.NotEmpty(t, report.Strengths)
	assert.False(t, report.HasIssue(models.IssueStructure))
}

func TestAnalyzeLocally_Deterministic(t *testing.T) {
	content := "Hayalinizdeki ev sizi bekliyor. " + strings.Repeat("deniz manzara ", 8) + "Kaçırılmayacak fırsat."

	first := AnalyzeLocally(content, "İlan")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, AnalyzeLocally(content, "İlan"))
	}
}

func TestAnalyzeLocally_ScoreClamped(t *testing.T) {
	report := AnalyzeLocally("", "")
	assert.GreaterOrEqual(t, report.HumanLikeScore, 0)
	assert.LessOrEqual(t, report.HumanLikeScore, 100)
	assert.GreaterOrEqual(t, report.AIProbability, 0.0)
	assert.LessOrEqual(t, report.AIProbability, 1.0)
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"html tags", "<p>Satılık <strong>daire</strong></p>", "Satılık daire"},
		{"markdown markers", "# Başlık\n**kalın** ve _eğik_", "Başlık kalın ve eğik"},
		{"entities", "deniz &amp; kum &nbsp;", "deniz & kum"},
		{"plain text untouched", "sade metin", "sade metin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripMarkup(tt.input))
		})
	}
}
