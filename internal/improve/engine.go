// internal/improve/engine.go

// Package improve rewrites content to raise its quality score without ever
// regressing it. The primary path asks the provider router for a rewrite;
// when only the local heuristic answered, a fixed phrase-substitution pass
// runs instead. Callers persist the result only when the score improved.
package improve

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"estate-pipeline/internal/common/logger"
	"estate-pipeline/internal/common/metrics"
	"estate-pipeline/internal/models"
	"estate-pipeline/internal/provider"
	"estate-pipeline/internal/quality"
)

// substitution is one filler-removal rule of the fallback pass. An empty
// replacement deletes the phrase.
type substitution struct {
	phrase      string
	replacement string
}

var substitutions = []substitution{
	{"hayalinizdeki ev", "aradığınız ev"},
	{"kaçırılmayacak fırsat", "değerlendirilebilecek bir seçenek"},
	{"eşsiz konum", "merkezi konum"},
	{"muhteşem manzara", "açık manzara"},
	{"sizleri bekliyor", ""},
	{"son derece ", ""},
	{"oldukça geniş", "geniş"},
	{"harika bir", "iyi bir"},
}

// Generator is the provider router's generate surface.
type Generator interface {
	Generate(ctx context.Context, req *models.GenerationRequest) (*models.GeneratedContent, string)
}

// Engine produces an improved version of a piece of content together with
// the list of changes and a before/after score.
type Engine struct {
	router Generator
	logger logger.Logger
}

func NewEngine(router Generator, log logger.Logger) *Engine {
	return &Engine{router: router, logger: log}
}

// Improve rewrites content guided by an existing analysis. It never fails:
// at worst the result carries the original text with a zero improvement,
// which ShouldPersist rejects.
func (e *Engine) Improve(ctx context.Context, content, title string, analysis *models.QualityReport) *models.ImprovementResult {
	if analysis == nil {
		analysis = quality.AnalyzeLocally(content, title)
	}

	req := buildRewriteRequest(content, title, analysis)
	generated, providerName := e.router.Generate(ctx, req)

	var improved string
	var changes []models.Change
	if providerName == provider.NameHeuristic {
		// The heuristic echoes the original on rewrites; apply the local
		// substitution pass instead.
		improved, changes = applySubstitutions(content)
	} else {
		improved = generated.Body
		changes = []models.Change{{
			Type:     "rewrite",
			Improved: improved,
			Reason:   fmt.Sprintf("%s sağlayıcısı ile yeniden yazıldı", providerName),
		}}
	}

	// Both ends of the comparison come from the local analyzer. A provider's
	// score lives on its own scale; the supplied analysis only guides the
	// rewrite instructions.
	before := quality.AnalyzeLocally(content, title).HumanLikeScore
	after := quality.AnalyzeLocally(improved, title).HumanLikeScore

	result := &models.ImprovementResult{
		Original: content,
		Improved: improved,
		Changes:  changes,
		Score: models.ScoreDelta{
			Before:      before,
			After:       after,
			Improvement: after - before,
		},
	}

	outcome := "skipped"
	if result.ShouldPersist() {
		outcome = "persisted"
	}
	metrics.ImprovementsPersisted.WithLabelValues(outcome).Inc()
	e.logger.Info("improvement attempt finished", map[string]interface{}{
		"provider": providerName,
		"before":   before,
		"after":    after,
		"changes":  len(changes),
	})
	return result
}

func buildRewriteRequest(content, title string, analysis *models.QualityReport) *models.GenerationRequest {
	var issues []string
	for _, issue := range analysis.Issues {
		issues = append(issues, fmt.Sprintf("- [%s/%s] %s", issue.Type, issue.Severity, issue.Message))
	}

	return &models.GenerationRequest{
		Kind:  models.KindCustom,
		Topic: title,
		Context: map[string]string{
			provider.ContextModeKey:        provider.ContextModeRewrite,
			provider.ContextContentKey:     content,
			provider.ContextIssuesKey:      strings.Join(issues, "\n"),
			provider.ContextSuggestionsKey: strings.Join(analysis.Suggestions, "\n"),
		},
	}
}

// applySubstitutions runs the fixed filler-removal rules, recording one
// change per rule that actually matched.
func applySubstitutions(content string) (string, []models.Change) {
	improved := content
	var changes []models.Change
	for _, sub := range substitutions {
		replaced := replaceFold(improved, sub.phrase, sub.replacement)
		if replaced == improved {
			continue
		}
		improved = replaced
		changes = append(changes, models.Change{
			Type:     "phrase-substitution",
			Original: sub.phrase,
			Improved: sub.replacement,
			Reason:   "kalıp ifade sadeleştirildi",
		})
	}
	return improved, changes
}

// replaceFold replaces every case-insensitive occurrence of phrase in s.
// Matching walks rune by rune instead of lowercasing the whole string first:
// strings.ToLower turns the two-byte 'İ' into a one-byte 'i' plus a combining
// dot, so byte indices found in the lowered copy do not line up with s.
func replaceFold(s, phrase, replacement string) string {
	needle := []rune(phrase)
	for i, c := range needle {
		needle[i] = foldTurkish(c)
	}
	if len(needle) == 0 {
		return s
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(runes); {
		if matchesFold(runes[i:], needle) {
			b.WriteString(replacement)
			i += len(needle)
			continue
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}

func matchesFold(runes, needle []rune) bool {
	if len(runes) < len(needle) {
		return false
	}
	for i, want := range needle {
		if foldTurkish(runes[i]) != want {
			return false
		}
	}
	return true
}

// foldTurkish lowercases a rune for matching. The Turkish capitals pair off
// differently than unicode.ToLower assumes: 'İ' belongs to 'i' and 'I' to 'ı'.
func foldTurkish(c rune) rune {
	switch c {
	case 'İ':
		return 'i'
	case 'I':
		return 'ı'
	}
	return unicode.ToLower(c)
}
