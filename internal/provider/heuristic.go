// internal/provider/heuristic.go
package provider

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"estate-pipeline/internal/models"
	"estate-pipeline/internal/quality"
)

// HeuristicProvider is the terminal fallback. It fills deterministic
// templates for generation and delegates analysis to the local analyzer,
// so it always returns a result.
type HeuristicProvider struct {
	markdown goldmark.Markdown
}

func NewHeuristicProvider() *HeuristicProvider {
	return &HeuristicProvider{markdown: goldmark.New()}
}

func (p *HeuristicProvider) Name() string { return NameHeuristic }

func (p *HeuristicProvider) Generate(_ context.Context, req *models.GenerationRequest) (*models.GeneratedContent, error) {
	if IsRewrite(req) {
		// Rewrite fallback keeps the original text; the improvement engine
		// applies its own phrase substitutions when it sees the heuristic
		// produced the result.
		return &models.GeneratedContent{
			Title:           req.Topic,
			Body:            req.Context[ContextContentKey],
			Excerpt:         buildExcerpt(req.Context[ContextContentKey]),
			MetaDescription: buildExcerpt(req.Context[ContextContentKey]),
			Keywords:        templateKeywords(req),
			Facts:           req.Facts,
		}, nil
	}

	title := buildTitle(req)
	md := buildMarkdownBody(req, title)

	var buf bytes.Buffer
	body := md
	if err := p.markdown.Convert([]byte(md), &buf); err == nil {
		body = buf.String()
	}

	excerpt := buildExcerpt(md)
	return &models.GeneratedContent{
		Title:           title,
		Body:            body,
		Excerpt:         excerpt,
		MetaDescription: excerpt,
		Keywords:        templateKeywords(req),
		Facts:           req.Facts,
	}, nil
}

func (p *HeuristicProvider) Analyze(_ context.Context, content, title string) (*models.QualityReport, error) {
	return quality.AnalyzeLocally(content, title), nil
}

func buildTitle(req *models.GenerationRequest) string {
	facts := req.Facts

	var parts []string
	if facts.Neighborhood != nil {
		parts = append(parts, titleCase(*facts.Neighborhood)+" Mahallesi'nde")
	}
	if facts.Intent == models.IntentRent {
		parts = append(parts, "Kiralık")
	} else {
		parts = append(parts, "Satılık")
	}
	if facts.RoomCount != nil {
		parts = append(parts, fmt.Sprintf("%d+1", *facts.RoomCount))
	}
	parts = append(parts, "Daire")

	if len(parts) == 2 && req.Topic != "" {
		return titleCase(strings.ReplaceAll(req.Topic, "-", " "))
	}
	return strings.Join(parts, " ")
}

func buildMarkdownBody(req *models.GenerationRequest, title string) string {
	facts := req.Facts

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", title)

	b.WriteString("Bu ilan, aradığınız özelliklere uygun bir konut seçeneği sunuyor.")
	if facts.Neighborhood != nil {
		fmt.Fprintf(&b, " %s mahallesinde yer alan daire, konumu sayesinde ulaşım ve günlük ihtiyaçlar açısından avantajlıdır.", titleCase(*facts.Neighborhood))
	}
	b.WriteString("\n\n")

	var details []string
	if facts.RoomCount != nil {
		details = append(details, fmt.Sprintf("- Oda düzeni: %d+1", *facts.RoomCount))
	}
	if facts.AreaSqm != nil {
		details = append(details, fmt.Sprintf("- Kullanım alanı: %d m²", *facts.AreaSqm))
	}
	if facts.Price != nil {
		details = append(details, fmt.Sprintf("- Fiyat: %s TL", formatPrice(*facts.Price)))
	}
	if facts.Intent == models.IntentRent {
		details = append(details, "- İlan türü: Kiralık")
	} else {
		details = append(details, "- İlan türü: Satılık")
	}
	if len(details) > 0 {
		b.WriteString("### İlan Detayları\n\n")
		b.WriteString(strings.Join(details, "\n"))
		b.WriteString("\n\n")
	}

	if n := len(req.ImageURLs); n > 0 {
		fmt.Fprintf(&b, "İlana ait %d fotoğraf ile daireyi yakından inceleyebilirsiniz.\n\n", n)
	}

	b.WriteString("Detaylı bilgi ve randevu için iletişime geçebilirsiniz.\n")
	return b.String()
}

func buildExcerpt(text string) string {
	plain := quality.StripMarkup(text)
	words := strings.Fields(plain)
	if len(words) > 30 {
		words = words[:30]
	}
	excerpt := strings.Join(words, " ")
	if excerpt == "" {
		excerpt = "Emlak ilanı"
	}
	return excerpt
}

func templateKeywords(req *models.GenerationRequest) []string {
	facts := req.Facts

	keywords := []string{"emlak", "daire"}
	if facts.Intent == models.IntentRent {
		keywords = append(keywords, "kiralık daire")
	} else {
		keywords = append(keywords, "satılık daire")
	}
	if facts.Neighborhood != nil {
		keywords = append(keywords, *facts.Neighborhood)
	}
	if facts.RoomCount != nil {
		keywords = append(keywords, fmt.Sprintf("%d+1 daire", *facts.RoomCount))
	}
	return keywords
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	return strings.Join(words, " ")
}

func formatPrice(v int64) string {
	s := fmt.Sprintf("%d", v)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
