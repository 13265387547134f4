// internal/provider/prompt.go
package provider

import (
	"fmt"
	"strings"

	"estate-pipeline/internal/models"
)

const generationSystemPrompt = `Sen Türkiye emlak piyasası için içerik üreten deneyimli bir editörsün. ` +
	`Doğal, akıcı ve özgün Türkçe yazarsın. Kalıplaşmış pazarlama ifadelerinden kaçınırsın. ` +
	`Yanıtını her zaman geçerli bir JSON nesnesi olarak ver; JSON dışında hiçbir şey yazma.`

const rewriteSystemPrompt = `Sen Türkçe emlak içeriklerini iyileştiren bir editörsün. ` +
	`Verilen metni anlamını koruyarak daha doğal ve özgün hale getirirsin. ` +
	`Yanıtını her zaman geçerli bir JSON nesnesi olarak ver; JSON dışında hiçbir şey yazma.`

const analysisSystemPrompt = `Sen Türkçe içeriklerin yapaylık düzeyini değerlendiren bir kalite analistisin. ` +
	`Metni insan yazımına benzerlik, tekrar ve kalıp ifade açısından puanlarsın. ` +
	`Yanıtını her zaman geçerli bir JSON nesnesi olarak ver; JSON dışında hiçbir şey yazma.`

// responseShape describes the JSON object the model must emit. Adapters
// embed it in the user prompt so schema validation rarely rejects output.
const generationResponseShape = `{"title": string, "body": string (markdown), "excerpt": string, "metaDescription": string (max 160 chars), "keywords": [string], "facts": {"price": number, "roomCount": int, "areaSqm": int, "neighborhood": string, "intent": "sale"|"rent"}}`

const analysisResponseShape = `{"humanLikeScore": 0-100, "aiProbability": 0.0-1.0, "issues": [{"type": "generic-phrase"|"repetition"|"structure"|"tone"|"uniqueness", "severity": "low"|"medium"|"high", "message": string}], "strengths": [string], "suggestions": [string]}`

// BuildGenerationPrompt renders the user prompt for a generation or
// rewrite request. Rewrite requests carry the original body and the
// analyzer findings through the request context.
func BuildGenerationPrompt(req *models.GenerationRequest) string {
	if IsRewrite(req) {
		return buildRewritePrompt(req)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Konu: %s\n", req.Topic)
	fmt.Fprintf(&b, "İçerik türü: %s\n", kindLabel(req.Kind))

	if !req.Facts.Empty() || req.Facts.Intent != "" {
		b.WriteString("Bilinen gerçekler (bunlarla çelişme):\n")
		if req.Facts.Neighborhood != nil {
			fmt.Fprintf(&b, "- Mahalle: %s\n", *req.Facts.Neighborhood)
		}
		if req.Facts.RoomCount != nil {
			fmt.Fprintf(&b, "- Oda sayısı: %d+1 düzeninde %d oda\n", *req.Facts.RoomCount, *req.Facts.RoomCount)
		}
		if req.Facts.AreaSqm != nil {
			fmt.Fprintf(&b, "- Alan: %d m²\n", *req.Facts.AreaSqm)
		}
		if req.Facts.Price != nil {
			fmt.Fprintf(&b, "- Fiyat: %d TL\n", *req.Facts.Price)
		}
		if req.Facts.Intent != "" {
			fmt.Fprintf(&b, "- İlan türü: %s\n", intentLabel(req.Facts.Intent))
		}
	}

	for k, v := range req.Context {
		fmt.Fprintf(&b, "%s: %s\n", k, v)
	}

	if len(req.ImageURLs) > 0 {
		fmt.Fprintf(&b, "Görsel sayısı: %d\n", len(req.ImageURLs))
	}
	if req.Constraints.TargetWordCount > 0 {
		fmt.Fprintf(&b, "Hedef uzunluk: yaklaşık %d kelime\n", req.Constraints.TargetWordCount)
	}

	b.WriteString("\nYanıt biçimi:\n")
	b.WriteString(generationResponseShape)
	return b.String()
}

func buildRewritePrompt(req *models.GenerationRequest) string {
	var b strings.Builder
	b.WriteString("Aşağıdaki metni anlamını ve tüm somut bilgilerini koruyarak yeniden yaz.\n")

	if issues := req.Context[ContextIssuesKey]; issues != "" {
		fmt.Fprintf(&b, "Tespit edilen sorunlar:\n%s\n", issues)
	}
	if suggestions := req.Context[ContextSuggestionsKey]; suggestions != "" {
		fmt.Fprintf(&b, "Öneriler:\n%s\n", suggestions)
	}

	b.WriteString("\nMetin:\n")
	b.WriteString(req.Context[ContextContentKey])
	b.WriteString("\n\nYanıt biçimi:\n")
	b.WriteString(generationResponseShape)
	return b.String()
}

// BuildAnalysisPrompt renders the user prompt for a quality analysis call.
func BuildAnalysisPrompt(content, title string) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "Başlık: %s\n\n", title)
	}
	b.WriteString("Aşağıdaki metni değerlendir:\n\n")
	b.WriteString(content)
	b.WriteString("\n\nYanıt biçimi:\n")
	b.WriteString(analysisResponseShape)
	return b.String()
}

func kindLabel(k models.ContentKind) string {
	switch k {
	case models.KindListing:
		return "emlak ilanı tanıtım yazısı"
	case models.KindArticle:
		return "bilgilendirici makale"
	case models.KindQA:
		return "soru-cevap içeriği"
	default:
		return "serbest içerik"
	}
}

func intentLabel(intent models.ListingIntent) string {
	if intent == models.IntentRent {
		return "kiralık"
	}
	return "satılık"
}
