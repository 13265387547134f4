// Package facts derives structured listing hints from free-text folder and
// topic names. Extraction is pure and total: every input yields a bundle,
// fields the patterns cannot match are simply left nil.
package facts

import (
	"regexp"
	"strconv"
	"strings"

	"estate-pipeline/internal/models"
)

var (
	// Operators conventionally put the price last, so the last long digit
	// run wins over any earlier one.
	priceRe = regexp.MustCompile(`[0-9]{6,}`)

	// "2+1" style room notation, preferred over a bare two-digit pair.
	roomPlusRe = regexp.MustCompile(`([1-9])\s*\+\s*([0-9])`)
	roomBareRe = regexp.MustCompile(`(?:^|[^0-9])([1-9])([0-9])(?:[^0-9]|$)`)

	areaRe = regexp.MustCompile(`([0-9]+)[\s-]*(?:m2|metrekare)`)

	neighborhoodRe = regexp.MustCompile(`^[a-z][a-z ]*$`)
)

var rentTokens = []string{"kiralik", "kira"}

var neighborhoodSuffixes = []string{"mahallesi", "mahalle", "mah"}

// Extract derives a fact bundle from a raw folder or topic name.
func Extract(rawName string) models.FactBundle {
	normalized := Normalize(rawName)

	bundle := models.FactBundle{
		Intent: extractIntent(normalized),
	}

	if price, ok := extractPrice(normalized); ok {
		bundle.Price = &price
	}
	if rooms, ok := extractRoomCount(normalized); ok {
		bundle.RoomCount = &rooms
	}
	if area, ok := extractArea(normalized); ok {
		bundle.AreaSqm = &area
	}
	if hood, ok := extractNeighborhood(normalized); ok {
		bundle.Neighborhood = &hood
	}

	return bundle
}

// Normalize lowercases and folds Turkish diacritics to ASCII so pattern
// matching is case and diacritic insensitive. The area symbol form is folded
// to "m2" here as well.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case 'ç', 'Ç':
			b.WriteRune('c')
		case 'ğ', 'Ğ':
			b.WriteRune('g')
		case 'ı', 'I':
			b.WriteRune('i')
		case 'İ':
			b.WriteRune('i')
		case 'ö', 'Ö':
			b.WriteRune('o')
		case 'ş', 'Ş':
			b.WriteRune('s')
		case 'ü', 'Ü':
			b.WriteRune('u')
		case '²':
			b.WriteRune('2')
		default:
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

func extractIntent(normalized string) models.ListingIntent {
	for _, token := range rentTokens {
		if strings.Contains(normalized, token) {
			return models.IntentRent
		}
	}
	return models.IntentSale
}

func extractPrice(normalized string) (int64, bool) {
	matches := priceRe.FindAllString(normalized, -1)
	if len(matches) == 0 {
		return 0, false
	}
	price, err := strconv.ParseInt(matches[len(matches)-1], 10, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

func extractRoomCount(normalized string) (int, bool) {
	if m := roomPlusRe.FindStringSubmatch(normalized); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, true
	}
	if m := roomBareRe.FindStringSubmatch(normalized); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, true
	}
	return 0, false
}

func extractArea(normalized string) (int, bool) {
	m := areaRe.FindStringSubmatch(normalized)
	if m == nil {
		return 0, false
	}
	area, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return area, true
}

func extractNeighborhood(normalized string) (string, bool) {
	var segment string
	if idx := strings.IndexByte(normalized, '/'); idx >= 0 {
		segment = normalized[:idx]
	} else if idx := strings.IndexByte(normalized, '-'); idx >= 0 {
		segment = normalized[:idx]
	} else {
		segment = normalized
	}

	segment = strings.TrimSpace(segment)
	for _, suffix := range neighborhoodSuffixes {
		segment = strings.TrimSuffix(segment, suffix)
	}
	segment = strings.Trim(segment, " -_")

	if !neighborhoodRe.MatchString(segment) {
		return "", false
	}
	return segment, true
}
