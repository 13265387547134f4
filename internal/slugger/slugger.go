// Package slugger derives URL-safe identifiers from content titles and
// guarantees their uniqueness against the content store.
package slugger

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultMaxLength bounds slugs when no explicit limit is configured.
const DefaultMaxLength = 100

// transliterations maps the Turkish diacritic set to ASCII. Applied before
// lowercasing: strings.ToLower turns 'İ' into 'i' plus a combining dot,
// which would leak a stray hyphen into the slug.
var transliterations = map[rune]rune{
	'ç': 'c', 'Ç': 'c',
	'ğ': 'g', 'Ğ': 'g',
	'ı': 'i', 'I': 'i', 'İ': 'i',
	'ö': 'o', 'Ö': 'o',
	'ş': 's', 'Ş': 's',
	'ü': 'u', 'Ü': 'u',
}

// LookupFunc reports whether a slug already exists in the content store.
type LookupFunc func(ctx context.Context, slug string) (bool, error)

// Resolver derives and disambiguates slugs.
type Resolver struct {
	maxLength int
	now       func() time.Time
}

// NewResolver creates a Resolver with the given maximum slug length.
// A non-positive maxLength falls back to DefaultMaxLength.
func NewResolver(maxLength int) *Resolver {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Resolver{maxLength: maxLength, now: time.Now}
}

// Resolve converts a title into a URL-safe slug: transliterate, lowercase,
// collapse runs of non-alphanumerics to single hyphens, trim, truncate.
// Deterministic: the same title always yields the same slug.
func (r *Resolver) Resolve(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastHyphen := true // suppress a leading hyphen
	for _, c := range title {
		if t, ok := transliterations[c]; ok {
			c = t
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}

		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}

	slug := strings.TrimRight(b.String(), "-")
	return r.truncate(slug)
}

// truncate keeps the slug within maxLength, preferring to cut at a hyphen
// when one sits past the midpoint so words are not chopped in half.
func (r *Resolver) truncate(slug string) string {
	if len(slug) <= r.maxLength {
		return slug
	}

	cut := slug[:r.maxLength]
	if idx := strings.LastIndexByte(cut, '-'); idx > r.maxLength/2 {
		return cut[:idx]
	}
	return strings.TrimRight(cut, "-")
}

// EnsureUnique checks the candidate against the store and, on collision,
// appends a high-resolution timestamp suffix. The suffix source is
// effectively unique per call in a sequential single-process batch, so no
// retry loop is needed.
func (r *Resolver) EnsureUnique(ctx context.Context, slug string, lookup LookupFunc) (string, error) {
	exists, err := lookup(ctx, slug)
	if err != nil {
		return "", fmt.Errorf("slug lookup for %q: %w", slug, err)
	}
	if !exists {
		return slug, nil
	}
	return fmt.Sprintf("%s-%d", slug, r.now().UnixNano()), nil
}
