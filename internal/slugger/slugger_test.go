// internal/slugger/slugger_test.go
package slugger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	r := NewResolver(100)

	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"turkish diacritics", "Modern Daire! İlan", "modern-daire-ilan"},
		{"dotted capital I", "İZMİR SATILIK", "izmir-satilik"},
		{"full diacritic set", "Çağdaş Öğütücü Şişli Üçüncü Iğdır", "cagdas-ogutucu-sisli-ucuncu-igdir"},
		{"punctuation runs collapse", "Deniz -- Manzaralı!!! (2+1)", "deniz-manzarali-2-1"},
		{"leading and trailing noise", "  --Yalı Mahallesi-- ", "yali-mahallesi"},
		{"digits kept", "3+1 Daire 850000 TL", "3-1-daire-850000-tl"},
		{"empty title", "", ""},
		{"only punctuation", "!!! ???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Resolve(tt.title))
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	r := NewResolver(100)
	title := "Kiralık Müstakil Ev Göztepe"
	assert.Equal(t, r.Resolve(title), r.Resolve(title))
}

func TestResolve_Truncation(t *testing.T) {
	t.Run("cuts at hyphen past midpoint", func(t *testing.T) {
		r := NewResolver(20)
		slug := r.Resolve("deniz manzarali daire satilik")
		assert.LessOrEqual(t, len(slug), 20)
		assert.Equal(t, "deniz-manzarali", slug)
	})

	t.Run("hard truncate when hyphen too early", func(t *testing.T) {
		r := NewResolver(20)
		slug := r.Resolve("ev " + strings.Repeat("x", 40))
		assert.LessOrEqual(t, len(slug), 20)
		assert.False(t, strings.HasSuffix(slug, "-"))
		assert.Equal(t, "ev-"+strings.Repeat("x", 17), slug)
	})

	t.Run("short slug untouched", func(t *testing.T) {
		r := NewResolver(100)
		assert.Equal(t, "kisa", r.Resolve("kisa"))
	})
}

func TestEnsureUnique(t *testing.T) {
	ctx := context.Background()

	t.Run("no collision keeps slug", func(t *testing.T) {
		r := NewResolver(100)
		slug, err := r.EnsureUnique(ctx, "modern-daire", func(ctx context.Context, s string) (bool, error) {
			return false, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "modern-daire", slug)
	})

	t.Run("collision appends timestamp suffix", func(t *testing.T) {
		r := NewResolver(100)
		r.now = func() time.Time { return time.Unix(0, 1700000000000000001) }

		slug, err := r.EnsureUnique(ctx, "modern-daire", func(ctx context.Context, s string) (bool, error) {
			return s == "modern-daire", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "modern-daire-1700000000000000001", slug)
		assert.NotEqual(t, "modern-daire", slug)
	})

	t.Run("lookup error propagates", func(t *testing.T) {
		r := NewResolver(100)
		_, err := r.EnsureUnique(ctx, "x", func(ctx context.Context, s string) (bool, error) {
			return false, errors.New("connection refused")
		})
		assert.Error(t, err)
	})
}
