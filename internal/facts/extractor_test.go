// internal/facts/extractor_test.go
package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-pipeline/internal/models"
)

func TestExtract_FullListingName(t *testing.T) {
	bundle := Extract("yali-mahallesi-2+1-850000")

	require.NotNil(t, bundle.Neighborhood)
	assert.Equal(t, "yali", *bundle.Neighborhood)
	require.NotNil(t, bundle.RoomCount)
	assert.Equal(t, 2, *bundle.RoomCount)
	require.NotNil(t, bundle.Price)
	assert.Equal(t, int64(850000), *bundle.Price)
	assert.Equal(t, models.IntentSale, bundle.Intent)
}

func TestExtract_Intent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected models.ListingIntent
	}{
		{"rent token", "kiralik-daire-merkez", models.IntentRent},
		{"rent token with diacritics", "Kiralık-Daire", models.IntentRent},
		{"no token defaults to sale", "satilik-villa-deniz", models.IntentSale},
		{"empty name", "", models.IntentSale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Extract(tt.input).Intent)
		})
	}
}

func TestExtract_Price(t *testing.T) {
	t.Run("last digit run wins", func(t *testing.T) {
		bundle := Extract("konak-100000-tadilatli-2500000")
		require.NotNil(t, bundle.Price)
		assert.Equal(t, int64(2500000), *bundle.Price)
	})

	t.Run("short runs are not prices", func(t *testing.T) {
		bundle := Extract("daire-no-12-kat-3")
		assert.Nil(t, bundle.Price)
	})
}

func TestExtract_RoomCount(t *testing.T) {
	t.Run("plus notation preferred", func(t *testing.T) {
		bundle := Extract("bornova-3+1-95-metrekare")
		require.NotNil(t, bundle.RoomCount)
		assert.Equal(t, 3, *bundle.RoomCount)
	})

	t.Run("bare two digit fallback", func(t *testing.T) {
		bundle := Extract("alsancak-21-daire")
		require.NotNil(t, bundle.RoomCount)
		assert.Equal(t, 2, *bundle.RoomCount)
	})

	t.Run("price digits are not rooms", func(t *testing.T) {
		bundle := Extract("merkez-950000")
		assert.Nil(t, bundle.RoomCount)
	})
}

func TestExtract_Area(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"symbol form", "daire-120m²-merkez", 120},
		{"ascii form", "daire-120m2-merkez", 120},
		{"spelled out", "daire 95 metrekare", 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := Extract(tt.input)
			require.NotNil(t, bundle.AreaSqm)
			assert.Equal(t, tt.expected, *bundle.AreaSqm)
		})
	}

	t.Run("no unit means no area", func(t *testing.T) {
		assert.Nil(t, Extract("daire-120-merkez").AreaSqm)
	})
}

func TestExtract_Neighborhood(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"path segment", "goztepe/3+1-850000", "goztepe"},
		{"before first hyphen", "yali-mahallesi-2+1", "yali"},
		{"suffix stripped without hyphen", "yalimahallesi-2+1", "yali"},
		{"diacritics folded", "Çankaya-kiralik", "cankaya"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := Extract(tt.input)
			require.NotNil(t, bundle.Neighborhood)
			assert.Equal(t, tt.expected, *bundle.Neighborhood)
		})
	}

	t.Run("numeric segment is not a neighborhood", func(t *testing.T) {
		assert.Nil(t, Extract("2023-fotograflar").Neighborhood)
	})
}

func TestExtract_IsTotal(t *testing.T) {
	// Extraction never fails, it just leaves fields nil.
	for _, input := range []string{"", "   ", "!!!", "///", "-"} {
		bundle := Extract(input)
		assert.True(t, bundle.Empty(), "input %q", input)
		assert.Equal(t, models.IntentSale, bundle.Intent)
	}
}

func TestMerge_ExtractedWins(t *testing.T) {
	price := int64(850000)
	modelPrice := int64(900000)
	rooms := 2
	hood := "yali"
	modelHood := "karsiyaka"

	extracted := models.FactBundle{
		Price:        &price,
		RoomCount:    &rooms,
		Neighborhood: &hood,
		Intent:       models.IntentSale,
	}
	modelArea := 120
	model := models.FactBundle{
		Price:        &modelPrice,
		Neighborhood: &modelHood,
		AreaSqm:      &modelArea,
		Intent:       models.IntentRent,
	}

	merged := Merge(extracted, model)

	// Extracted fields always win over conflicting model values.
	assert.Equal(t, int64(850000), *merged.Price)
	assert.Equal(t, "yali", *merged.Neighborhood)
	assert.Equal(t, models.IntentSale, merged.Intent)
	assert.Equal(t, 2, *merged.RoomCount)

	// Model fills gaps the extractor left.
	require.NotNil(t, merged.AreaSqm)
	assert.Equal(t, 120, *merged.AreaSqm)
}

func TestMerge_EmptyExtractedKeepsModel(t *testing.T) {
	modelPrice := int64(500000)
	merged := Merge(models.FactBundle{}, models.FactBundle{Price: &modelPrice, Intent: models.IntentRent})

	require.NotNil(t, merged.Price)
	assert.Equal(t, int64(500000), *merged.Price)
	assert.Equal(t, models.IntentRent, merged.Intent)
}
