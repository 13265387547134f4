// internal/jsonextract/extract_test.go
package jsonextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "clean JSON",
			input:    `{"title":"Yalı Mahallesi 2+1","price":850000}`,
			expected: `{"title":"Yalı Mahallesi 2+1","price":850000}`,
		},
		{
			name:     "JSON fenced in prose",
			input:    "Here is the content you asked for:\n```json\n{\"title\":\"Daire\"}\n```\nLet me know if you need changes.",
			expected: `{"title":"Daire"}`,
		},
		{
			name:     "braces inside string values",
			input:    `prefix {"body":"use {curly} braces","ok":true} suffix`,
			expected: `{"body":"use {curly} braces","ok":true}`,
		},
		{
			name:     "escaped quote inside string",
			input:    `{"body":"she said \"evet\" twice"}`,
			expected: `{"body":"she said \"evet\" twice"}`,
		},
		{
			name:     "nested objects",
			input:    `{"facts":{"price":850000,"rooms":2},"title":"x"}`,
			expected: `{"facts":{"price":850000,"rooms":2},"title":"x"}`,
		},
		{
			name:     "malformed JSON",
			input:    `{"title": "unterminated`,
			expected: "",
		},
		{
			name:     "no JSON at all",
			input:    "the model refused to answer",
			expected: "",
		},
		{
			name:     "invalid first candidate, valid second",
			input:    `{not json} and then {"ok":true}`,
			expected: `{"ok":true}`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FirstObject(tt.input))
		})
	}
}

func TestUnmarshal(t *testing.T) {
	var out struct {
		Title string `json:"title"`
	}

	ok := Unmarshal("sure, here you go: {\"title\":\"Satılık Daire\"}", &out)
	assert.True(t, ok)
	assert.Equal(t, "Satılık Daire", out.Title)

	ok = Unmarshal("no json here", &out)
	assert.False(t, ok)
}
