// internal/provider/genai_test.go
package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-pipeline/internal/common/config"
	"estate-pipeline/internal/common/logger"
)

const validGeneratedJSON = `{
	"title": "Yalı Mahallesi'nde Satılık 2+1 Daire",
	"body": "Ferah bir daire.",
	"excerpt": "Ferah bir daire.",
	"metaDescription": "Yalı mahallesinde satılık daire.",
	"keywords": ["emlak", "satılık daire"],
	"facts": {"roomCount": 2, "intent": "sale"}
}`

func newGenAIProvider(t *testing.T, server *httptest.Server) *GenAIProvider {
	t.Helper()
	return NewGenAIProvider(config.GenAIRESTConfig{
		Enabled:     true,
		BaseURL:     server.URL,
		APIKey:      "test-key",
		MaxTokens:   1000,
		Temperature: 0.7,
	}, 2*time.Second, logger.NewNop())
}

func TestGenAIGenerateSendsWireShape(t *testing.T) {
	var captured genAIRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/generate", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(validGeneratedJSON))
	}))
	defer server.Close()

	content, err := newGenAIProvider(t, server).Generate(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, "Yalı Mahallesi'nde Satılık 2+1 Daire", content.Title)
	assert.Equal(t, "json", captured.ResponseShape)
	assert.Equal(t, 0.7, captured.Temperature)
	assert.Equal(t, 1000, captured.MaxOutputSize)
	assert.NotEmpty(t, captured.SystemInstructions)
	assert.Contains(t, captured.UserPrompt, "yali-mahallesi-2+1-850000")
}

func TestGenAIGenerateExtractsJSONFromProse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("İşte istediğiniz içerik:\n```json\n" + validGeneratedJSON + "\n```\nBaşka bir isteğiniz var mı?"))
	}))
	defer server.Close()

	content, err := newGenAIProvider(t, server).Generate(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, "Ferah bir daire.", content.Body)
}

func TestGenAIGenerateRejectsMissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"title": "Başlık", "body": "Metin"}`))
	}))
	defer server.Close()

	_, err := newGenAIProvider(t, server).Generate(context.Background(), sampleRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGenAIGenerateErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newGenAIProvider(t, server).Generate(context.Background(), sampleRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCallFailed)
}

func TestGenAIAnalyze(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req genAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.UserPrompt, "değerlendir")
		w.Write([]byte(`{
			"humanLikeScore": 72,
			"aiProbability": 0.25,
			"issues": [{"type": "repetition", "severity": "medium", "message": "Bazı kelimeler çok sık tekrar ediyor"}],
			"strengths": ["Cümle uzunlukları dengeli"],
			"suggestions": []
		}`))
	}))
	defer server.Close()

	report, err := newGenAIProvider(t, server).Analyze(context.Background(), "Bir metin.", "Başlık")

	require.NoError(t, err)
	assert.Equal(t, 72, report.HumanLikeScore)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "repetition", string(report.Issues[0].Type))
}

func TestGenAIGenerateTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(validGeneratedJSON))
	}))
	defer server.Close()

	provider := newGenAIProvider(t, server)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := provider.Generate(ctx, sampleRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
}
