// internal/provider/genai.go
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"estate-pipeline/internal/common/config"
	"estate-pipeline/internal/common/httpclient"
	"estate-pipeline/internal/common/logger"
	"estate-pipeline/internal/jsonextract"
	"estate-pipeline/internal/models"
)

// genAIRequest is the wire shape of the hosted GenAI gateway. The response
// is raw text; the model is asked for JSON but the payload may arrive
// wrapped in prose, so extraction is best-effort.
type genAIRequest struct {
	SystemInstructions string  `json:"systemInstructions"`
	UserPrompt         string  `json:"userPrompt"`
	ResponseShape      string  `json:"responseShape"`
	Temperature        float64 `json:"temperature"`
	MaxOutputSize      int     `json:"maxOutputSize"`
}

// GenAIProvider talks to a self-hosted GenAI REST gateway.
type GenAIProvider struct {
	httpClient  *httpclient.Client
	baseURL     string
	apiKey      string
	maxTokens   int
	temperature float64
	logger      logger.Logger
}

func NewGenAIProvider(cfg config.GenAIRESTConfig, callTimeout time.Duration, log logger.Logger) *GenAIProvider {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4000
	}
	return &GenAIProvider{
		httpClient:  httpclient.NewClient(callTimeout),
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		logger:      log.WithFields(map[string]interface{}{"provider": "genai"}),
	}
}

func (p *GenAIProvider) Name() string { return "genai" }

func (p *GenAIProvider) Generate(ctx context.Context, req *models.GenerationRequest) (*models.GeneratedContent, error) {
	system := generationSystemPrompt
	if IsRewrite(req) {
		system = rewriteSystemPrompt
	}

	payload, err := p.call(ctx, system, BuildGenerationPrompt(req))
	if err != nil {
		return nil, err
	}
	if err := ValidateGeneratedPayload(payload); err != nil {
		return nil, err
	}

	var content models.GeneratedContent
	if err := json.Unmarshal([]byte(payload), &content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &content, nil
}

func (p *GenAIProvider) Analyze(ctx context.Context, content, title string) (*models.QualityReport, error) {
	payload, err := p.call(ctx, analysisSystemPrompt, BuildAnalysisPrompt(content, title))
	if err != nil {
		return nil, err
	}
	if err := ValidateReportPayload(payload); err != nil {
		return nil, err
	}

	var report models.QualityReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &report, nil
}

// call makes exactly one request and extracts the first JSON object from
// the raw text response.
func (p *GenAIProvider) call(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(genAIRequest{
		SystemInstructions: system,
		UserPrompt:         user,
		ResponseShape:      "json",
		Temperature:        p.temperature,
		MaxOutputSize:      p.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCallFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCallFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
		}
		p.logger.WithError(err).Warn("genai request failed", nil)
		return "", fmt.Errorf("%w: %v", ErrCallFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCallFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrCallFailed, resp.StatusCode)
	}

	payload := jsonextract.FirstObject(string(raw))
	if payload == "" {
		return "", fmt.Errorf("%w: no JSON object in response", ErrInvalidResponse)
	}
	return payload, nil
}
