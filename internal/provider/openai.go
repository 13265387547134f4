// internal/provider/openai.go
package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"estate-pipeline/internal/common/config"
	"estate-pipeline/internal/common/logger"
	"estate-pipeline/internal/jsonextract"
	"estate-pipeline/internal/models"
)

// OpenAIProvider generates content through the OpenAI chat completions API.
type OpenAIProvider struct {
	client      openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      logger.Logger
}

func NewOpenAIProvider(cfg config.OpenAIConfig, log logger.Logger) *OpenAIProvider {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4000
	}
	return &OpenAIProvider{
		client:      openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:       model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		logger:      log.WithFields(map[string]interface{}{"provider": "openai"}),
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Generate(ctx context.Context, req *models.GenerationRequest) (*models.GeneratedContent, error) {
	system := generationSystemPrompt
	if IsRewrite(req) {
		system = rewriteSystemPrompt
	}

	raw, err := p.complete(ctx, system, BuildGenerationPrompt(req))
	if err != nil {
		return nil, err
	}

	payload := jsonextract.FirstObject(raw)
	if payload == "" {
		return nil, fmt.Errorf("%w: no JSON object in completion", ErrInvalidResponse)
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

func (p *OpenAIProvider) Analyze(ctx context.Context, content, title string) (*models.QualityReport, error) {
	raw, err := p.complete(ctx, analysisSystemPrompt, BuildAnalysisPrompt(content, title))
	if err != nil {
		return nil, err
	}

	payload := jsonextract.FirstObject(raw)
	if payload == "" {
		return nil, fmt.Errorf("%w: no JSON object in completion", ErrInvalidResponse)
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

// complete makes a single chat completion call. No retries here; the
// router falls through to the next adapter on failure.
func (p *OpenAIProvider) complete(ctx context.Context, system, user string) (string, error) {
	response, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(system),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(user),
					},
				},
			},
		},
		Temperature: openai.Float(p.temperature),
		MaxTokens:   openai.Int(int64(p.maxTokens)),
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
		}
		p.logger.WithError(err).Warn("openai completion failed", nil)
		return "", fmt.Errorf("%w: %v", ErrCallFailed, err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrInvalidResponse)
	}
	return response.Choices[0].Message.Content, nil
}
