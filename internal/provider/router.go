// internal/provider/router.go
package provider

import (
	"context"
	"errors"
	"time"

	"estate-pipeline/internal/common/config"
	commonerrors "estate-pipeline/internal/common/errors"
	"estate-pipeline/internal/common/logger"
	"estate-pipeline/internal/common/metrics"
	"estate-pipeline/internal/models"
)

// Router tries adapters in priority order, one attempt each, and terminates
// in the local heuristic. Its public methods never return an error: callers
// always receive a usable result, possibly of lower quality.
type Router struct {
	adapters    []Provider
	fallback    *HeuristicProvider
	callTimeout time.Duration
	logger      logger.Logger
}

// NewRouter builds a Router from the configured priority order. Unknown or
// disabled adapter names are skipped; the heuristic terminal is always
// present regardless of configuration.
func NewRouter(cfg config.ProvidersConfig, log logger.Logger) *Router {
	timeout := time.Duration(cfg.CallTimeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	var adapters []Provider
	for _, name := range cfg.Order {
		switch name {
		case "openai":
			if cfg.OpenAI.Enabled && cfg.OpenAI.APIKey != "" {
				adapters = append(adapters, NewOpenAIProvider(cfg.OpenAI, log))
			}
		case "genai":
			if cfg.GenAI.Enabled && cfg.GenAI.BaseURL != "" {
				adapters = append(adapters, NewGenAIProvider(cfg.GenAI, timeout, log))
			}
		default:
			log.Warn("unknown provider in order, skipping", map[string]interface{}{
				"provider": name,
			})
		}
	}

	return &Router{
		adapters:    adapters,
		fallback:    NewHeuristicProvider(),
		callTimeout: timeout,
		logger:      log,
	}
}

// NewRouterWithAdapters builds a Router over an explicit adapter list.
// Used by tests and by callers that construct adapters themselves.
func NewRouterWithAdapters(adapters []Provider, callTimeout time.Duration, log logger.Logger) *Router {
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	return &Router{
		adapters:    adapters,
		fallback:    NewHeuristicProvider(),
		callTimeout: callTimeout,
		logger:      log,
	}
}

// Generate produces content from the first adapter that succeeds, falling
// through to the heuristic. The second return value names the provider
// that produced the result.
func (r *Router) Generate(ctx context.Context, req *models.GenerationRequest) (*models.GeneratedContent, string) {
	for _, adapter := range r.adapters {
		callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
		content, err := adapter.Generate(callCtx, req)
		cancel()
		if err != nil {
			metrics.ProviderCalls.WithLabelValues(adapter.Name(), "generate", "error").Inc()
			classified := classifyAdapterError(adapter.Name(), err)
			r.logger.WithError(classified).Warn("provider generate failed, trying next", map[string]interface{}{
				"provider":  adapter.Name(),
				"category":  commonerrors.GetErrorCategory(classified.Code),
				"retryable": commonerrors.IsRetryable(classified),
			})
			continue
		}
		metrics.ProviderCalls.WithLabelValues(adapter.Name(), "generate", "success").Inc()
		return content, adapter.Name()
	}

	metrics.ProviderFallbacks.WithLabelValues("generate").Inc()
	content, _ := r.fallback.Generate(ctx, req)
	metrics.ProviderCalls.WithLabelValues(r.fallback.Name(), "generate", "success").Inc()
	return content, r.fallback.Name()
}

// Analyze scores content with the first adapter that succeeds, falling
// through to the local analyzer.
func (r *Router) Analyze(ctx context.Context, content, title string) *models.QualityReport {
	for _, adapter := range r.adapters {
		callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
		report, err := adapter.Analyze(callCtx, content, title)
		cancel()
		if err != nil {
			metrics.ProviderCalls.WithLabelValues(adapter.Name(), "analyze", "error").Inc()
			classified := classifyAdapterError(adapter.Name(), err)
			r.logger.WithError(classified).Warn("provider analyze failed, trying next", map[string]interface{}{
				"provider":  adapter.Name(),
				"category":  commonerrors.GetErrorCategory(classified.Code),
				"retryable": commonerrors.IsRetryable(classified),
			})
			continue
		}
		metrics.ProviderCalls.WithLabelValues(adapter.Name(), "analyze", "success").Inc()
		return report
	}

	metrics.ProviderFallbacks.WithLabelValues("analyze").Inc()
	report, _ := r.fallback.Analyze(ctx, content, title)
	metrics.ProviderCalls.WithLabelValues(r.fallback.Name(), "analyze", "success").Inc()
	return report
}

// classifyAdapterError maps an adapter's sentinel onto the structured error
// the logs key on.
func classifyAdapterError(name string, err error) *commonerrors.StandardError {
	switch {
	case errors.Is(err, ErrTimeout):
		return commonerrors.NewProviderTimeoutError(name)
	case errors.Is(err, ErrInvalidResponse):
		return commonerrors.NewProviderResponseInvalidError(name, err.Error())
	default:
		return commonerrors.NewProviderCallFailedError(name, err)
	}
}
