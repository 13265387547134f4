// Package provider wraps the external text-generation providers behind one
// call contract and routes between them. Adapters are independently
// failable; the router tries them in priority order and terminates in a
// local heuristic that never fails, so callers always receive a usable
// result.
package provider

import (
	"context"
	"errors"

	"estate-pipeline/internal/models"
)

// NameHeuristic is the router's terminal fallback. Callers compare against
// it to learn that no external provider answered.
const NameHeuristic = "heuristic"

var (
	ErrCallFailed      = errors.New("PROVIDER_CALL_FAILED")
	ErrTimeout         = errors.New("PROVIDER_TIMEOUT")
	ErrInvalidResponse = errors.New("PROVIDER_RESPONSE_INVALID")
)

// Provider is one external generation provider. Implementations must make
// exactly one attempt per call; retrying is the router's job, and it retries
// by moving to the next adapter, never the same one.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req *models.GenerationRequest) (*models.GeneratedContent, error)
	Analyze(ctx context.Context, content, title string) (*models.QualityReport, error)
}

// rewrite-mode requests carry the original content through the request
// context under these keys.
const (
	ContextModeKey        = "mode"
	ContextModeRewrite    = "rewrite"
	ContextContentKey     = "content"
	ContextIssuesKey      = "issues"
	ContextSuggestionsKey = "suggestions"
)

// IsRewrite reports whether the request asks for a rewrite of existing
// content rather than fresh generation.
func IsRewrite(req *models.GenerationRequest) bool {
	return req.Context[ContextModeKey] == ContextModeRewrite
}
