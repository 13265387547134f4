// internal/quality/service.go
package quality

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"estate-pipeline/internal/common/logger"
	"estate-pipeline/internal/common/metrics"
	"estate-pipeline/internal/models"
)

// RouterAnalyzer is the provider router's analyze surface. It never fails;
// at worst it returns the local heuristic's report.
type RouterAnalyzer interface {
	Analyze(ctx context.Context, content, title string) *models.QualityReport
}

// Service analyzes content quality, caching reports in Redis. Reports are
// ephemeral and recomputable, so a cache miss or a broken cache never fails
// an analysis; it just costs a recompute.
type Service struct {
	router RouterAnalyzer
	cache  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewService creates a quality Service. router may be nil, in which case the
// local analyzer is used directly; cache may be nil to disable caching.
func NewService(router RouterAnalyzer, cache *redis.Client, ttl time.Duration, log logger.Logger) *Service {
	return &Service{
		router: router,
		cache:  cache,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "quality"}),
	}
}

// Analyze returns a quality report for the content, from cache when
// available.
func (s *Service) Analyze(ctx context.Context, content, title string) *models.QualityReport {
	key := cacheKey(content, title)

	if report := s.fromCache(ctx, key); report != nil {
		return report
	}

	var report *models.QualityReport
	if s.router != nil {
		report = s.router.Analyze(ctx, content, title)
	} else {
		report = AnalyzeLocally(content, title)
	}

	metrics.QualityScore.Observe(float64(report.HumanLikeScore))
	s.toCache(ctx, key, report)
	return report
}

func (s *Service) fromCache(ctx context.Context, key string) *models.QualityReport {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("report cache read failed", map[string]interface{}{"error": err.Error()})
		}
		return nil
	}

	var report models.QualityReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil
	}
	return &report
}

func (s *Service) toCache(ctx context.Context, key string, report *models.QualityReport) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("report cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

func cacheKey(content, title string) string {
	h := sha256.New()
	h.Write([]byte(title))
	h.Write([]byte{0})
	h.Write([]byte(content))
	return "quality:report:" + hex.EncodeToString(h.Sum(nil))
}
