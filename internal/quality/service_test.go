// internal/quality/service_test.go
package quality

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-pipeline/internal/common/logger"
	"estate-pipeline/internal/models"
)

// countingAnalyzer wraps the local analyzer and counts invocations.
type countingAnalyzer struct {
	calls int
}

func (c *countingAnalyzer) Analyze(ctx context.Context, content, title string) *models.QualityReport {
	c.calls++
	return AnalyzeLocally(content, title)
}

func newTestRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestService_CachesReports(t *testing.T) {
	ctx := context.Background()
	analyzer := &countingAnalyzer{}
	svc := NewService(analyzer, newTestRedis(t), 5*time.Minute, logger.NewNop())

	content := "Bu daire Göztepe semtinde yer alıyor ve denize yürüme mesafesindedir."
	first := svc.Analyze(ctx, content, "İlan")
	second := svc.Analyze(ctx, content, "İlan")

	require.Equal(t, first, second)
	assert.Equal(t, 1, analyzer.calls, "second call must be served from cache")
}

func TestService_DistinctContentDistinctKeys(t *testing.T) {
	ctx := context.Background()
	analyzer := &countingAnalyzer{}
	svc := NewService(analyzer, newTestRedis(t), 5*time.Minute, logger.NewNop())

	svc.Analyze(ctx, "ilk metin burada duruyor", "A")
	svc.Analyze(ctx, "ikinci metin daha farkli", "B")

	assert.Equal(t, 2, analyzer.calls)
}

func TestService_NoCacheStillWorks(t *testing.T) {
	svc := NewService(nil, nil, 0, logger.NewNop())

	report := svc.Analyze(context.Background(), "sade bir metin", "İlan")
	require.NotNil(t, report)
	assert.Equal(t, 70, report.HumanLikeScore)
}

func TestService_BrokenCacheFallsThrough(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	analyzer := &countingAnalyzer{}
	svc := NewService(analyzer, client, time.Minute, logger.NewNop())

	mr.Close() // cache unreachable; analysis must still succeed

	report := svc.Analyze(ctx, "metin", "İlan")
	require.NotNil(t, report)
	assert.Equal(t, 1, analyzer.calls)
}
