// internal/batch/runner.go

// Package batch drives the content pipeline: one create operation per media
// group, sequentially, with a fixed delay between items. A single item's
// failure is counted and logged, never fatal; the only thing that aborts a
// run is the storage listing itself failing.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	commonerrors "estate-pipeline/internal/common/errors"
	"estate-pipeline/internal/common/logger"
	"estate-pipeline/internal/common/metrics"
	"estate-pipeline/internal/common/observability"
	"estate-pipeline/internal/facts"
	"estate-pipeline/internal/models"
	"estate-pipeline/internal/slugger"
)

// Grouper lists the storage tree into work items.
type Grouper interface {
	ListAndGroup(ctx context.Context) ([]models.MediaGroup, int, error)
}

// Generator is the provider router's generate surface. It never fails.
type Generator interface {
	Generate(ctx context.Context, req *models.GenerationRequest) (*models.GeneratedContent, string)
}

// Analyzer scores content. It never fails either; at worst the local
// heuristic answers.
type Analyzer interface {
	Analyze(ctx context.Context, content, title string) *models.QualityReport
}

// Improver attempts a no-regression rewrite.
type Improver interface {
	Improve(ctx context.Context, content, title string, analysis *models.QualityReport) *models.ImprovementResult
}

// ContentStore is the persistence surface the runner needs.
type ContentStore interface {
	FindBySlug(ctx context.Context, slug string) (*models.ContentRecord, error)
	Insert(ctx context.Context, rec *models.ContentRecord) (string, error)
	Update(ctx context.Context, id string, rec *models.ContentRecord) error
}

// Notifier receives the final counts. May be nil.
type Notifier interface {
	NotifyBatchFinished(ctx context.Context, result *models.BatchResult)
}

// Options carry the runner's tunables.
type Options struct {
	ItemDelay        time.Duration
	TargetWordCount  int
	ImproveThreshold int
}

// ErrRunInProgress is returned when a run is requested while another one is
// still executing. One run at a time keeps provider traffic bounded and
// keeps the slug read-then-write single-writer, no matter which trigger
// (HTTP or the storage watcher) asked.
var ErrRunInProgress = errors.New("batch run already in progress")

// Runner executes batch runs. Single-threaded by design: the sequential
// loop is the rate limiter in front of the providers, and Run admits only
// one caller at a time.
type Runner struct {
	grouper  Grouper
	router   Generator
	analyzer Analyzer
	improver Improver
	store    ContentStore
	slugs    *slugger.Resolver
	notifier Notifier
	obs      *observability.Observability
	opts     Options
	logger   logger.Logger

	running atomic.Bool
}

func NewRunner(
	grouper Grouper,
	router Generator,
	analyzer Analyzer,
	improver Improver,
	store ContentStore,
	slugs *slugger.Resolver,
	notifier Notifier,
	obs *observability.Observability,
	opts Options,
	log logger.Logger,
) *Runner {
	if opts.ImproveThreshold <= 0 {
		opts.ImproveThreshold = 60
	}
	return &Runner{
		grouper:  grouper,
		router:   router,
		analyzer: analyzer,
		improver: improver,
		store:    store,
		slugs:    slugs,
		notifier: notifier,
		obs:      obs,
		opts:     opts,
		logger:   log,
	}
}

// Run executes one full batch. It returns ErrRunInProgress when a run is
// already executing, or the storage listing error when the listing itself
// fails; per-item failures surface through the errors count.
func (r *Runner) Run(ctx context.Context) (*models.BatchResult, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer r.running.Store(false)

	started := time.Now()

	groups, skipped, err := r.grouper.ListAndGroup(ctx)
	if err != nil {
		return nil, err
	}

	result := &models.BatchResult{
		Skipped: skipped,
		Total:   len(groups) + skipped,
	}

	for _, group := range groups {
		itemStarted := time.Now()
		if err := r.processItem(ctx, group); err != nil {
			result.Errors++
			metrics.BatchItemsFailed.Inc()
			r.recordItem(ctx, itemStarted, "failed")
			r.logger.WithError(err).Error("batch item failed", map[string]interface{}{
				"group": group.FolderKey,
			})
			continue
		}
		result.Created++
		metrics.BatchItemsCreated.Inc()
		r.recordItem(ctx, itemStarted, "created")

		if r.opts.ItemDelay > 0 {
			select {
			case <-time.After(r.opts.ItemDelay):
			case <-ctx.Done():
			}
		}
	}

	result.Message = fmt.Sprintf("Toplu içerik üretimi tamamlandı: %d oluşturuldu, %d atlandı, %d hata",
		result.Created, result.Skipped, result.Errors)

	metrics.BatchDuration.Observe(time.Since(started).Seconds())
	r.logger.Info("batch finished", map[string]interface{}{
		"created": result.Created,
		"skipped": result.Skipped,
		"errors":  result.Errors,
		"total":   result.Total,
		"took":    time.Since(started).String(),
	})

	if r.notifier != nil {
		r.notifier.NotifyBatchFinished(ctx, result)
	}
	return result, nil
}

// processItem walks one group through the per-item state machine. Any
// panic inside the sequence is recovered here and counted against the
// item, so the batch loop keeps going.
func (r *Runner) processItem(ctx context.Context, group models.MediaGroup) (err error) {
	state := models.StatePending
	defer func() {
		if rec := recover(); rec != nil {
			err = commonerrors.NewBatchItemFailedError(group.FolderKey,
				fmt.Errorf("panic in state %s: %v", state, rec))
		}
	}()

	state = models.StateExtracting
	bundle := facts.Extract(group.FolderKey)

	state = models.StateGenerating
	req := &models.GenerationRequest{
		Kind:      models.KindListing,
		Topic:     group.FolderKey,
		Facts:     bundle,
		ImageURLs: group.URLs(),
		Constraints: models.Constraints{
			TargetWordCount: r.opts.TargetWordCount,
			Locale:          "tr",
		},
	}
	content, providerName := r.router.Generate(ctx, req)
	if content == nil {
		return commonerrors.NewBatchItemFailedError(group.FolderKey,
			fmt.Errorf("generation produced no content"))
	}

	state = models.StateReconciling
	merged := facts.Merge(bundle, content.Facts)

	report := r.analyzer.Analyze(ctx, content.Body, content.Title)
	if report.HumanLikeScore < r.opts.ImproveThreshold && r.improver != nil {
		improved := r.improver.Improve(ctx, content.Body, content.Title, report)
		if improved.ShouldPersist() {
			content.Body = improved.Improved
		}
	}

	state = models.StateSlugging
	slug := r.slugs.Resolve(content.Title)
	finalSlug, err := r.slugs.EnsureUnique(ctx, slug, r.slugExists)
	if err != nil {
		return commonerrors.NewBatchItemFailedError(group.FolderKey, err)
	}

	state = models.StatePersisting
	record := &models.ContentRecord{
		Title:           content.Title,
		Slug:            finalSlug,
		Body:            content.Body,
		Excerpt:         content.Excerpt,
		MetaDescription: content.MetaDescription,
		Keywords:        content.Keywords,
		Category:        string(models.KindListing),
		Status:          models.StatusPublished,
	}
	facts.ApplyToRecord(record, merged)

	id, err := r.store.Insert(ctx, record)
	if err != nil {
		return commonerrors.NewBatchItemFailedError(group.FolderKey, err)
	}

	r.logger.Info("content created", map[string]interface{}{
		"id":       id,
		"slug":     finalSlug,
		"provider": providerName,
		"score":    report.HumanLikeScore,
	})
	return nil
}

// ImproveBySlug runs the improvement pass on one existing record. The
// no-regression rule applies: the record is only updated when the score
// actually rose, otherwise it is left untouched and reported as skipped.
func (r *Runner) ImproveBySlug(ctx context.Context, slug string) (*models.ImprovementResult, bool, error) {
	record, err := r.store.FindBySlug(ctx, slug)
	if err != nil {
		return nil, false, err
	}
	if record == nil {
		return nil, false, fmt.Errorf("no content with slug %q", slug)
	}

	report := r.analyzer.Analyze(ctx, record.Body, record.Title)
	improved := r.improver.Improve(ctx, record.Body, record.Title, report)
	if !improved.ShouldPersist() {
		r.logger.Info("improvement skipped, no score gain", map[string]interface{}{
			"slug":   slug,
			"before": improved.Score.Before,
			"after":  improved.Score.After,
		})
		return improved, false, nil
	}

	record.Body = improved.Improved
	if err := r.store.Update(ctx, record.ID, record); err != nil {
		return improved, false, err
	}
	return improved, true, nil
}

func (r *Runner) slugExists(ctx context.Context, slug string) (bool, error) {
	record, err := r.store.FindBySlug(ctx, slug)
	if err != nil {
		return false, err
	}
	return record != nil, nil
}

func (r *Runner) recordItem(ctx context.Context, started time.Time, status string) {
	if r.obs == nil {
		return
	}
	r.obs.RecordItemProcessed(ctx, status)
	r.obs.RecordItemDuration(ctx, time.Since(started), status)
}
