// cmd/pipeline-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"estate-pipeline/internal/batch"
	"estate-pipeline/internal/common/config"
	"estate-pipeline/internal/common/database"
	"estate-pipeline/internal/common/logger"
	"estate-pipeline/internal/common/observability"
	"estate-pipeline/internal/grouping"
	"estate-pipeline/internal/improve"
	"estate-pipeline/internal/notify"
	"estate-pipeline/internal/provider"
	"estate-pipeline/internal/quality"
	"estate-pipeline/internal/server"
	"estate-pipeline/internal/slugger"
	"estate-pipeline/internal/storage"
	"estate-pipeline/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting pipeline server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch (optional search mirror) ---
	var search *store.SearchIndexer
	if cfg.Database.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		search = store.NewSearchIndexer(esClient.Client, cfg.Database.Elasticsearch.Index)
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Init Redis (optional quality report cache) ---
	var redisClient *database.RedisClient
	if cfg.Database.Redis.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Pipeline wiring ---
	lister, err := storage.NewLister(cfg.Storage, log)
	if err != nil {
		zapLog.Fatal("storage lister init failed", zap.Error(err))
	}

	router := provider.NewRouter(cfg.Providers, log)

	var qualitySvc *quality.Service
	if redisClient != nil {
		qualitySvc = quality.NewService(router, redisClient.Client,
			time.Duration(cfg.Database.Redis.CacheTTL)*time.Second, log)
	} else {
		qualitySvc = quality.NewService(router, nil, 0, log)
	}

	improver := improve.NewEngine(router, log)
	contentStore := store.NewContentStore(pg.DB, search, log)
	grouper := grouping.NewOrchestrator(lister, cfg.Pipeline.Batch.MinGroupFiles, log)
	slugs := slugger.NewResolver(cfg.Pipeline.Slug.MaxLength)
	dispatcher := notify.NewDispatcher(ctx, cfg.Notifications, log)

	runner := batch.NewRunner(
		grouper, router, qualitySvc, improver, contentStore,
		slugs, dispatcher, obs,
		batch.Options{
			ItemDelay:        cfg.Pipeline.Batch.ItemDelayDuration(),
			TargetWordCount:  cfg.Pipeline.Batch.TargetWordCount,
			ImproveThreshold: cfg.Pipeline.Quality.ImproveThreshold,
		},
		log,
	)

	ready := []server.ReadinessChecker{pg.Ping}
	if redisClient != nil {
		ready = append(ready, redisClient.Ping)
	}

	srv := server.New(cfg.Server, runner, ready, log)

	// --- Watch mode: trigger a batch when new media settles ---
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if cfg.Storage.Watch && cfg.Storage.Mode == "local" {
		watcher, err := storage.NewWatcher(log)
		if err != nil {
			zapLog.Fatal("storage watcher init failed", zap.Error(err))
		}
		defer watcher.Stop()

		signals, err := watcher.Watch(watchCtx, cfg.Storage.RootDir)
		if err != nil {
			zapLog.Fatal("storage watch failed", zap.Error(err))
		}
		go func() {
			for range signals {
				zapLog.Info("new media detected, running batch")
				if _, err := runner.Run(watchCtx); err != nil {
					if errors.Is(err, batch.ErrRunInProgress) {
						zapLog.Info("batch already running, watch signal dropped")
						continue
					}
					zapLog.Error("watch-triggered batch failed", zap.Error(err))
				}
			}
		}()
		zapLog.Info("watch mode enabled", zap.String("dir", cfg.Storage.RootDir))
	}

	// --- Serve ---
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")
	stopWatch()

	shutdownCtx, cancel := context.WithTimeout(ctx,
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}
