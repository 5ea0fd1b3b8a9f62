// Package main wires together the question engine service binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
	"go.uber.org/zap"

	"github.com/engagekit/question-engine/internal/api"
	"github.com/engagekit/question-engine/internal/archive"
	"github.com/engagekit/question-engine/internal/cache"
	"github.com/engagekit/question-engine/internal/config"
	"github.com/engagekit/question-engine/internal/fetch"
	"github.com/engagekit/question-engine/internal/logging"
	"github.com/engagekit/question-engine/internal/metrics"
	"github.com/engagekit/question-engine/internal/publish"
	"github.com/engagekit/question-engine/internal/question"
	"github.com/engagekit/question-engine/internal/store"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.Init()

	responseCache, closeCache, err := buildCache(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("cache init failed", zap.Error(err))
	}
	defer closeCache()
	if cfg.Cache.FlushOnStart {
		if err := responseCache.Flush(ctx); err != nil {
			logger.Warn("cache flush on start failed", zap.Error(err))
		}
	}

	questionStore, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		logger.Fatal("store init failed", zap.Error(err))
	}
	defer closeStore()

	pageArchive, err := buildArchive(ctx, cfg)
	if err != nil {
		logger.Fatal("archive init failed", zap.Error(err))
	}

	publisher, closePublisher, err := buildPublisher(ctx, cfg)
	if err != nil {
		logger.Fatal("publisher init failed", zap.Error(err))
	}
	defer closePublisher()

	probeFetcher := fetch.NewColly(fetch.CollyConfig{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.FetchTimeout(),
	})
	var headless fetch.Fetcher
	var detector *fetch.Detector
	if cfg.Headless.Enabled {
		headlessFetcher, err := fetch.NewHeadless(fetch.HeadlessConfig{
			MaxParallel:       cfg.Headless.MaxParallel,
			UserAgent:         cfg.Fetch.UserAgent,
			NavigationTimeout: cfg.NavTimeout(),
		})
		if err != nil {
			logger.Warn("headless fetcher init failed", zap.Error(err))
		} else {
			headless = headlessFetcher
			detector = fetch.NewDetector(cfg.Headless.MinTextLength)
			defer headlessFetcher.Close()
		}
	}

	generator := question.NewGenerator(question.NewProseTagger(), question.NewRand())

	service := api.NewService(
		probeFetcher,
		headless,
		detector,
		generator,
		responseCache,
		questionStore,
		pageArchive,
		publisher,
		logger.Named("service"),
	)
	apiServer := api.NewServer(service, cfg, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

func buildCache(ctx context.Context, cfg config.Config, logger *zap.Logger) (cache.Cache, func(), error) {
	if cfg.Cache.Backend == "redis" {
		redisCache, err := cache.NewRedis(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return redisCache, func() {
			if err := redisCache.Close(); err != nil {
				logger.Warn("redis close failed", zap.Error(err))
			}
		}, nil
	}
	return cache.NewMemory(), func() {}, nil
}

func buildStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	if cfg.DB.Backend == "postgres" {
		pg, err := store.NewPostgres(ctx, store.PostgresConfig{
			DSN:      cfg.DB.DSN,
			Table:    cfg.DB.Table,
			MaxConns: int32(cfg.DB.MaxConns),
			MinConns: int32(cfg.DB.MinConns),
		})
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}
	return store.NewMemory(), func() {}, nil
}

func buildArchive(ctx context.Context, cfg config.Config) (archive.Archive, error) {
	switch cfg.Archive.Backend {
	case "local":
		return archive.NewLocal(cfg.Archive.LocalDir)
	case "gcs":
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("gcs client: %w", err)
		}
		return archive.NewGCS(client, cfg.Archive.GCSBucket)
	default:
		return archive.NewMemory(), nil
	}
}

func buildPublisher(ctx context.Context, cfg config.Config) (publish.Publisher, func(), error) {
	if !cfg.PubSub.Enabled {
		return publish.NewMemory(), func() {}, nil
	}
	client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("pubsub client: %w", err)
	}
	topic := client.Topic(cfg.PubSub.TopicName)
	pub, err := publish.NewPubSub(topic)
	if err != nil {
		return nil, nil, err
	}
	return pub, func() {
		topic.Stop()
		_ = client.Close()
	}, nil
}
