package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bizfaq/internal/config"
	"github.com/kailas-cloud/bizfaq/internal/db"
	dbRedis "github.com/kailas-cloud/bizfaq/internal/db/redis"
	"github.com/kailas-cloud/bizfaq/internal/domain"
	"github.com/kailas-cloud/bizfaq/internal/domain/document"
	logpkg "github.com/kailas-cloud/bizfaq/internal/logger"
	"github.com/kailas-cloud/bizfaq/internal/metrics"
	"github.com/kailas-cloud/bizfaq/internal/source"
	chiTransport "github.com/kailas-cloud/bizfaq/internal/transport/chi"
	"github.com/kailas-cloud/bizfaq/internal/usecase/answer"
	"github.com/kailas-cloud/bizfaq/internal/usecase/corpus"
	healthuc "github.com/kailas-cloud/bizfaq/internal/usecase/health"
	"github.com/kailas-cloud/bizfaq/internal/usecase/reload"
	"github.com/kailas-cloud/bizfaq/internal/version"
	"github.com/kailas-cloud/bizfaq/internal/watch"
)

// tableSource is what every driver provides: fetching for the loader and
// stat for the health probe.
type tableSource interface {
	corpus.Source
	source.Statter
}

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting bizfaq API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("source_driver", cfg.Source.Driver),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterRetrievalMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	src, closeSource, err := buildSource(ctx, cfg.Source, logger)
	if err != nil {
		logger.Fatal("Failed to create table source", zap.Error(err))
	}
	defer closeSource()

	tables := configuredTables(cfg.Source)
	locations := make([]string, len(tables))
	for i, t := range tables {
		locations[i] = t.Location
	}

	loader := corpus.New(src, tables)
	composer := answer.New(nil, []string{cfg.Source.FAQ, cfg.Source.Business})
	reloader := reload.New(loader, composer, retrievalConfig(cfg.Retrieval))

	// A failed first load is not fatal: /health reports it and POST /reload retries.
	if stats, err := reloader.Reload(ctx); err != nil {
		logger.Error("Initial index build failed", zap.Error(err))
	} else {
		logger.Info("Index ready",
			zap.String("build_id", stats.BuildID),
			zap.Int("documents", stats.Documents),
			zap.Int("terms", stats.Terms),
		)
	}

	if cfg.Source.Watch {
		files := make([]string, len(locations))
		for i, loc := range locations {
			files[i] = source.NewFile("").Path(loc)
		}
		w := watch.New(files, time.Duration(cfg.Source.WatchDebounceMS)*time.Millisecond,
			func(ctx context.Context) {
				if _, err := reloader.Reload(ctx); err != nil {
					logger.Error("Rebuild after file change failed", zap.Error(err))
				}
			}, logger)
		go func() {
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Table watcher stopped", zap.Error(err))
			}
		}()
		logger.Info("Watching table files", zap.Strings("files", files))
	}

	healthSvc := healthuc.New(reloader, source.NewProber(src, locations...))
	server := chiTransport.NewServer(reloader, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildSource picks the table driver. The returned func releases its resources.
func buildSource(ctx context.Context, cfg config.SourceConfig, logger *zap.Logger) (tableSource, func(), error) {
	switch cfg.Driver {
	case config.DriverFile:
		return source.NewFile(""), func() {}, nil
	case config.DriverHTTP:
		return source.NewHTTP(time.Duration(cfg.HTTPTimeoutSec) * time.Second), func() {}, nil
	case config.DriverRedis:
		var store db.Store
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Redis.Addrs,
			Password: cfg.Redis.Password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create redis store: %w", err)
		}
		if err := store.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("redis not ready: %w", err)
		}
		logger.Info("Connected to redis", zap.Strings("addrs", cfg.Redis.Addrs))
		return source.NewRedis(store), store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown source driver %q", cfg.Driver)
	}
}

// configuredTables lists business and FAQ first, then extra kinds by name.
func configuredTables(cfg config.SourceConfig) []corpus.Table {
	tables := []corpus.Table{
		{Kind: document.Business, Location: cfg.Business},
		{Kind: document.FAQ, Location: cfg.FAQ},
	}
	for _, kind := range slices.Sorted(maps.Keys(cfg.Extra)) {
		tables = append(tables, corpus.Table{Kind: document.Kind(kind), Location: cfg.Extra[kind]})
	}
	return tables
}

func retrievalConfig(c config.RetrievalConfig) domain.RetrievalConfig {
	out := domain.DefaultRetrievalConfig()
	out.DefaultTopK = c.DefaultTopK
	out.MaxTopK = c.MaxTopK
	out.MaxQueryLength = c.MaxQueryLength
	if c.MinScore != nil {
		out.MinScore = *c.MinScore
	}
	return out
}
