package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"okreads/internal/book"
	"okreads/internal/config"
	apphttp "okreads/internal/http"
	"okreads/internal/platform/logging"
	"okreads/internal/platform/openlibrary"
	"okreads/internal/readinglist"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.MustLoadAPI()
	logger := logging.Setup(cfg.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool := mustOpenDB(ctx, cfg.DatabaseDSN, logger)
	defer dbPool.Close()

	var cache book.Cache
	rdb := openRedis(ctx, cfg.Redis, logger)
	if rdb != nil {
		defer rdb.Close()
		cache = book.NewRedisCache(rdb, cfg.Redis.SearchTTL)
	}

	olClient := openlibrary.NewClient(cfg.OpenLibrary.BaseURL, cfg.OpenLibrary.UserAgent, cfg.OpenLibrary.RPS, cfg.OpenLibrary.MaxRetries)
	bookService := book.NewService(book.NewOpenLibraryCatalog(olClient), cache, cfg.OpenLibrary.SearchLimit, logger)
	readingListService := readinglist.NewService(readinglist.NewPostgresRepo(dbPool, cfg.DBTimeout))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := apphttp.NewRouter(apphttp.Config{
		AllowedOrigins: cfg.AllowedOrigins,
		EnableHSTS:     cfg.EnableHSTS,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, apphttp.Deps{
		ReadingList: readinglist.NewHTTPHandler(readingListService),
		Books:       book.NewHTTPHandler(bookService),
		Ready: func(ctx context.Context) error {
			if err := dbPool.Ping(ctx); err != nil {
				return err
			}
			if rdb != nil {
				return rdb.Ping(ctx).Err()
			}
			return nil
		},
		Registry: registry,
		Logger:   logger,
	})
	defer router.Close()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
	case err := <-serverErr:
		logger.Error("server error", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "err", err)
		return
	}
	logger.Info("server stopped")
}

func mustOpenDB(ctx context.Context, dsn string, logger *slog.Logger) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Error("cannot create db pool", "err", err)
		os.Exit(1)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		logger.Error("cannot ping database", "dsn", redactDSN(dsn), "err", err)
		os.Exit(1)
	}
	logger.Info("database connection OK")
	return pool
}

// openRedis returns nil when no address is configured or the server is
// unreachable; search then runs uncached.
func openRedis(ctx context.Context, cfg config.Redis, logger *slog.Logger) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	pong, err := rdb.Ping(pingCtx).Result()
	if err != nil {
		logger.Warn("redis unavailable, search cache disabled", "addr", cfg.Addr, "err", err)
		_ = rdb.Close()
		return nil
	}
	logger.Info("redis connected", "pong", pong)
	return rdb
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
