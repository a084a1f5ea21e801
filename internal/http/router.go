// Package http assembles the okreads API routes and middleware.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"okreads/internal/book"
	"okreads/internal/httpx"
	"okreads/internal/readinglist"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	AllowedOrigins []string
	EnableHSTS     bool
	MaxBodyBytes   int64
	RateLimitRPS   float64
	RateLimitBurst int
}

type Deps struct {
	ReadingList *readinglist.HTTPHandler
	Books       *book.HTTPHandler
	// Ready reports whether backing stores are reachable. nil means always ready.
	Ready func(ctx context.Context) error
	// Registry receives the HTTP metrics and is served on /metrics. Optional.
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// Router is the API handler. Close releases the rate limiter.
type Router struct {
	http.Handler
	limiter *httpx.RateLimitMiddleware
}

func (rt *Router) Close() {
	if rt.limiter != nil {
		rt.limiter.Close()
	}
}

func NewRouter(cfg Config, deps Deps) *Router {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if deps.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := deps.Ready(ctx); err != nil {
				deps.Logger.Warn("readiness check failed", "err", err)
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	api := http.NewServeMux()
	api.HandleFunc("GET /api/reading-list/{$}", deps.ReadingList.GetList)
	api.HandleFunc("POST /api/reading-list/{$}", deps.ReadingList.Add)
	api.HandleFunc("PUT /api/reading-list/{id}/finished", deps.ReadingList.MarkAsRead)
	api.HandleFunc("DELETE /api/reading-list/{id}", deps.ReadingList.Remove)
	api.HandleFunc("GET /api/books", deps.Books.Search)

	middlewares := []func(http.Handler) http.Handler{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(deps.Logger),
		httpx.RecoveryMiddleware(deps.Logger),
	}
	if deps.Registry != nil {
		metrics := httpx.NewMetrics(deps.Registry)
		middlewares = append(middlewares, metrics.Middleware)
		mux.Handle("GET /metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	rt := &Router{}
	if cfg.RateLimitRPS > 0 {
		rt.limiter = httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
		middlewares = append(middlewares, rt.limiter.Middleware)
	}
	middlewares = append(middlewares,
		httpx.CORSMiddleware(cfg.AllowedOrigins),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
	)
	if cfg.MaxBodyBytes > 0 {
		middlewares = append(middlewares, httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	}

	mux.Handle("/api/", httpx.Chain(api, middlewares...))
	rt.Handler = mux
	return rt
}
