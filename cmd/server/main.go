package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/crickd/insights-engine/internal/config"
	"github.com/crickd/insights-engine/internal/ingest"
	"github.com/crickd/insights-engine/internal/metrics"
	"github.com/crickd/insights-engine/internal/report"
	"github.com/crickd/insights-engine/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	// --- Initialize store ---
	var st store.Store
	var insightsCache *store.InsightsCache
	var cleanup []func()

	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "err", err)
			os.Exit(1)
		}
		cleanup = append(cleanup, pool.Close)
		st = store.NewPostgresStore(pool)
		slog.Info("connected to PostgreSQL")
	} else {
		slog.Warn("DATABASE_URL not set, using in-memory store (data will not persist)")
		st = store.NewMemoryStore()
	}

	// Wrap with Redis read-through cache if configured; insight bundles are
	// cached under their (match, delivery count, snapshot version) key.
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("invalid REDIS_URL", "err", err)
			os.Exit(1)
		}
		rdb := redis.NewClient(opt)
		cleanup = append(cleanup, func() { rdb.Close() })
		st = store.NewCachedStore(st, rdb, cfg.CacheTTL)
		insightsCache = store.NewInsightsCache(rdb, cfg.CacheTTL)
		slog.Info("Redis cache enabled", "ttl", cfg.CacheTTL.String())
	}

	defer func() {
		for _, fn := range cleanup {
			fn()
		}
	}()

	// --- WebSocket hub ---
	wsHub := report.NewWSHub()
	go wsHub.Run()

	// --- Report service ---
	normalizer := ingest.NewNormalizer(cfg.DefaultInning)
	reportSvc := report.NewService(st, insightsCache, normalizer, wsHub)

	// --- HTTP router ---
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(metrics.Middleware)

	// CORS middleware for dashboard cross-origin requests.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"insights-engine"}`))
	})

	// Prometheus metrics endpoint.
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// WebSocket endpoint for insight change notifications.
		r.Get("/ws", wsHub.HandleWS)

		// Match management.
		r.Get("/matches", reportSvc.ListMatches)
		r.Post("/matches", reportSvc.CreateMatch)
		r.Get("/matches/{matchID}", reportSvc.GetMatch)
		r.Post("/matches/{matchID}/complete", reportSvc.CompleteMatch)

		// Ledger and snapshot ingestion.
		r.Post("/matches/{matchID}/deliveries", reportSvc.IngestDeliveries)
		r.Put("/matches/{matchID}/snapshot", reportSvc.PutSnapshot)

		// Derived analytics.
		r.Get("/matches/{matchID}/insights", reportSvc.GetInsights)
		r.Get("/matches/{matchID}/insights/manhattan", reportSvc.GetManhattan)
		r.Get("/matches/{matchID}/insights/worm", reportSvc.GetWorm)
		r.Get("/matches/{matchID}/insights/scoring", reportSvc.GetScoring)
		r.Get("/matches/{matchID}/insights/runrate", reportSvc.GetRunRate)
		r.Get("/matches/{matchID}/insights/partnerships", reportSvc.GetPartnerships)
		r.Get("/matches/{matchID}/insights/phases", reportSvc.GetPhases)
		r.Get("/matches/{matchID}/insights/wagonwheel", reportSvc.GetWagonWheel)
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("insights-engine listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	slog.Info("shutting down insights-engine...")
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "err", err)
	}
	fmt.Println("insights-engine stopped")
}
