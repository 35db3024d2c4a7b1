// Command posv2d runs the POS webhook validation simulator: the
// validation API, history store, and Prometheus metrics endpoint.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	posv2 "github.com/NetRider88/POSV2"
	"github.com/NetRider88/POSV2/history"
	"github.com/NetRider88/POSV2/history/memory"
	"github.com/NetRider88/POSV2/history/redisstore"
	"github.com/NetRider88/POSV2/httpapi"
	"github.com/NetRider88/POSV2/observability"
)

func main() {
	// Load .env file; absence is fine.
	_ = godotenv.Load()

	logger := newLogger(getenv("LOG_LEVEL", "info"))

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	store, closeStore, err := newHistoryStore(logger)
	if err != nil {
		logger.Error("history store init failed", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	validator, err := posv2.New(
		posv2.WithLogger(logger),
		posv2.WithMetrics(metrics),
		posv2.WithRequestTimeout(durationEnv("IMAGE_FETCH_TIMEOUT", 30*time.Second)),
	)
	if err != nil {
		logger.Error("validator init failed", "error", err)
		os.Exit(1)
	}

	r := mux.NewRouter()
	httpapi.NewService(validator, store, metrics, logger).RegisterRoutes(r)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	addr := getenv("POSV2_HTTP_ADDR", ":8080")
	server := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}()

	logger.Info("posv2d listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newHistoryStore picks Redis when REDIS_ADDR is set, in-memory otherwise.
func newHistoryStore(logger *slog.Logger) (history.Store, func(), error) {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		store := memory.New()
		return store, func() { _ = store.Close() }, nil
	}

	rdb := goredis.NewClient(&goredis.Options{Addr: redisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}

	logger.Info("using redis history store", "addr", redisAddr)
	store := redisstore.New(rdb)
	return store, func() { _ = store.Close() }, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
