package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fazil-api/prayer-times-service/internal/cache"
	"github.com/fazil-api/prayer-times-service/internal/calibration"
	"github.com/fazil-api/prayer-times-service/internal/config"
	httphandler "github.com/fazil-api/prayer-times-service/internal/http"
	"github.com/fazil-api/prayer-times-service/internal/lifecycle"
	"github.com/fazil-api/prayer-times-service/internal/observability"
	"github.com/fazil-api/prayer-times-service/internal/prayer"
	"github.com/fazil-api/prayer-times-service/internal/service"
	"github.com/fazil-api/prayer-times-service/internal/store"
)

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	table := calibration.NewTable()
	calculator := prayer.NewCalculator(table)
	resultCache := cache.New(cfg.CacheCapacity)
	logger.Info("result cache initialized", zap.Int("capacity", cfg.CacheCapacity))

	var st store.Store
	if cfg.PersistenceEnabled {
		pg, err := store.NewPostgres(cfg.PostgresDSN)
		if err != nil {
			logger.Fatal("postgres store", zap.Error(err))
		}
		st = pg
		logger.Info("persistence enabled")
	}

	ttl := service.TTLPolicy{
		Today:  cfg.TTLToday,
		Future: cfg.TTLFuture,
		Past:   cfg.TTLPast,
		Qibla:  cfg.TTLQibla,
	}
	prayerService := service.NewPrayerService(calculator, resultCache, st, logger, ttl)

	if cfg.WarmCache {
		warmer := cache.NewWarmer(prayerService, logger)
		warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
		sched, err := warmer.Schedule(warmCtx, cfg.WarmLocations, cfg.WarmCron)
		warmCancel()
		if err != nil {
			logger.Fatal("cache warming", zap.Error(err))
		}
		defer sched.Stop()
	}

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}
	handler := httphandler.NewHandler(prayerService, table, logger)

	router := mux.NewRouter()
	router.Use(httphandler.CorrelationIDMiddleware(logger))
	router.Use(httphandler.MetricsMiddleware)
	router.HandleFunc("/health", handler.GetHealth).Methods("GET")
	router.Handle("/metrics", observability.MetricsHandler())

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(httphandler.RateLimitMiddleware(limiter))
	api.Use(httphandler.TimeoutMiddleware(cfg.RequestTimeout))
	api.HandleFunc("/times/daily", handler.GetDailyTimes).Methods("GET")
	api.HandleFunc("/times/monthly", handler.GetMonthlyTimes).Methods("GET")
	api.HandleFunc("/qibla", handler.GetQibla).Methods("GET")
	api.HandleFunc("/countries", handler.GetCountries).Methods("GET")
	api.HandleFunc("/cache/stats", handler.GetCacheStats).Methods("GET")

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", ":"+cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	<-ctx.Done()
	stop()

	logger.Info("graceful shutdown triggered")
	lifecycle.SetShuttingDown(true)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if st != nil {
		if err := st.Close(); err != nil {
			logger.Error("store close", zap.Error(err))
		}
	}
	logger.Info("shutdown complete")
}
