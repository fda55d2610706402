package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fazil-api/prayer-times-service/internal/models"
	"github.com/fazil-api/prayer-times-service/internal/observability"
)

// TimesFetcher is implemented by the service layer to compute (and cache)
// daily times. Declared here to avoid a circular dependency on the service
// package.
type TimesFetcher interface {
	DailyTimes(ctx context.Context, loc models.Location, date models.Date, timezoneOffsetHours float64, country, city string) (models.DailyPrayerTimes, error)
}

// WarmLocation is one popular location to pre-compute.
type WarmLocation struct {
	Latitude       float64 `yaml:"latitude"`
	Longitude      float64 `yaml:"longitude"`
	Country        string  `yaml:"country"`
	City           string  `yaml:"city"`
	TimezoneOffset float64 `yaml:"timezone_offset"`
}

// Warmer pre-populates the cache by computing today's and tomorrow's times
// for a list of popular locations through the same service entry points
// request traffic uses.
type Warmer struct {
	fetcher TimesFetcher
	logger  *zap.Logger
}

// NewWarmer creates a Warmer using the given fetcher and logger.
func NewWarmer(fetcher TimesFetcher, logger *zap.Logger) *Warmer {
	return &Warmer{fetcher: fetcher, logger: logger}
}

// Warm computes today and tomorrow for each location concurrently.
// Returns an aggregated error if any location failed.
func (w *Warmer) Warm(ctx context.Context, locations []WarmLocation) error {
	start := time.Now()
	observability.CacheWarmingTotal.Inc()
	if w.logger != nil {
		w.logger.Info("warming cache", zap.Int("locations", len(locations)))
	}

	now := time.Now().UTC()
	dates := []models.Date{models.DateOf(now), models.DateOf(now.AddDate(0, 0, 1))}

	var wg sync.WaitGroup
	errCh := make(chan error, len(locations)*len(dates))
	for _, loc := range locations {
		for _, date := range dates {
			loc, date := loc, date
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := w.fetcher.DailyTimes(ctx,
					models.Location{Latitude: loc.Latitude, Longitude: loc.Longitude},
					date, loc.TimezoneOffset, loc.Country, loc.City)
				if err != nil {
					errCh <- fmt.Errorf("warm %s %s: %w", loc.Country, date, err)
				}
			}()
		}
	}
	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	duration := time.Since(start).Seconds()
	observability.CacheWarmingDurationSeconds.Observe(duration)
	if w.logger != nil {
		w.logger.Info("cache warming complete",
			zap.Int("locations", len(locations)),
			zap.Int("errors", len(errs)),
			zap.Float64("duration_seconds", duration))
	}
	if len(errs) > 0 {
		observability.CacheWarmingErrorsTotal.Inc()
		return fmt.Errorf("cache warming: %v", errs)
	}
	return nil
}

// Schedule runs Warm on the given cron expression until the returned cron
// is stopped. An initial warm runs immediately.
func (w *Warmer) Schedule(ctx context.Context, locations []WarmLocation, cronExpr string) (*cron.Cron, error) {
	if err := w.Warm(ctx, locations); err != nil && w.logger != nil {
		w.logger.Warn("initial cache warm failed", zap.Error(err))
	}
	c := cron.New()
	_, err := c.AddFunc(cronExpr, func() {
		if err := w.Warm(context.Background(), locations); err != nil && w.logger != nil {
			w.logger.Warn("scheduled cache warm failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule cache warming %q: %w", cronExpr, err)
	}
	c.Start()
	return c, nil
}
