// Package service wires the prayer time calculator, the result cache and
// the optional persistence store into the operations the transport layer
// exposes.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fazil-api/prayer-times-service/internal/cache"
	"github.com/fazil-api/prayer-times-service/internal/models"
	"github.com/fazil-api/prayer-times-service/internal/observability"
	"github.com/fazil-api/prayer-times-service/internal/prayer"
	"github.com/fazil-api/prayer-times-service/internal/qibla"
	"github.com/fazil-api/prayer-times-service/internal/store"
	"github.com/fazil-api/prayer-times-service/internal/validation"
)

// PrayerService serves daily, monthly and Qibla requests through the
// result cache, choosing TTLs by the semantic meaning of the requested
// date. The cache is injected so tests can run against isolated instances.
type PrayerService struct {
	calc   *prayer.Calculator
	cache  *cache.Cache
	store  store.Store
	logger *zap.Logger
	ttl    TTLPolicy

	now func() time.Time // replaceable in tests
}

// NewPrayerService creates a PrayerService. store may be a no-op; logger
// is used for fallback and persistence warnings only.
func NewPrayerService(calc *prayer.Calculator, resultCache *cache.Cache, st store.Store, logger *zap.Logger, ttl TTLPolicy) *PrayerService {
	return &PrayerService{
		calc:   calc,
		cache:  resultCache,
		store:  st,
		logger: logger,
		ttl:    ttl,
		now:    time.Now,
	}
}

// loggerFromContext extracts a request-scoped zap.Logger from ctx if the
// middleware put one there; falls back to the service logger.
func (s *PrayerService) loggerFromContext(ctx context.Context) *zap.Logger {
	if v := ctx.Value("logger"); v != nil {
		if l, ok := v.(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return s.logger
}

// DailyTimes returns the calibrated times for one location and date,
// computing on cache miss. TTL is selected per the date's relation to the
// caller's UTC today.
func (s *PrayerService) DailyTimes(ctx context.Context, loc models.Location, date models.Date, timezoneOffsetHours float64, country, city string) (models.DailyPrayerTimes, error) {
	key := cache.Key(cache.NamespaceDailyTimes, loc.Latitude, loc.Longitude, date.String(), country)
	ttl := s.ttl.ForDate(date, models.DateOf(s.now().UTC()))

	computed := false
	v, err := s.cache.GetOrCompute(ctx, key, ttl, func() (any, error) {
		computed = true
		start := time.Now()
		result, err := s.calc.ComputeDailyTimes(loc, date, timezoneOffsetHours, country, city)
		if err != nil {
			return nil, err
		}
		observability.ComputeDurationSeconds.Observe(time.Since(start).Seconds())
		s.recordFallbacks(ctx, result)
		s.persist(ctx, result)
		return result, nil
	})
	if err != nil {
		return models.DailyPrayerTimes{}, err
	}
	if computed {
		observability.CacheMissesTotal.WithLabelValues(cache.NamespaceDailyTimes).Inc()
	} else {
		observability.CacheHitsTotal.WithLabelValues(cache.NamespaceDailyTimes).Inc()
	}
	return v.(models.DailyPrayerTimes), nil
}

// MonthlyTimes computes one entry per day of the requested month, each day
// flowing through the daily cache keys.
func (s *PrayerService) MonthlyTimes(ctx context.Context, loc models.Location, year int, month time.Month, timezoneOffsetHours float64, country, city string) (models.MonthlyPrayerTimes, error) {
	if month < time.January || month > time.December {
		return models.MonthlyPrayerTimes{}, fmt.Errorf("%w: month %d", validation.ErrInvalidDate, month)
	}
	days := make(map[int]map[models.Event]string)
	var countryID string
	var bearing float64
	for day := 1; day <= models.DaysInMonth(year, month); day++ {
		result, err := s.DailyTimes(ctx, loc, models.Date{Year: year, Month: month, Day: day}, timezoneOffsetHours, country, city)
		if err != nil {
			return models.MonthlyPrayerTimes{}, err
		}
		days[day] = result.Times
		countryID = result.Country
		bearing = result.QiblaDegrees
	}
	return models.MonthlyPrayerTimes{
		Year:           year,
		Month:          int(month),
		Location:       loc,
		Country:        countryID,
		TimezoneOffset: timezoneOffsetHours,
		Days:           days,
		QiblaDegrees:   bearing,
	}, nil
}

// Qibla returns the bearing toward the Kaaba, cached by location only.
func (s *PrayerService) Qibla(ctx context.Context, loc models.Location) (float64, error) {
	if err := validation.ValidateCoordinates(loc.Latitude, loc.Longitude); err != nil {
		return 0, err
	}
	key := cache.Key(cache.NamespaceQibla, loc.Latitude, loc.Longitude, "", "")

	computed := false
	v, err := s.cache.GetOrCompute(ctx, key, s.ttl.Qibla, func() (any, error) {
		computed = true
		return qibla.Bearing(loc.Latitude, loc.Longitude), nil
	})
	if err != nil {
		return 0, err
	}
	if computed {
		observability.CacheMissesTotal.WithLabelValues(cache.NamespaceQibla).Inc()
	} else {
		observability.CacheHitsTotal.WithLabelValues(cache.NamespaceQibla).Inc()
	}
	return v.(float64), nil
}

// CacheStats exposes the cache counters for the health and stats endpoints.
func (s *PrayerService) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// recordFallbacks flags approximated results in metrics and logs so they
// are distinguishable from solved geometry.
func (s *PrayerService) recordFallbacks(ctx context.Context, result models.DailyPrayerTimes) {
	logger := s.loggerFromContext(ctx)
	if result.AsrApproximated {
		observability.AsrFallbackTotal.Inc()
		if logger != nil {
			logger.Warn("asr fixed fallback applied",
				zap.String("date", result.Date),
				zap.Float64("latitude", result.Location.Latitude))
		}
	}
	for _, event := range result.FallbackEvents {
		observability.HighLatitudeFallbackTotal.WithLabelValues(string(event)).Inc()
		if logger != nil {
			logger.Debug("high latitude fallback applied",
				zap.String("event", string(event)),
				zap.String("date", result.Date),
				zap.Float64("latitude", result.Location.Latitude))
		}
	}
}

// persist writes the result to the durable store, best effort. A store
// failure is logged and counted but never fails the request.
func (s *PrayerService) persist(ctx context.Context, result models.DailyPrayerTimes) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveDailyTimes(ctx, result); err != nil {
		observability.StoreWritesTotal.WithLabelValues("error").Inc()
		if logger := s.loggerFromContext(ctx); logger != nil {
			logger.Warn("persist daily times failed", zap.String("date", result.Date), zap.Error(err))
		}
		return
	}
	observability.StoreWritesTotal.WithLabelValues("success").Inc()
}
