// Package store provides optional durable persistence of computed daily
// prayer times. The default deployment runs without it; a store failure is
// never allowed to fail a request.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/fazil-api/prayer-times-service/internal/models"
)

// Store is implemented by persistence backends for daily prayer times.
type Store interface {
	SaveDailyTimes(ctx context.Context, times models.DailyPrayerTimes) error
	Close() error
}

// Noop discards all writes. Used when persistence is disabled and in tests.
type Noop struct{}

func (Noop) SaveDailyTimes(context.Context, models.DailyPrayerTimes) error { return nil }

func (Noop) Close() error { return nil }

const schema = `
CREATE TABLE IF NOT EXISTS daily_prayer_times (
	date             date             NOT NULL,
	latitude         double precision NOT NULL,
	longitude        double precision NOT NULL,
	country          text             NOT NULL,
	city             text             NOT NULL DEFAULT '',
	timezone_offset  double precision NOT NULL,
	times            jsonb            NOT NULL,
	qibla_degrees    double precision NOT NULL,
	asr_approximated boolean          NOT NULL DEFAULT false,
	created_at       timestamptz      NOT NULL DEFAULT now(),
	PRIMARY KEY (date, latitude, longitude, country)
)`

// Postgres persists daily times to a PostgreSQL table, upserting on the
// (date, location, country) key.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres connects to the given DSN and ensures the schema exists.
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Postgres{db: db}, nil
}

// SaveDailyTimes upserts one computed day.
func (p *Postgres) SaveDailyTimes(ctx context.Context, times models.DailyPrayerTimes) error {
	payload, err := json.Marshal(times.Times)
	if err != nil {
		return fmt.Errorf("marshal times: %w", err)
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO daily_prayer_times
			(date, latitude, longitude, country, city, timezone_offset, times, qibla_degrees, asr_approximated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (date, latitude, longitude, country) DO UPDATE SET
			city = EXCLUDED.city,
			timezone_offset = EXCLUDED.timezone_offset,
			times = EXCLUDED.times,
			qibla_degrees = EXCLUDED.qibla_degrees,
			asr_approximated = EXCLUDED.asr_approximated`,
		times.Date, times.Location.Latitude, times.Location.Longitude,
		times.Country, times.City, times.TimezoneOffset,
		payload, times.QiblaDegrees, times.AsrApproximated)
	if err != nil {
		return fmt.Errorf("upsert daily times: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error { return p.db.Close() }
