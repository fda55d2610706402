package service

import (
	"time"

	"github.com/fazil-api/prayer-times-service/internal/models"
)

// TTLPolicy selects a cache TTL from the semantic meaning of the requested
// date. Past results are pure functions of their inputs and can live
// effectively forever; today's results are refreshed daily because the
// caller's notion of "today" rolls over; future results are deterministic
// but refreshed conservatively.
type TTLPolicy struct {
	Today  time.Duration
	Future time.Duration
	Past   time.Duration
	Qibla  time.Duration
}

// DefaultTTLPolicy returns the production TTL tiers.
func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		Today:  24 * time.Hour,
		Future: 7 * 24 * time.Hour,
		Past:   10 * 365 * 24 * time.Hour,
		Qibla:  30 * 24 * time.Hour,
	}
}

// ForDate returns the TTL tier for the requested date relative to today.
func (p TTLPolicy) ForDate(requested, today models.Date) time.Duration {
	switch requested.Compare(today) {
	case -1:
		return p.Past
	case 1:
		return p.Future
	default:
		return p.Today
	}
}
