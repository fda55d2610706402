// Package calibration holds the per-country adjustment tables that align
// computed astronomical times with the regional authority's published
// times, and the logic to apply them.
package calibration

import (
	"math"
	"sort"
	"strings"

	"github.com/fazil-api/prayer-times-service/internal/models"
)

// HighLatitudeMethod selects how unreachable Fajr/Isha angles are resolved.
type HighLatitudeMethod string

const (
	HighLatitudeNone       HighLatitudeMethod = "none"
	HighLatitudeAngleBased HighLatitudeMethod = "angle_based"
)

// ArcticOverride replaces the country base adjustments for locations at or
// above ThresholdDeg of absolute latitude.
type ArcticOverride struct {
	ThresholdDeg float64
	Adjustments  map[models.Event]int
}

// Calibration is one country's immutable calibration record: prayer angles,
// Asr shadow factor, per-event minute adjustments and optional arctic and
// per-city overrides. Loaded once at startup, never mutated per request.
type Calibration struct {
	CountryID                string
	Name                     string
	FajrAngleDeg             float64
	IshaAngleDeg             float64
	AsrShadowFactor          float64
	HighLatitudeMethod       HighLatitudeMethod
	HighLatitudeThresholdDeg float64
	Adjustments              map[models.Event]int
	Arctic                   *ArcticOverride
	Cities                   map[string]map[models.Event]int
	Verified                 bool
	Notes                    string
}

// AdjustmentFor resolves the signed minute adjustment for one event with
// priority city override > arctic override > country base.
func (c Calibration) AdjustmentFor(event models.Event, latitude float64, city string) int {
	if city != "" {
		if cityAdj, ok := c.Cities[normalizeKey(city)]; ok {
			if adj, ok := cityAdj[event]; ok {
				return adj
			}
		}
	}
	if c.Arctic != nil && math.Abs(latitude) >= c.Arctic.ThresholdDeg {
		if adj, ok := c.Arctic.Adjustments[event]; ok {
			return adj
		}
	}
	return c.Adjustments[event]
}

// Apply adds each event's adjustment to the base time-of-day in minutes
// since midnight, wrapping modulo 1440. Events whose base value is NaN
// (the "N/A" sentinel) pass through unchanged.
func Apply(base map[models.Event]float64, cal Calibration, latitude float64, city string) map[models.Event]float64 {
	out := make(map[models.Event]float64, len(base))
	for event, minutes := range base {
		if math.IsNaN(minutes) {
			out[event] = minutes
			continue
		}
		adjusted := math.Mod(minutes+float64(cal.AdjustmentFor(event, latitude, city)), 1440)
		if adjusted < 0 {
			adjusted += 1440
		}
		out[event] = adjusted
	}
	return out
}

// Table maps normalized country ids to calibrations, with an alias map for
// regional name variants and a designated default for unknown countries.
type Table struct {
	byID      map[string]Calibration
	aliases   map[string]string
	defaultID string
}

// Lookup returns the calibration for the given country name. Matching is
// case-insensitive with spaces and hyphens treated as underscores; known
// aliases resolve to their canonical country. Unknown countries fall back
// to the default calibration.
func (t *Table) Lookup(country string) Calibration {
	key := normalizeKey(country)
	if canonical, ok := t.aliases[key]; ok {
		key = canonical
	}
	if cal, ok := t.byID[key]; ok {
		return cal
	}
	return t.byID[t.defaultID]
}

// DefaultID returns the country id used for unknown lookups.
func (t *Table) DefaultID() string { return t.defaultID }

// CountryInfo is the listing view of one calibration.
type CountryInfo struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
	Notes    string `json:"notes,omitempty"`
}

// Countries returns all calibrations sorted by name, including the default.
func (t *Table) Countries() []CountryInfo {
	infos := make([]CountryInfo, 0, len(t.byID))
	for _, cal := range t.byID {
		infos = append(infos, CountryInfo{
			Code:     cal.CountryID,
			Name:     cal.Name,
			Verified: cal.Verified,
			Notes:    cal.Notes,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// normalizeKey lowercases and maps spaces and hyphens to underscores so
// "South Korea", "south-korea" and "SOUTH_KOREA" all match.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
