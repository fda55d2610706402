// Package prayer orchestrates one day's prayer time computation: solar
// parameters, per-event hour angles, high-latitude fallbacks, calibration
// and formatting. Everything here is a pure function of its inputs.
package prayer

import (
	"fmt"
	"math"

	"github.com/fazil-api/prayer-times-service/internal/astro"
	"github.com/fazil-api/prayer-times-service/internal/calibration"
	"github.com/fazil-api/prayer-times-service/internal/models"
	"github.com/fazil-api/prayer-times-service/internal/qibla"
	"github.com/fazil-api/prayer-times-service/internal/validation"
)

// Calculator computes daily prayer times against an injected calibration
// table. Safe for concurrent use; it holds no mutable state.
type Calculator struct {
	table *calibration.Table
}

// NewCalculator returns a Calculator using the given calibration table.
func NewCalculator(table *calibration.Table) *Calculator {
	return &Calculator{table: table}
}

// ComputeDailyTimes computes the six calibrated event times and the Qibla
// bearing for one location and date. Coordinates are validated before any
// computation; past that point the function is total, representing
// astronomically undefined events with the "N/A" sentinel rather than
// failing the request.
func (c *Calculator) ComputeDailyTimes(loc models.Location, date models.Date, timezoneOffsetHours float64, country, city string) (models.DailyPrayerTimes, error) {
	if err := validation.ValidateCoordinates(loc.Latitude, loc.Longitude); err != nil {
		return models.DailyPrayerTimes{}, err
	}

	cal := c.table.Lookup(country)
	sp := astro.Parameters(date)
	noonMinutes := astro.SolarNoon(loc.Longitude, timezoneOffsetHours, sp.EquationOfTimeMin) * 60

	base := make(map[models.Event]float64, len(models.Events))
	asrApproximated := false
	var fallbackEvents []models.Event

	// Fajr: morning side of the dawn depression angle.
	if ha, ok := astro.HourAngle(loc.Latitude, sp.DeclinationDeg, -cal.FajrAngleDeg); ok {
		base[models.Fajr] = noonMinutes - ha/15*60
	} else if offset, ok := c.seventhOfNight(loc.Latitude, sp.DeclinationDeg, cal); ok {
		base[models.Fajr] = noonMinutes - offset*60
		fallbackEvents = append(fallbackEvents, models.Fajr)
	} else {
		base[models.Fajr] = math.NaN()
	}

	// Sunrise and Maghrib share the civil-horizon hour angle.
	if ha, ok := astro.HourAngle(loc.Latitude, sp.DeclinationDeg, astro.CivilHorizonDeg); ok {
		base[models.Sunrise] = noonMinutes - ha/15*60
		base[models.Maghrib] = noonMinutes + ha/15*60
	} else {
		base[models.Sunrise] = math.NaN()
		base[models.Maghrib] = math.NaN()
	}

	base[models.Dhuhr] = noonMinutes

	// Asr: shadow-length condition with a fixed fallback for degenerate
	// geometry, flagged so it is distinguishable downstream.
	if ha, ok := astro.AsrHourAngle(loc.Latitude, sp.DeclinationDeg, cal.AsrShadowFactor); ok {
		base[models.Asr] = noonMinutes + ha/15*60
	} else {
		base[models.Asr] = noonMinutes + astro.AsrFallbackHours*60
		asrApproximated = true
	}

	// Isha: evening side of the nightfall depression angle.
	if ha, ok := astro.HourAngle(loc.Latitude, sp.DeclinationDeg, -cal.IshaAngleDeg); ok {
		base[models.Isha] = noonMinutes + ha/15*60
	} else if offset, ok := c.seventhOfNight(loc.Latitude, sp.DeclinationDeg, cal); ok {
		base[models.Isha] = noonMinutes + offset*60
		fallbackEvents = append(fallbackEvents, models.Isha)
	} else {
		base[models.Isha] = math.NaN()
	}

	calibrated := calibration.Apply(base, cal, loc.Latitude, city)

	times := make(map[models.Event]string, len(calibrated))
	for event, minutes := range calibrated {
		times[event] = formatMinutes(minutes)
	}

	return models.DailyPrayerTimes{
		Date:            date.String(),
		Location:        loc,
		Country:         cal.CountryID,
		City:            city,
		TimezoneOffset:  timezoneOffsetHours,
		Times:           times,
		QiblaDegrees:    qibla.Bearing(loc.Latitude, loc.Longitude),
		AsrApproximated: asrApproximated,
		FallbackEvents:  fallbackEvents,
	}, nil
}

// seventhOfNight computes the high-latitude fallback offset from solar noon
// in decimal hours: the civil horizon offset plus one seventh of the night,
// placing Fajr a seventh before sunrise and Isha a seventh after sunset.
// ok is false when the fallback does not apply or the civil horizon itself
// is unreachable.
func (c *Calculator) seventhOfNight(latitude, declination float64, cal calibration.Calibration) (float64, bool) {
	if cal.HighLatitudeMethod != calibration.HighLatitudeAngleBased ||
		math.Abs(latitude) <= cal.HighLatitudeThresholdDeg {
		return 0, false
	}
	ha, ok := astro.HourAngle(latitude, declination, astro.CivilHorizonDeg)
	if !ok {
		return 0, false
	}
	offset := ha / 15
	nightDuration := 2 * offset
	return offset + nightDuration/7, true
}

// formatMinutes renders minutes since midnight as HH:MM, truncating partial
// minutes. NaN renders as the "N/A" sentinel.
func formatMinutes(minutes float64) string {
	if math.IsNaN(minutes) {
		return models.TimeNotAvailable
	}
	total := int(minutes)
	total %= 1440
	if total < 0 {
		total += 1440
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
