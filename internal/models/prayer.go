package models

import (
	"fmt"
	"time"
)

// Event identifies one of the six daily prayer events.
type Event string

const (
	Fajr    Event = "fajr"
	Sunrise Event = "sunrise"
	Dhuhr   Event = "dhuhr"
	Asr     Event = "asr"
	Maghrib Event = "maghrib"
	Isha    Event = "isha"
)

// Events lists the six daily events in chronological order.
var Events = []Event{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

// TimeNotAvailable marks an event the sun never reaches at the requested
// latitude and date (polar day or polar night).
const TimeNotAvailable = "N/A"

// Location is a validated geographic coordinate pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Date is a proleptic-Gregorian calendar date. Computations evaluate the
// sun's position at local solar noon on this date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Compare returns -1, 0 or +1 as d is before, equal to or after other.
func (d Date) Compare(other Date) int {
	a := d.Year*10000 + int(d.Month)*100 + d.Day
	b := other.Year*10000 + int(other.Month)*100 + other.Day
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// DaysInMonth returns the number of days in the given month, accounting for
// leap years via the time package's day-zero normalization.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DailyPrayerTimes is the immutable result of one day's computation:
// the six event times, Qibla bearing and the inputs that produced them.
type DailyPrayerTimes struct {
	Date           string           `json:"date"`
	Location       Location         `json:"location"`
	Country        string           `json:"country"`
	City           string           `json:"city,omitempty"`
	TimezoneOffset float64          `json:"timezoneOffset"`
	Times          map[Event]string `json:"times"`
	QiblaDegrees   float64          `json:"qiblaDegrees"`
	// AsrApproximated is set when degenerate geometry forced the fixed
	// post-noon Asr fallback instead of a solved hour angle.
	AsrApproximated bool `json:"asrApproximated,omitempty"`
	// FallbackEvents lists events resolved via the seventh-of-night
	// high-latitude approximation instead of their configured angle.
	FallbackEvents []Event `json:"fallbackEvents,omitempty"`
}

// MonthlyPrayerTimes holds one DailyPrayerTimes-shaped times map per day of
// a calendar month.
type MonthlyPrayerTimes struct {
	Year           int                      `json:"year"`
	Month          int                      `json:"month"`
	Location       Location                 `json:"location"`
	Country        string                   `json:"country"`
	TimezoneOffset float64                  `json:"timezoneOffset"`
	Days           map[int]map[Event]string `json:"days"`
	QiblaDegrees   float64                  `json:"qiblaDegrees"`
}
