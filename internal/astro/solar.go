// Package astro implements the solar-position geometry behind prayer time
// computation: Julian Day, solar declination, equation of time and the
// hour-angle solutions for a target sun depression angle. All functions are
// pure; angles cross package boundaries in degrees and are converted to
// radians internally.
package astro

import (
	"math"

	"github.com/fazil-api/prayer-times-service/internal/models"
)

const (
	// j2000 is the Julian Day of the J2000.0 epoch.
	j2000 = 2451545.0
	// obliquityDeg is the mean obliquity of the ecliptic.
	obliquityDeg = 23.4392911
	// CivilHorizonDeg is the sun depression defining sunrise and sunset,
	// accounting for refraction and the solar disc radius.
	CivilHorizonDeg = -0.833
)

// SolarParameters are the per-date ephemeris values every event time is
// derived from. Cheap to compute; always recomputed per request, never
// cached on their own.
type SolarParameters struct {
	JulianDay         float64
	DeclinationDeg    float64
	EquationOfTimeMin float64
}

// Parameters computes the solar parameters for local solar noon on the
// given calendar date.
func Parameters(date models.Date) SolarParameters {
	jd := julianDay(date.Year, int(date.Month), date.Day)

	// Mean anomaly and equation of center.
	g := 357.529 + 0.98560028*(jd-j2000)
	gRad := radians(g)
	c := 1.9148*math.Sin(gRad) + 0.0200*math.Sin(2*gRad) + 0.0003*math.Sin(3*gRad)

	// Apparent ecliptic longitude.
	lambda := normalizeDeg(g + c + 180.0 + 102.9372)
	lambdaRad := radians(lambda)

	eRad := radians(obliquityDeg)
	dec := degrees(math.Asin(math.Sin(eRad) * math.Sin(lambdaRad)))

	// Right ascension, normalized to [0, 360).
	ra := normalizeDeg(degrees(math.Atan2(math.Cos(eRad)*math.Sin(lambdaRad), math.Cos(lambdaRad))))

	// Equation of time: apparent minus mean solar longitude, 4 min/deg.
	eqt := lambda - ra
	if eqt > 180 {
		eqt -= 360
	} else if eqt < -180 {
		eqt += 360
	}

	return SolarParameters{
		JulianDay:         jd,
		DeclinationDeg:    dec,
		EquationOfTimeMin: eqt * 4,
	}
}

// HourAngle solves for the sun's hour angle at which it reaches angleDeg
// (negative = below horizon) at the given latitude and declination.
// Returns the angle in degrees from solar noon; ok is false when the sun
// never reaches that depression on this date (polar day or polar night).
func HourAngle(latitudeDeg, declinationDeg, angleDeg float64) (float64, bool) {
	latRad := radians(latitudeDeg)
	decRad := radians(declinationDeg)

	cosH := (math.Sin(radians(angleDeg)) - math.Sin(latRad)*math.Sin(decRad)) /
		(math.Cos(latRad) * math.Cos(decRad))
	if math.Abs(cosH) > 1 {
		return 0, false
	}
	return degrees(math.Acos(cosH)), true
}

// SolarNoon returns the local clock time of solar noon in decimal hours.
func SolarNoon(longitudeDeg, timezoneOffsetHours, equationOfTimeMin float64) float64 {
	return 12.0 - longitudeDeg/15.0 + timezoneOffsetHours - equationOfTimeMin/60.0
}

// julianDay converts a civil calendar date at local solar noon (hour 12)
// to a Julian Day number.
func julianDay(year, month, day int) float64 {
	d := float64(day) + 0.5 // hour 12 of the civil day
	if month <= 2 {
		year--
		month += 12
	}
	a := math.Floor(float64(year) / 100.0)
	b := 2 - a + math.Floor(a/4.0)
	return math.Floor(365.25*float64(year+4716)) + math.Floor(30.6001*float64(month+1)) + d + b - 1524.5
}

// normalizeDeg reduces an angle to [0, 360).
func normalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func radians(deg float64) float64 { return deg * math.Pi / 180.0 }

func degrees(rad float64) float64 { return rad * 180.0 / math.Pi }
