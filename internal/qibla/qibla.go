// Package qibla computes the great-circle compass bearing from a location
// toward the Kaaba.
package qibla

import "math"

// Kaaba coordinates in Mecca, the fixed destination of every bearing.
const (
	KaabaLatitude  = 21.4225
	KaabaLongitude = 39.8262
)

// Bearing returns the initial great-circle bearing from the given location
// toward the Kaaba, in degrees clockwise from true north, normalized to
// [0, 360) and rounded to two decimal places.
func Bearing(latitude, longitude float64) float64 {
	lat1 := radians(latitude)
	lon1 := radians(longitude)
	lat2 := radians(KaabaLatitude)
	lon2 := radians(KaabaLongitude)

	dLon := lon2 - lon1
	x := math.Sin(dLon) * math.Cos(lat2)
	y := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	bearing := math.Mod(degrees(math.Atan2(x, y))+360, 360)
	return math.Round(bearing*100) / 100
}

func radians(deg float64) float64 { return deg * math.Pi / 180.0 }

func degrees(rad float64) float64 { return rad * 180.0 / math.Pi }
