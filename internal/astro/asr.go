package astro

import "math"

// noonShadowSentinel stands in for the shadow length when the sun does not
// rise above the horizon at noon (polar night).
const noonShadowSentinel = 9999.0

// AsrFallbackHours is the fixed offset after solar noon used when the Asr
// hour-angle geometry is degenerate. A pragmatic approximation, not
// astronomically derived; callers must flag its use.
const AsrFallbackHours = 3.5

// AsrHourAngle solves the shadow-length condition for the afternoon prayer:
// the moment an object's shadow equals shadowFactor times its height plus
// its shadow at noon. shadowFactor is 1.0 for the standard school, 2.0 for
// the alternate one. Returns the hour angle in degrees after solar noon;
// ok is false when the geometry is degenerate and the caller should apply
// AsrFallbackHours instead.
func AsrHourAngle(latitudeDeg, declinationDeg, shadowFactor float64) (float64, bool) {
	altitudeNoon := 90.0 - math.Abs(latitudeDeg-declinationDeg)

	shadowNoon := noonShadowSentinel
	if altitudeNoon > 0 {
		shadowNoon = 1.0 / math.Tan(radians(altitudeNoon))
	}

	totalShadow := shadowFactor + shadowNoon
	asrAltitudeDeg := degrees(math.Atan(1.0 / totalShadow))

	return HourAngle(latitudeDeg, declinationDeg, asrAltitudeDeg)
}
