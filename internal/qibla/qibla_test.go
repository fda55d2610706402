package qibla

import (
	"math"
	"testing"
)

// TestBearingKnownCities checks the bearing against published Qibla
// directions for well-known locations.
func TestBearingKnownCities(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		want      float64
		tolerance float64
	}{
		{"istanbul", 41.0082, 28.9784, 151.6, 1.0},
		{"oslo", 59.9139, 10.7522, 139.0, 1.0},
		{"jakarta points west", -6.2088, 106.8456, 295.1, 1.0},
		{"new york", 40.7128, -74.0060, 58.5, 1.0},
		{"seoul", 37.5665, 126.9780, 285.7, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(tt.latitude, tt.longitude)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("Bearing(%v, %v) = %v, want %v within %v",
					tt.latitude, tt.longitude, got, tt.want, tt.tolerance)
			}
		})
	}
}

// TestBearingCardinalCases verifies the bearing on the Kaaba's own meridian
// and the output range invariant.
func TestBearingCardinalCases(t *testing.T) {
	// Due north of the Kaaba on the same meridian: bearing is due south.
	if got := Bearing(45.0, KaabaLongitude); math.Abs(got-180) > 0.01 {
		t.Errorf("bearing from due north = %v, want 180", got)
	}

	// Due south of the Kaaba: bearing is due north, reported as 0.
	if got := Bearing(-10.0, KaabaLongitude); got != 0 {
		t.Errorf("bearing from due south = %v, want 0", got)
	}
}

// TestBearingRange confirms results stay in [0, 360) with two decimals
// across a coordinate sweep.
func TestBearingRange(t *testing.T) {
	for lat := -80.0; lat <= 80.0; lat += 20 {
		for lon := -180.0; lon < 180.0; lon += 30 {
			got := Bearing(lat, lon)
			if got < 0 || got >= 360 {
				t.Errorf("Bearing(%v, %v) = %v outside [0, 360)", lat, lon, got)
			}
			if math.Abs(got*100-math.Round(got*100)) > 1e-9 {
				t.Errorf("Bearing(%v, %v) = %v not rounded to two decimals", lat, lon, got)
			}
		}
	}
}
