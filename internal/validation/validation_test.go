package validation

import (
	"errors"
	"math"
	"testing"
)

// TestValidateCoordinates verifies that in-range coordinates pass and
// out-of-range, NaN, and infinite values are rejected rather than clamped.
func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		wantErr   bool
	}{
		{"valid equator", 0, 0, false},
		{"valid paris", 48.8566, 2.3522, false},
		{"latitude at north pole", 90, 0, false},
		{"latitude at south pole", -90, 0, false},
		{"longitude at antimeridian", 0, 180, false},
		{"longitude at negative antimeridian", 0, -180, false},
		{"latitude above range", 90.0001, 0, true},
		{"latitude below range", -90.0001, 0, true},
		{"longitude above range", 0, 180.0001, true},
		{"longitude below range", 0, -180.0001, true},
		{"latitude NaN", math.NaN(), 0, true},
		{"longitude NaN", 0, math.NaN(), true},
		{"latitude infinite", math.Inf(1), 0, true},
		{"longitude negative infinite", 0, math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinates(tt.latitude, tt.longitude)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinates(%v, %v) error = %v, wantErr %v",
					tt.latitude, tt.longitude, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidCoordinate) {
				t.Errorf("error %v is not ErrInvalidCoordinate", err)
			}
		})
	}
}

// TestValidateTimezoneOffset verifies UTC offsets against the [-12, 14]
// range of real-world timezones.
func TestValidateTimezoneOffset(t *testing.T) {
	tests := []struct {
		name    string
		hours   float64
		wantErr bool
	}{
		{"UTC", 0, false},
		{"half-hour offset", 5.5, false},
		{"westernmost", -12, false},
		{"easternmost", 14, false},
		{"beyond easternmost", 14.5, true},
		{"beyond westernmost", -12.5, true},
		{"NaN", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimezoneOffset(tt.hours)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTimezoneOffset(%v) error = %v, wantErr %v",
					tt.hours, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTimezone) {
				t.Errorf("error %v is not ErrInvalidTimezone", err)
			}
		})
	}
}
