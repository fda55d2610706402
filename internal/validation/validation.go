package validation

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinate is returned when latitude or longitude is outside
// its valid range. Violating values are rejected, never clamped.
var ErrInvalidCoordinate = errors.New("coordinate out of range")

// ErrInvalidDate is returned when a date string is not a valid YYYY-MM-DD
// calendar date.
var ErrInvalidDate = errors.New("invalid date")

// ErrInvalidTimezone is returned when a UTC offset is outside the range of
// real-world timezones.
var ErrInvalidTimezone = errors.New("timezone offset out of range")

// ValidateCoordinates checks latitude against [-90, 90] and longitude
// against [-180, 180]. NaN and infinities are rejected. Returns an error
// suitable for 400 INVALID_COORDINATE responses.
func ValidateCoordinates(latitude, longitude float64) error {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) || latitude < -90 || latitude > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinate, latitude)
	}
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) || longitude < -180 || longitude > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinate, longitude)
	}
	return nil
}

// ValidateTimezoneOffset checks a UTC offset in hours against [-12, 14].
func ValidateTimezoneOffset(hours float64) error {
	if math.IsNaN(hours) || hours < -12 || hours > 14 {
		return fmt.Errorf("%w: %v", ErrInvalidTimezone, hours)
	}
	return nil
}
