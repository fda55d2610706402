package calibration

import "github.com/fazil-api/prayer-times-service/internal/models"

// Standard dawn and nightfall depression angles used by every calibration
// in the table.
const (
	standardFajrAngleDeg = 18.0
	standardIshaAngleDeg = 17.0
)

// highLatitudeThresholdDeg is the absolute latitude above which the
// seventh-of-night approximation may substitute for unreachable angles.
const highLatitudeThresholdDeg = 48.5

// NewTable builds the built-in calibration table. The default for unknown
// countries is "world".
func NewTable() *Table {
	byID := map[string]Calibration{
		"world": {
			CountryID:                "world",
			Name:                     "World",
			FajrAngleDeg:             standardFajrAngleDeg,
			IshaAngleDeg:             standardIshaAngleDeg,
			AsrShadowFactor:          1.0,
			HighLatitudeMethod:       HighLatitudeAngleBased,
			HighLatitudeThresholdDeg: highLatitudeThresholdDeg,
			Adjustments: map[models.Event]int{
				models.Fajr:    11,
				models.Sunrise: -2,
				models.Dhuhr:   8,
				models.Asr:     6,
				models.Maghrib: 8,
				models.Isha:    7,
			},
			Verified: false,
			Notes:    "Global fallback calibration.",
		},
		"norway": {
			CountryID:                "norway",
			Name:                     "Norway",
			FajrAngleDeg:             standardFajrAngleDeg,
			IshaAngleDeg:             standardIshaAngleDeg,
			AsrShadowFactor:          1.0,
			HighLatitudeMethod:       HighLatitudeAngleBased,
			HighLatitudeThresholdDeg: highLatitudeThresholdDeg,
			Adjustments: map[models.Event]int{
				models.Fajr:    11,
				models.Sunrise: 0,
				models.Dhuhr:   10,
				models.Asr:     9,
				models.Maghrib: 13,
				models.Isha:    11,
			},
			// Cities above the arctic threshold need smaller Maghrib/Isha
			// offsets than the mainland values.
			Arctic: &ArcticOverride{
				ThresholdDeg: 65.0,
				Adjustments: map[models.Event]int{
					models.Fajr:    11,
					models.Sunrise: 3,
					models.Dhuhr:   10,
					models.Asr:     11,
					models.Maghrib: 10,
					models.Isha:    8,
				},
			},
			Verified: false,
			Notes: "Maghrib/Isha adjustments conflict across published verification " +
				"rounds (+13/+11 vs +7/+6 vs -52 Maghrib); current values need " +
				"re-verification against the authority before deployment.",
		},
		"turkey": {
			CountryID:          "turkey",
			Name:               "Turkey",
			FajrAngleDeg:       standardFajrAngleDeg,
			IshaAngleDeg:       standardIshaAngleDeg,
			AsrShadowFactor:    1.0,
			HighLatitudeMethod: HighLatitudeNone,
			Adjustments: map[models.Event]int{
				models.Fajr:    6,
				models.Sunrise: -8,
				models.Dhuhr:   11,
				models.Asr:     12,
				models.Maghrib: 10,
				models.Isha:    12,
			},
			Verified: true,
			Notes:    "Base Diyanet method.",
		},
		"south_korea": {
			CountryID:          "south_korea",
			Name:               "South Korea",
			FajrAngleDeg:       standardFajrAngleDeg,
			IshaAngleDeg:       standardIshaAngleDeg,
			AsrShadowFactor:    1.0,
			HighLatitudeMethod: HighLatitudeNone,
			Adjustments: map[models.Event]int{
				models.Fajr:    10,
				models.Sunrise: -3,
				models.Dhuhr:   8,
				models.Asr:     7,
				models.Maghrib: 10,
				models.Isha:    7,
			},
			Verified: true,
			Notes:    "Verified for the Seoul area.",
		},
		"tajikistan": {
			CountryID:          "tajikistan",
			Name:               "Tajikistan",
			FajrAngleDeg:       standardFajrAngleDeg,
			IshaAngleDeg:       standardIshaAngleDeg,
			AsrShadowFactor:    1.0,
			HighLatitudeMethod: HighLatitudeNone,
			Adjustments: map[models.Event]int{
				models.Fajr:    10,
				models.Sunrise: -3,
				models.Dhuhr:   9,
				models.Asr:     7,
				models.Maghrib: 10,
				models.Isha:    8,
			},
			Verified: true,
			Notes:    "Verified for Dushanbe.",
		},
		"uzbekistan": {
			CountryID:          "uzbekistan",
			Name:               "Uzbekistan",
			FajrAngleDeg:       standardFajrAngleDeg,
			IshaAngleDeg:       standardIshaAngleDeg,
			AsrShadowFactor:    1.0,
			HighLatitudeMethod: HighLatitudeNone,
			Adjustments: map[models.Event]int{
				models.Fajr:    10,
				models.Sunrise: -3,
				models.Dhuhr:   8,
				models.Asr:     8,
				models.Maghrib: 10,
				models.Isha:    8,
			},
			Verified: true,
			Notes:    "Verified for Tashkent.",
		},
		"russia": {
			CountryID:          "russia",
			Name:               "Russia",
			FajrAngleDeg:       standardFajrAngleDeg,
			IshaAngleDeg:       standardIshaAngleDeg,
			AsrShadowFactor:    1.0,
			HighLatitudeMethod: HighLatitudeNone,
			Adjustments: map[models.Event]int{
				models.Fajr:    6,
				models.Sunrise: -8,
				models.Dhuhr:   11,
				models.Asr:     12,
				models.Maghrib: 10,
				models.Isha:    12,
			},
			Verified: false,
			Notes:    "Turkey base values; needs verification.",
		},
	}

	aliases := map[string]string{
		"norge":       "norway",
		"norwegian":   "norway",
		"türkiye":     "turkey",
		"turkiye":     "turkey",
		"korea":       "south_korea",
		"southkorea":  "south_korea",
		"korea_south": "south_korea",
	}

	return &Table{byID: byID, aliases: aliases, defaultID: "world"}
}
