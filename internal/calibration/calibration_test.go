package calibration

import (
	"math"
	"testing"

	"github.com/fazil-api/prayer-times-service/internal/models"
)

// TestLookupAliases verifies regional name variants resolve to their
// canonical calibration.
func TestLookupAliases(t *testing.T) {
	table := NewTable()

	tests := []struct {
		name    string
		country string
		wantID  string
	}{
		{"canonical id", "norway", "norway"},
		{"native spelling", "Norge", "norway"},
		{"adjective form", "norwegian", "norway"},
		{"diacritics", "Türkiye", "turkey"},
		{"ascii variant", "turkiye", "turkey"},
		{"short form", "korea", "south_korea"},
		{"spaces", "South Korea", "south_korea"},
		{"hyphens", "south-korea", "south_korea"},
		{"mixed case", "TAJIKISTAN", "tajikistan"},
		{"unknown falls back to default", "atlantis", "world"},
		{"empty falls back to default", "", "world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := table.Lookup(tt.country)
			if cal.CountryID != tt.wantID {
				t.Errorf("Lookup(%q).CountryID = %q, want %q", tt.country, cal.CountryID, tt.wantID)
			}
		})
	}
}

// TestDefaultID confirms the fallback calibration is the worldwide one.
func TestDefaultID(t *testing.T) {
	table := NewTable()
	if got := table.DefaultID(); got != "world" {
		t.Errorf("DefaultID() = %q, want %q", got, "world")
	}
}

// TestAdjustmentForPriority verifies the city > arctic > base resolution
// order.
func TestAdjustmentForPriority(t *testing.T) {
	cal := Calibration{
		Adjustments: map[models.Event]int{models.Fajr: 10},
		Arctic: &ArcticOverride{
			ThresholdDeg: 65,
			Adjustments:  map[models.Event]int{models.Fajr: 20},
		},
		Cities: map[string]map[models.Event]int{
			"tromso": {models.Fajr: 30},
		},
	}

	if got := cal.AdjustmentFor(models.Fajr, 59.9, ""); got != 10 {
		t.Errorf("below threshold, no city: got %d, want base 10", got)
	}
	if got := cal.AdjustmentFor(models.Fajr, 69.6, ""); got != 20 {
		t.Errorf("above threshold, no city: got %d, want arctic 20", got)
	}
	if got := cal.AdjustmentFor(models.Fajr, 69.6, "Tromso"); got != 30 {
		t.Errorf("city override present: got %d, want city 30", got)
	}
	// City entry exists but lacks this event: next priority applies.
	if got := cal.AdjustmentFor(models.Isha, 69.6, "Tromso"); got != 0 {
		t.Errorf("city without event above threshold: got %d, want 0", got)
	}
	if got := cal.AdjustmentFor(models.Fajr, -70, ""); got != 20 {
		t.Errorf("southern hemisphere beyond threshold: got %d, want arctic 20", got)
	}
}

// TestApply checks signed adjustments, midnight wrapping and the N/A
// passthrough.
func TestApply(t *testing.T) {
	cal := Calibration{
		Adjustments: map[models.Event]int{
			models.Fajr:    11,
			models.Sunrise: -2,
			models.Isha:    30,
		},
	}

	base := map[models.Event]float64{
		models.Fajr:    300.5,
		models.Sunrise: 0.5,
		models.Isha:    1430.0,
		models.Dhuhr:   math.NaN(),
	}

	got := Apply(base, cal, 48.9, "")

	if got[models.Fajr] != 311.5 {
		t.Errorf("fajr = %v, want 311.5", got[models.Fajr])
	}
	if got[models.Sunrise] != 1438.5 {
		t.Errorf("sunrise wrapped = %v, want 1438.5", got[models.Sunrise])
	}
	if got[models.Isha] != 20.0 {
		t.Errorf("isha wrapped = %v, want 20", got[models.Isha])
	}
	if !math.IsNaN(got[models.Dhuhr]) {
		t.Errorf("dhuhr = %v, want NaN passthrough", got[models.Dhuhr])
	}
	if base[models.Fajr] != 300.5 {
		t.Error("Apply mutated its input map")
	}
}

// TestApplyRoundTrip verifies that +N then -N restores the original value
// for any in-range base time.
func TestApplyRoundTrip(t *testing.T) {
	for _, base := range []float64{0, 1, 300.25, 719.5, 1439.9} {
		for _, adj := range []int{1, 7, 52, 120, 1439} {
			plus := Calibration{Adjustments: map[models.Event]int{models.Fajr: adj}}
			minus := Calibration{Adjustments: map[models.Event]int{models.Fajr: -adj}}

			after := Apply(map[models.Event]float64{models.Fajr: base}, plus, 0, "")
			restored := Apply(after, minus, 0, "")

			if math.Abs(restored[models.Fajr]-base) > 1e-9 {
				t.Errorf("base %v adj %d: round trip = %v", base, adj, restored[models.Fajr])
			}
		}
	}
}

// TestTableEntries spot-checks the calibration data loaded at startup.
func TestTableEntries(t *testing.T) {
	table := NewTable()

	world := table.Lookup("world")
	if world.FajrAngleDeg != 18.0 || world.IshaAngleDeg != 17.0 {
		t.Errorf("world angles = %v/%v, want 18/17", world.FajrAngleDeg, world.IshaAngleDeg)
	}
	if world.HighLatitudeMethod != HighLatitudeAngleBased {
		t.Errorf("world high latitude method = %q, want angle_based", world.HighLatitudeMethod)
	}
	if world.Adjustments[models.Fajr] != 11 || world.Adjustments[models.Sunrise] != -2 {
		t.Errorf("world adjustments = %v", world.Adjustments)
	}

	turkey := table.Lookup("turkey")
	if turkey.HighLatitudeMethod != HighLatitudeNone {
		t.Errorf("turkey high latitude method = %q, want none", turkey.HighLatitudeMethod)
	}
	if !turkey.Verified {
		t.Error("turkey should be a verified calibration")
	}

	norway := table.Lookup("norway")
	if norway.Arctic == nil {
		t.Fatal("norway should carry an arctic override")
	}
	if norway.Arctic.ThresholdDeg != 65 {
		t.Errorf("norway arctic threshold = %v, want 65", norway.Arctic.ThresholdDeg)
	}
	if norway.Verified {
		t.Error("norway carries conflicting source data and must stay unverified")
	}
	if norway.Notes == "" {
		t.Error("norway should document its source conflict in Notes")
	}
}

// TestCountries verifies the listing is sorted by name and includes the
// default calibration.
func TestCountries(t *testing.T) {
	table := NewTable()
	infos := table.Countries()

	if len(infos) < 7 {
		t.Fatalf("Countries() returned %d entries, want at least 7", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].Name > infos[i].Name {
			t.Errorf("countries not sorted: %q before %q", infos[i-1].Name, infos[i].Name)
		}
	}

	found := false
	for _, info := range infos {
		if info.Code == "world" {
			found = true
		}
	}
	if !found {
		t.Error("default calibration missing from Countries()")
	}
}
