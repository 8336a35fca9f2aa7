package transform

import (
	"fmt"
	"math"
	"testing"

	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/thurmanmarka/altaz/internal/timeutil"
)

// Vega from Flemington, NJ at 2025-08-07T15:18:18Z.
var (
	vegaRA  = unit.NewRA(18, 36, 56).Rad()
	vegaDec = unit.NewAngle(' ', 38, 47, 1).Rad()
	siteLat = unit.NewAngle(' ', 40, 20, 5.57).Rad()
	siteLon = unit.NewAngle('-', 74, 37, 16.06).Rad()

	// apparent sidereal time at the observation instant
	knownSidereal = unit.NewTime(' ', 12, 23, 54.0787).Rad()
)

func fmtAngle(rad float64) string {
	return fmt.Sprintf("%.1s", sexa.FmtAngle(unit.Angle(rad)))
}

func TestHourAngle_KnownValue(t *testing.T) {
	got := HourAngle(knownSidereal, siteLon, vegaRA)
	want := unit.NewHourAngle(' ', 12, 47, 35.49).Rad()

	if math.Abs(got-want) > 0.01 {
		t.Errorf("HourAngle() = %s, want %s",
			sexa.FmtHourAngle(unit.HourAngle(got)), sexa.FmtHourAngle(unit.HourAngle(want)))
	}
}

func TestHourAngle_AddsLongitude(t *testing.T) {
	// An observer one hour of longitude east sees the same star one hour
	// further past the meridian.
	east := unit.HourAngleFromHour(1).Rad()
	a := HourAngle(1.0, 0, 0.5)
	b := HourAngle(1.0, east, 0.5)

	if math.Abs(timeutil.NormalizeTau(b-a)-east) > 1e-12 {
		t.Errorf("HourAngle east offset = %v, want %v", b-a, east)
	}
}

func TestHourAngle_Range(t *testing.T) {
	for _, st := range []float64{-20, -1, 0, 0.3, 6, 40} {
		for _, ra := range []float64{0, 1, 3, 6.2} {
			ha := HourAngle(st, siteLon, ra)
			if ha < 0 || ha >= timeutil.Tau {
				t.Errorf("HourAngle(%v, lon, %v) = %v, out of [0, 2π)", st, ra, ha)
			}
		}
	}
}

func TestToHorizontal_KnownValue(t *testing.T) {
	alt, az := ToHorizontal(vegaRA, vegaDec, siteLat, siteLon, knownSidereal)

	wantAlt := unit.NewAngle('-', 10, 6, 42.8).Rad()
	wantAz := unit.NewAngle(' ', 9, 23, 31.1).Rad()

	const tol = 0.01
	if math.Abs(alt-wantAlt) > tol {
		t.Errorf("altitude = %s, want %s", fmtAngle(alt), fmtAngle(wantAlt))
	}
	if math.Abs(az-wantAz) > tol {
		t.Errorf("azimuth = %s, want %s", fmtAngle(az), fmtAngle(wantAz))
	}
}

func TestToHorizontal_Zenith(t *testing.T) {
	// Declination equal to latitude on the meridian is straight overhead.
	for _, lat := range []float64{-1.2, -0.4, 0.1, siteLat, 1.3} {
		ra := 2.0
		lon := 0.7
		st := ra - lon // hour angle 0

		alt, _ := ToHorizontal(ra, lat, lat, lon, st)
		if math.Abs(alt-math.Pi/2) > 1e-6 {
			t.Errorf("lat %s: zenith altitude = %s, want 90°", fmtAngle(lat), fmtAngle(alt))
		}
	}
}

func TestToHorizontal_Cardinal(t *testing.T) {
	lat := unit.AngleFromDeg(45).Rad()

	tests := []struct {
		name    string
		ha, dec float64
		wantAz  float64
	}{
		// Celestial equator on the meridian sits due south.
		{"south transit", 0, 0, math.Pi},
		// Equator at hour angle -6h rises due east.
		{"east horizon", -math.Pi / 2, 0, math.Pi / 2},
		// Equator at hour angle +6h sets due west.
		{"west horizon", math.Pi / 2, 0, 3 * math.Pi / 2},
		// Circumpolar star at lower culmination is due north.
		{"north lower culmination", math.Pi, unit.AngleFromDeg(60).Rad(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ra := 1.0
			st := ra + tt.ha
			_, az := ToHorizontal(ra, tt.dec, lat, 0, st)

			diff := math.Abs(az - tt.wantAz)
			if diff > math.Pi {
				diff = timeutil.Tau - diff
			}
			if diff > 1e-9 {
				t.Errorf("azimuth = %s, want %s", fmtAngle(az), fmtAngle(tt.wantAz))
			}
		})
	}
}

func TestToHorizontal_Ranges(t *testing.T) {
	for lat := -1.5; lat <= 1.5; lat += 0.25 {
		for dec := -1.5; dec <= 1.5; dec += 0.3 {
			for st := 0.0; st < timeutil.Tau; st += 0.4 {
				alt, az := ToHorizontal(1.1, dec, lat, -0.3, st)
				if math.IsNaN(alt) || math.IsNaN(az) {
					continue
				}
				if alt < -math.Pi/2 || alt > math.Pi/2 {
					t.Errorf("altitude %v out of [-π/2, π/2]", alt)
				}
				if az < 0 || az >= timeutil.Tau {
					t.Errorf("azimuth %v out of [0, 2π)", az)
				}
			}
		}
	}
}
