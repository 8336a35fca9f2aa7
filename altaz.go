// Package altaz points altitude-azimuth telescope mounts.
//
// Given a target's equatorial coordinates (fixed relative to the stars) and an
// observer's geographic location, it computes the altitude and azimuth the
// mount must drive to at an instant, and how fast those angles are changing
// so the mount can keep tracking.
//
// The pipeline is:
//   - sidereal time from a civil timestamp (mean, or apparent with nutation)
//   - hour angle and the equatorial → horizontal spherical transform
//   - a centered finite difference of that transform for angular rates
//
// Every angle is in radians. Azimuth is measured from north through east and
// normalized into [0, 2π). Longitudes are east positive.
//
// All functions are pure and safe for concurrent use. No refraction, parallax
// or proper motion corrections are applied.
//
// A typical tracking step driving two stepper motors:
//
//	target := altaz.ApparentAltAzAt(vega, site, time.Now())
//	base := altaz.ApparentAltAzAt(home, site, homedAt)
//
//	altSteps := (target.Altitude - base.Altitude) * altStepsPerRad
//	azSteps := (target.Azimuth - base.Azimuth) * azStepsPerRad
package altaz

import (
	"time"

	"github.com/soniakeys/unit"

	"github.com/thurmanmarka/altaz/internal/rates"
	"github.com/thurmanmarka/altaz/internal/timeutil"
	"github.com/thurmanmarka/altaz/internal/transform"
)

// EquatorialCoordinates is a sky position fixed relative to the stars.
//
// Values are not normalized; right ascension is expected in [0, 2π) and
// declination in [-π/2, π/2], but any real input is accepted.
type EquatorialCoordinates struct {
	RightAscension float64 // radians
	Declination    float64 // radians
}

// GeographicCoordinates is an observer's position on Earth.
type GeographicCoordinates struct {
	Latitude  float64 // radians, north positive
	Longitude float64 // radians, east positive (west negative)
}

// HorizontalCoordinates is a pointing direction relative to the observer's
// horizon.
type HorizontalCoordinates struct {
	Altitude float64 // radians, [-π/2, π/2]
	Azimuth  float64 // radians, [0, 2π), north through east
}

// HorizontalRates is the angular velocity of a target in the horizontal frame.
type HorizontalRates struct {
	Altitude float64 // radians/second
	Azimuth  float64 // radians/second
}

// NewEquatorial returns equatorial coordinates from radians.
func NewEquatorial(ra, dec float64) EquatorialCoordinates {
	return EquatorialCoordinates{RightAscension: ra, Declination: dec}
}

// EquatorialFromUnits returns equatorial coordinates from meeus unit values,
// e.g. EquatorialFromUnits(unit.NewRA(18, 36, 56), unit.NewAngle(' ', 38, 47, 1)).
func EquatorialFromUnits(ra unit.RA, dec unit.Angle) EquatorialCoordinates {
	return EquatorialCoordinates{RightAscension: ra.Rad(), Declination: dec.Rad()}
}

// GeographicFromRadians returns an observer location from radians.
func GeographicFromRadians(lat, lon float64) GeographicCoordinates {
	return GeographicCoordinates{Latitude: lat, Longitude: lon}
}

// GeographicFromDegrees returns an observer location from decimal degrees.
func GeographicFromDegrees(lat, lon float64) GeographicCoordinates {
	return GeographicCoordinates{
		Latitude:  unit.AngleFromDeg(lat).Rad(),
		Longitude: unit.AngleFromDeg(lon).Rad(),
	}
}

// -----------------------------
// Sidereal time
// -----------------------------

// JulianDayAt returns the Julian Day of t (Gregorian calendar, UTC).
func JulianDayAt(t time.Time) float64 {
	return timeutil.JulianDay(t)
}

// MeanSiderealAt returns Greenwich mean sidereal time at t in radians.
func MeanSiderealAt(t time.Time) float64 {
	return timeutil.MeanSidereal(t)
}

// ApparentSiderealAt returns Greenwich apparent sidereal time at t in radians:
// mean sidereal time corrected for nutation.
func ApparentSiderealAt(t time.Time) float64 {
	return timeutil.ApparentSidereal(t)
}

// MeanSiderealNow returns Greenwich mean sidereal time for the current instant.
func MeanSiderealNow() float64 {
	return MeanSiderealAt(time.Now())
}

// ApparentSiderealNow returns Greenwich apparent sidereal time for the current
// instant.
func ApparentSiderealNow() float64 {
	return ApparentSiderealAt(time.Now())
}

// -----------------------------
// Horizontal transform
// -----------------------------

// HourAngle returns the hour angle of target for observer at the given
// Greenwich sidereal time, in [0, 2π).
func HourAngle(target EquatorialCoordinates, observer GeographicCoordinates, sidereal float64) float64 {
	return transform.HourAngle(sidereal, observer.Longitude, target.RightAscension)
}

// AltAzForSidereal converts target to horizontal coordinates for observer at
// the given Greenwich sidereal time (radians).
//
// The azimuth is undefined (NaN or arbitrary) for a target exactly at the
// zenith or nadir, and for an observer exactly at a geographic pole.
func AltAzForSidereal(target EquatorialCoordinates, observer GeographicCoordinates, sidereal float64) HorizontalCoordinates {
	alt, az := transform.ToHorizontal(
		target.RightAscension, target.Declination,
		observer.Latitude, observer.Longitude,
		sidereal,
	)
	return HorizontalCoordinates{Altitude: alt, Azimuth: az}
}

// ApparentAltAzAt returns the altitude and azimuth of target for observer at
// t, using apparent sidereal time. This is the pointing a mount should use.
func ApparentAltAzAt(target EquatorialCoordinates, observer GeographicCoordinates, t time.Time) HorizontalCoordinates {
	return AltAzForSidereal(target, observer, ApparentSiderealAt(t))
}

// MeanAltAzAt is ApparentAltAzAt using mean sidereal time. The two differ by
// at most about a second of time in hour angle.
func MeanAltAzAt(target EquatorialCoordinates, observer GeographicCoordinates, t time.Time) HorizontalCoordinates {
	return AltAzForSidereal(target, observer, MeanSiderealAt(t))
}

// -----------------------------
// Angular rates
// -----------------------------

// ApparentAltAzSpeedsAt returns the altitude and azimuth rates of target for
// observer at t, in radians/second.
//
// Positions are taken at t-epsilon/2 and t+epsilon/2; about a second is a good
// epsilon. Azimuth is not unwrapped, so a target crossing north within the
// window yields a spurious rate near ±2π/epsilon. An epsilon of zero yields
// NaN rates.
func ApparentAltAzSpeedsAt(target EquatorialCoordinates, observer GeographicCoordinates, t time.Time, epsilon time.Duration) HorizontalRates {
	pos := func(at time.Time) (float64, float64) {
		hc := ApparentAltAzAt(target, observer, at)
		return hc.Altitude, hc.Azimuth
	}

	altRate, azRate := rates.Centered(pos, t, epsilon)
	return HorizontalRates{Altitude: altRate, Azimuth: azRate}
}
