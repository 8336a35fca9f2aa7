// Package transform converts equatorial coordinates to horizontal coordinates
// for an observer, given Greenwich sidereal time. All angles are radians.
package transform

import (
	"math"

	"github.com/thurmanmarka/altaz/internal/timeutil"
)

// LocalSidereal returns local sidereal time: Greenwich sidereal time plus the
// observer's east-positive longitude.
func LocalSidereal(greenwichSidereal, lon float64) float64 {
	return greenwichSidereal + lon
}

// HourAngle returns the target's hour angle in [0, 2π).
//
// The hour angle is local sidereal time minus right ascension. Do not swap in
// meeus' observer hour-angle helper here: it subtracts longitude, which is
// wrong for the east-positive convention used throughout this module.
func HourAngle(greenwichSidereal, lon, ra float64) float64 {
	return timeutil.NormalizeTau(LocalSidereal(greenwichSidereal, lon) - ra)
}

// Altitude returns the altitude of a target at hour angle ha and declination
// dec, seen from latitude lat. The result lies in [-π/2, π/2].
func Altitude(ha, dec, lat float64) float64 {
	sinDec, cosDec := math.Sincos(dec)
	sinLat, cosLat := math.Sincos(lat)

	sinAlt := sinDec*sinLat + cosDec*cosLat*math.Cos(ha)

	// Clamp to handle numerical noise at the zenith and nadir
	if sinAlt > 1 {
		sinAlt = 1
	} else if sinAlt < -1 {
		sinAlt = -1
	}

	return math.Asin(sinAlt)
}

// Azimuth returns the azimuth (north through east) of a target at hour angle
// ha and declination dec, seen from latitude lat, given its altitude alt.
// The raw atan2 result lies in (-π, π]; callers normalize it.
//
// cos(alt) and cos(lat) appear as denominators, so the result is NaN or
// meaningless at the zenith, the nadir and the geographic poles.
func Azimuth(ha, dec, lat, alt float64) float64 {
	sinDec, cosDec := math.Sincos(dec)
	sinAlt, cosAlt := math.Sincos(alt)
	sinLat, cosLat := math.Sincos(lat)

	y := -(cosDec * math.Sin(ha)) / cosAlt
	x := (sinDec - sinAlt*sinLat) / (cosAlt * cosLat)

	return math.Atan2(y, x)
}

// ToHorizontal converts (ra, dec) to (alt, az) for an observer at (lat, lon)
// at the given Greenwich sidereal time. Azimuth is normalized into [0, 2π).
func ToHorizontal(ra, dec, lat, lon, greenwichSidereal float64) (alt, az float64) {
	ha := HourAngle(greenwichSidereal, lon, ra)
	alt = Altitude(ha, dec, lat)
	az = timeutil.NormalizeTau(Azimuth(ha, dec, lat, alt))
	return alt, az
}
