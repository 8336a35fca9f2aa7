// Package timeutil turns civil timestamps into the angles that drive the
// horizontal transform: Julian Day, mean sidereal time and apparent sidereal
// time.
//
// The heavy lifting (Julian Day, sidereal series, nutation, obliquity) is
// delegated to github.com/soniakeys/meeus. This package only decomposes a
// time.Time and composes the pieces.
package timeutil

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"
)

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

// SiderealRate is the ratio of sidereal to solar (UT) time.
const SiderealRate = 1.00273790935

// FractionalDay folds the clock time of t (UTC) into its day of month:
//
//	day + (hour + minute/60 + second/3600) / 24
//
// Seconds include the nanosecond part.
func FractionalDay(t time.Time) float64 {
	u := t.UTC()
	sec := float64(u.Second()) + float64(u.Nanosecond())/1e9
	hour := float64(u.Hour()) + float64(u.Minute())/60.0 + sec/3600.0
	return float64(u.Day()) + hour/24.0
}

// JulianDay returns the Julian Day of t, treating the date as Gregorian.
//
// Calendar fields are not validated; time.Time already normalizes them.
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	return julian.CalendarGregorianToJD(u.Year(), int(u.Month()), FractionalDay(u))
}

// MeanSidereal returns Greenwich mean sidereal time at t in radians, [0, 2π).
func MeanSidereal(t time.Time) float64 {
	return sidereal.Mean(JulianDay(t)).Rad()
}

// ApparentSidereal returns Greenwich apparent sidereal time at t in radians.
//
// Mean sidereal time is corrected by the equation of the equinoxes,
// Δψ·cos ε, where ε is the true obliquity (mean obliquity plus nutation in
// obliquity).
func ApparentSidereal(t time.Time) float64 {
	jd := JulianDay(t)

	nutLon, nutObl := nutation.Nutation(jd)
	trueObl := nutation.MeanObliquity(jd) + nutObl

	mean := sidereal.Mean(jd)
	return apparentFromMean(mean, nutLon, trueObl)
}

func apparentFromMean(mean unit.Time, nutLon, trueObl unit.Angle) float64 {
	return mean.Rad() + nutLon.Rad()*trueObl.Cos()
}

// NormalizeTau reduces x into [0, 2π) with a Euclidean (never negative) modulo.
func NormalizeTau(x float64) float64 {
	r := unit.PMod(x, Tau)
	// tiny negative inputs round up to exactly Tau
	if r >= Tau {
		return 0
	}
	return r
}

// OffsetSeconds returns t shifted by s fractional seconds, rounded to the
// nearest nanosecond.
func OffsetSeconds(t time.Time, s float64) time.Time {
	return t.Add(time.Duration(math.Round(s * float64(time.Second))))
}
