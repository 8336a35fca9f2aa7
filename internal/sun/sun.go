// Package sun provides the Sun's apparent geocentric equatorial position so
// it can be pointed at like any other target.
package sun

import (
	"time"

	"github.com/soniakeys/meeus/v3/solar"

	"github.com/thurmanmarka/altaz/internal/timeutil"
)

// Equatorial returns the Sun's apparent right ascension and declination at t,
// in radians.
//
// Meeus' low-precision solar theory is good to about 0.01°, well below the
// Sun's 0.5° disc. The UT Julian Day is used in place of the dynamical one;
// the ~70 s difference moves the Sun by about 3″.
func Equatorial(t time.Time) (ra, dec float64) {
	jd := timeutil.JulianDay(t)

	α, δ := solar.ApparentEquatorial(jd)
	return α.Rad(), δ.Rad()
}
