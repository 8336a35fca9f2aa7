package altaz

import (
	"time"

	"github.com/thurmanmarka/altaz/internal/sun"
)

// SunAt returns the Sun's apparent geocentric equatorial coordinates at t, so
// it can be passed to ApparentAltAzAt like a star.
//
// The Sun moves about a degree a day against the stars, so re-evaluate it
// rather than tracking a fixed result for long.
func SunAt(t time.Time) EquatorialCoordinates {
	ra, dec := sun.Equatorial(t)
	return EquatorialCoordinates{RightAscension: ra, Declination: dec}
}
