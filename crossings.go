package altaz

import (
	"errors"
	"math"
	"time"

	"github.com/thurmanmarka/altaz/internal/solver"
)

// Crossings holds the times a target passes through an altitude on a date.
type Crossings struct {
	Rise time.Time // upward crossing
	Set  time.Time // downward crossing

	// HasRise / HasSet report whether each crossing happens on this date.
	HasRise bool
	HasSet  bool
}

// Altitude limits for CrossingsFor and SunCrossingsFor, in radians. The
// twilight limits refer to the Sun's centre.
const (
	Horizon              = 0.0
	CivilTwilight        = -6 * math.Pi / 180
	NauticalTwilight     = -12 * math.Pi / 180
	AstronomicalTwilight = -18 * math.Pi / 180
)

var (
	// ErrNoCrossing is returned when a target stays above or below the
	// requested altitude for the whole date.
	ErrNoCrossing = errors.New("target does not cross this altitude on this date")
)

// CrossingsFor finds when target rises above and sets below altitude
// (radians) for observer during the local calendar day of date. The date's
// time zone defines the day and is used for the returned times.
//
// Use altitude 0 for the geometric horizon, or a mount's altitude limit.
// Refraction is not applied.
func CrossingsFor(target EquatorialCoordinates, observer GeographicCoordinates, date time.Time, altitude float64) (Crossings, error) {
	return crossings(func(time.Time) EquatorialCoordinates { return target }, observer, date, altitude)
}

// SunCrossingsFor is CrossingsFor for the Sun, whose position is
// recomputed at every step of the search. With Horizon it gives geometric
// sunrise and sunset; with the twilight limits, dawn (Rise) and dusk (Set).
func SunCrossingsFor(observer GeographicCoordinates, date time.Time, altitude float64) (Crossings, error) {
	return crossings(SunAt, observer, date, altitude)
}

func crossings(target func(time.Time) EquatorialCoordinates, observer GeographicCoordinates, date time.Time, altitude float64) (Crossings, error) {
	loc := date.Location()
	year, month, day := date.Date()

	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	end := time.Date(year, month, day+1, 0, 0, 0, 0, loc)

	altFunc := func(t time.Time) float64 {
		return ApparentAltAzAt(target(t), observer, t).Altitude
	}

	up, down := solver.FindCrossings(altFunc, start, end, altitude, solver.DefaultSearch)
	if !up.OK && !down.OK {
		return Crossings{}, ErrNoCrossing
	}

	var c Crossings
	if up.OK {
		c.Rise = up.Time.In(loc)
		c.HasRise = true
	}
	if down.OK {
		c.Set = down.Time.In(loc)
		c.HasSet = true
	}

	return c, nil
}
