// Package solver finds when a target's altitude crosses a given value.
package solver

import (
	"time"
)

// AltitudeFunc returns altitude in radians at time t.
type AltitudeFunc func(t time.Time) float64

// Direction describes whether we are looking for a rising or setting crossing.
type Direction int

const (
	// Up means altitude is increasing through the threshold (rise).
	Up Direction = iota
	// Down means altitude is decreasing through the threshold (set).
	Down
)

// Result holds the output of a crossing search.
type Result struct {
	Time time.Time // approximate time of the crossing
	OK   bool      // true if a crossing was found
}

// Search configures how a window is scanned.
type Search struct {
	Steps     int           // samples across the window, at least 2
	Tolerance time.Duration // bisection stops once the bracket is this narrow
}

// DefaultSearch samples every 15 minutes over a day and refines to one second.
var DefaultSearch = Search{Steps: 97, Tolerance: time.Second}

// FindCrossing searches [start, end] for the first time f crosses threshold
// (radians) in direction dir, bracketing by sampling and then bisecting.
//
// Crossings closer together than the sampling interval can be missed.
func FindCrossing(f AltitudeFunc, start, end time.Time, threshold float64, dir Direction, s Search) Result {
	if !start.Before(end) {
		return Result{}
	}
	steps := s.Steps
	if steps < 2 {
		steps = 2
	}

	interval := end.Sub(start) / time.Duration(steps-1)

	prevT := start
	prev := f(prevT) - threshold

	for i := 1; i < steps; i++ {
		t := start.Add(time.Duration(i) * interval)
		if i == steps-1 {
			t = end
		}
		cur := f(t) - threshold

		if crosses(prev, cur, dir) {
			return bisect(f, prevT, t, prev, threshold, dir, s.Tolerance)
		}

		prevT, prev = t, cur
	}

	return Result{}
}

// FindCrossings returns the first upward and first downward crossings of
// threshold in [start, end].
func FindCrossings(f AltitudeFunc, start, end time.Time, threshold float64, s Search) (up, down Result) {
	up = FindCrossing(f, start, end, threshold, Up, s)
	down = FindCrossing(f, start, end, threshold, Down, s)
	return up, down
}

func crosses(a, b float64, dir Direction) bool {
	switch dir {
	case Up:
		return a < 0 && b >= 0
	case Down:
		return a > 0 && b <= 0
	default:
		return a*b <= 0
	}
}

func bisect(f AltitudeFunc, a, b time.Time, fa, threshold float64, dir Direction, tol time.Duration) Result {
	if tol <= 0 {
		tol = time.Second
	}

	for b.Sub(a) > tol {
		mid := a.Add(b.Sub(a) / 2)
		fm := f(mid) - threshold

		if crosses(fa, fm, dir) {
			b = mid
		} else {
			a, fa = mid, fm
		}
	}

	return Result{
		Time: a.Add(b.Sub(a) / 2),
		OK:   true,
	}
}
