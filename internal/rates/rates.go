// Package rates estimates how fast a target moves across the sky by
// differencing its horizontal position over a short time window.
package rates

import (
	"math"
	"time"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/thurmanmarka/altaz/internal/timeutil"
)

// PositionFunc returns altitude and azimuth (radians) at time t.
type PositionFunc func(t time.Time) (alt, az float64)

// Centered estimates the altitude and azimuth rates (radians/second) of pos
// at t with a symmetric difference: pos is sampled at t-epsilon/2 and
// t+epsilon/2 and the change is divided by epsilon in seconds.
//
// Azimuth is not unwrapped. If the path crosses north (0/2π) inside the
// window, the azimuth rate comes out near ±2π/epsilon.
//
// An epsilon of zero samples nothing and returns NaN for both rates.
func Centered(pos PositionFunc, t time.Time, epsilon time.Duration) (altRate, azRate float64) {
	if epsilon == 0 {
		return math.NaN(), math.NaN()
	}

	half := math.Abs(epsilon.Seconds()) / 2

	// x[0] is the offset from t in seconds; y is (alt, az).
	f := func(y, x []float64) {
		y[0], y[1] = pos(timeutil.OffsetSeconds(t, x[0]))
	}

	jac := mat.NewDense(2, 1, nil)
	fd.Jacobian(jac, f, []float64{0}, &fd.JacobianSettings{
		Formula: fd.Central,
		Step:    half,
	})

	return jac.At(0, 0), jac.At(1, 0)
}
