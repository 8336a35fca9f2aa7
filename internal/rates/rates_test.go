package rates

import (
	"math"
	"testing"
	"time"

	"github.com/thurmanmarka/altaz/internal/timeutil"
)

var t0 = time.Date(2025, time.August, 7, 15, 18, 18, 0, time.UTC)

// linear returns a position that moves at fixed rates from t0.
func linear(altRate, azRate float64) PositionFunc {
	return func(t time.Time) (float64, float64) {
		s := t.Sub(t0).Seconds()
		return 0.3 + altRate*s, 2.0 + azRate*s
	}
}

func TestCentered_Linear(t *testing.T) {
	tests := []struct {
		name           string
		altRate, azRate float64
		epsilon        time.Duration
	}{
		{"one second", 8.73e-6, 5.76e-5, time.Second},
		{"ten milliseconds", -3e-5, 7e-5, 10 * time.Millisecond},
		{"one minute", 1e-4, -2e-4, time.Minute},
		{"negative epsilon", 2e-5, 4e-5, -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alt, az := Centered(linear(tt.altRate, tt.azRate), t0, tt.epsilon)
			if math.Abs(alt-tt.altRate) > 1e-12 {
				t.Errorf("altitude rate = %g, want %g", alt, tt.altRate)
			}
			if math.Abs(az-tt.azRate) > 1e-12 {
				t.Errorf("azimuth rate = %g, want %g", az, tt.azRate)
			}
		})
	}
}

func TestCentered_SamplesSymmetricWindow(t *testing.T) {
	var seen []time.Time
	pos := func(t time.Time) (float64, float64) {
		seen = append(seen, t)
		return 0, 0
	}

	Centered(pos, t0, time.Second)

	if len(seen) != 2 {
		t.Fatalf("position sampled %d times, want 2", len(seen))
	}

	want := map[time.Time]bool{
		t0.Add(-500 * time.Millisecond): true,
		t0.Add(500 * time.Millisecond):  true,
	}
	for _, s := range seen {
		if !want[s] {
			t.Errorf("unexpected sample time %v", s)
		}
	}
}

func TestCentered_ZeroEpsilon(t *testing.T) {
	called := false
	pos := func(time.Time) (float64, float64) {
		called = true
		return 1, 1
	}

	alt, az := Centered(pos, t0, 0)
	if !math.IsNaN(alt) || !math.IsNaN(az) {
		t.Errorf("Centered(epsilon=0) = (%v, %v), want NaN rates", alt, az)
	}
	if called {
		t.Error("Centered(epsilon=0) sampled the position function")
	}
}

func TestCentered_AzimuthSeamIsNotUnwrapped(t *testing.T) {
	// Azimuth creeps east through north at 1e-4 rad/s and is wrapped into
	// [0, 2π) the same way the transform wraps it.
	pos := func(t time.Time) (float64, float64) {
		s := t.Sub(t0).Seconds()
		return 0, timeutil.NormalizeTau(1e-4 * s)
	}

	_, az := Centered(pos, t0, time.Second)

	// The naive difference jumps by almost a full turn.
	if math.Abs(az) < math.Pi {
		t.Errorf("azimuth rate across the seam = %g, want a spurious ~2π/epsilon jump", az)
	}
}
