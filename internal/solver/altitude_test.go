package solver

import (
	"math"
	"testing"
	"time"
)

var day = time.Date(2025, time.August, 7, 0, 0, 0, 0, time.UTC)

// sinusoid rises through zero at 06:00 and sets at 18:00.
func sinusoid(t time.Time) float64 {
	h := t.Sub(day).Hours()
	return 0.5 * math.Sin((h-6)/24*2*math.Pi)
}

func TestFindCrossing(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		dir       Direction
		want      time.Time
	}{
		{"rise", 0, Up, day.Add(6 * time.Hour)},
		{"set", 0, Down, day.Add(18 * time.Hour)},
		// asin(0.5) of the amplitude is 2h past the zero crossing.
		{"rise above limit", 0.25, Up, day.Add(8 * time.Hour)},
		{"set below limit", 0.25, Down, day.Add(16 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := FindCrossing(sinusoid, day, day.Add(24*time.Hour), tt.threshold, tt.dir, DefaultSearch)
			if !res.OK {
				t.Fatalf("FindCrossing() found nothing")
			}

			d := res.Time.Sub(tt.want)
			if d < 0 {
				d = -d
			}
			if d > 2*time.Second {
				t.Errorf("FindCrossing() = %v, want %v (off by %v)", res.Time, tt.want, d)
			}
		})
	}
}

func TestFindCrossing_Never(t *testing.T) {
	res := FindCrossing(sinusoid, day, day.Add(24*time.Hour), 0.6, Up, DefaultSearch)
	if res.OK {
		t.Errorf("FindCrossing() above the maximum = %v, want no crossing", res.Time)
	}
}

func TestFindCrossing_EmptyWindow(t *testing.T) {
	res := FindCrossing(sinusoid, day, day, 0, Up, DefaultSearch)
	if res.OK {
		t.Error("FindCrossing() on an empty window reported a crossing")
	}
}

func TestFindCrossings(t *testing.T) {
	up, down := FindCrossings(sinusoid, day, day.Add(24*time.Hour), 0, Search{Steps: 2})
	// Two samples (00:00 and 24:00) are both negative: nothing bracketed.
	if up.OK || down.OK {
		t.Errorf("FindCrossings() with a coarse scan = (%v, %v), want none", up.OK, down.OK)
	}

	up, down = FindCrossings(sinusoid, day, day.Add(24*time.Hour), 0, DefaultSearch)
	if !up.OK || !down.OK {
		t.Fatalf("FindCrossings() = (%v, %v), want both", up.OK, down.OK)
	}
	if !up.Time.Before(down.Time) {
		t.Errorf("rise %v is not before set %v", up.Time, down.Time)
	}
}
