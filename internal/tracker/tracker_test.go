package tracker

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/soniakeys/unit"

	"github.com/thurmanmarka/altaz"
)

var (
	vega = altaz.EquatorialFromUnits(unit.NewRA(18, 36, 56), unit.NewAngle(' ', 38, 47, 1))
	site = altaz.GeographicFromRadians(
		unit.NewAngle(' ', 40, 20, 5.57).Rad(),
		unit.NewAngle('-', 74, 37, 16.06).Rad(),
	)
	observedAt = time.Date(2025, time.August, 7, 15, 18, 18, 0, time.UTC)
)

func fixedClock() time.Time { return observedAt }

func TestSample(t *testing.T) {
	s := Sample(Fixed(vega), site, observedAt, time.Second)

	want := altaz.ApparentAltAzAt(vega, site, observedAt)
	if s.Position != want {
		t.Errorf("Position = %+v, want %+v", s.Position, want)
	}

	wantRates := altaz.ApparentAltAzSpeedsAt(vega, site, observedAt, time.Second)
	if s.Rates != wantRates {
		t.Errorf("Rates = %+v, want %+v", s.Rates, wantRates)
	}

	if s.Target != vega {
		t.Errorf("Target = %+v, want %+v", s.Target, vega)
	}
	if s.HourAngle < 0 || s.HourAngle >= 2*math.Pi {
		t.Errorf("HourAngle = %v, out of [0, 2π)", s.HourAngle)
	}
}

func TestSample_MovingTarget(t *testing.T) {
	var asked []time.Time
	target := func(at time.Time) altaz.EquatorialCoordinates {
		asked = append(asked, at)
		return altaz.SunAt(at)
	}

	Sample(target, site, observedAt, time.Second)

	if len(asked) != 1 || !asked[0].Equal(observedAt) {
		t.Errorf("target evaluated at %v, want once at %v", asked, observedAt)
	}
}

func TestModel_TickSamples(t *testing.T) {
	m := New(Config{Name: "Vega", Target: Fixed(vega), Observer: site, Clock: fixedClock})

	if v := m.View(); !strings.Contains(v, "Computing") {
		t.Errorf("View() before first tick = %q", v)
	}

	msg := m.Init()()
	tick, ok := msg.(TickMsg)
	if !ok {
		t.Fatalf("Init() produced %T, want TickMsg", msg)
	}

	next, cmd := m.Update(tick)
	if cmd == nil {
		t.Error("Update(TickMsg) did not schedule the next tick")
	}

	got := next.(Model)
	if !got.Snapshot().Time.Equal(observedAt) {
		t.Errorf("snapshot time = %v, want %v", got.Snapshot().Time, observedAt)
	}

	view := got.View()
	for _, want := range []string{"Tracking Vega", "Altitude", "Azimuth", "Alt rate", "below the horizon"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestModel_Quit(t *testing.T) {
	m := New(Config{Name: "Vega", Target: Fixed(vega), Observer: site, Clock: fixedClock})

	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	}

	for _, k := range keys {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("Update(%q) returned no command", k.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("Update(%q) did not quit", k.String())
		}
	}
}

func TestModel_Defaults(t *testing.T) {
	m := New(Config{Target: Fixed(vega)})
	if m.cfg.Epsilon != time.Second || m.cfg.Interval != time.Second || m.cfg.Clock == nil {
		t.Errorf("defaults not applied: %+v", m.cfg)
	}
}

func TestFormatRate(t *testing.T) {
	// Earth's rotation is 15.04 arcseconds per second.
	got := FormatRate(7.2921159e-5)
	if got != "+15.04″/s" {
		t.Errorf("FormatRate(ω) = %q, want +15.04″/s", got)
	}
}
