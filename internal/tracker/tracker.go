// Package tracker samples a target's pointing and tracking rates, and shows
// them live in a terminal UI built on Bubble Tea.
package tracker

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/thurmanmarka/altaz"
)

// TargetFunc returns a target's equatorial position at t. Stars ignore t;
// the Sun does not.
type TargetFunc func(t time.Time) altaz.EquatorialCoordinates

// Fixed returns a TargetFunc for a star.
func Fixed(eq altaz.EquatorialCoordinates) TargetFunc {
	return func(time.Time) altaz.EquatorialCoordinates { return eq }
}

// Snapshot is everything a mount controller needs at one instant.
type Snapshot struct {
	Time      time.Time
	Target    altaz.EquatorialCoordinates
	Sidereal  float64 // apparent Greenwich sidereal time, radians
	HourAngle float64 // radians
	Position  altaz.HorizontalCoordinates
	Rates     altaz.HorizontalRates
}

// Sample evaluates target for observer at t. epsilon is the finite-difference
// window for the rates.
func Sample(target TargetFunc, observer altaz.GeographicCoordinates, t time.Time, epsilon time.Duration) Snapshot {
	eq := target(t)
	st := altaz.ApparentSiderealAt(t)

	return Snapshot{
		Time:      t,
		Target:    eq,
		Sidereal:  st,
		HourAngle: altaz.HourAngle(eq, observer, st),
		Position:  altaz.AltAzForSidereal(eq, observer, st),
		Rates:     altaz.ApparentAltAzSpeedsAt(eq, observer, t, epsilon),
	}
}

// Config configures the live view.
type Config struct {
	Name     string
	Target   TargetFunc
	Observer altaz.GeographicCoordinates
	Epsilon  time.Duration    // rate window, default 1s
	Interval time.Duration    // refresh interval, default 1s
	Clock    func() time.Time // default time.Now
}

// TickMsg triggers a fresh sample.
type TickMsg time.Time

// Model is the Bubble Tea model for the live tracking view.
type Model struct {
	cfg   Config
	snap  Snapshot
	ready bool
	width int
}

// New creates a tracking model, filling in defaults.
func New(cfg Config) Model {
	if cfg.Epsilon == 0 {
		cfg.Epsilon = time.Second
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return Model{cfg: cfg}
}

// Snapshot returns the latest sample.
func (m Model) Snapshot() Snapshot {
	return m.snap
}

// Init implements tea.Model. It samples immediately.
func (m Model) Init() tea.Cmd {
	clock := m.cfg.Clock
	return func() tea.Msg {
		return TickMsg(clock())
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case TickMsg:
		m.snap = Sample(m.cfg.Target, m.cfg.Observer, time.Time(msg), m.cfg.Epsilon)
		m.ready = true
		return m, m.tick()
	}

	return m, nil
}

func (m Model) tick() tea.Cmd {
	clock := m.cfg.Clock
	return tea.Tick(m.cfg.Interval, func(time.Time) tea.Msg {
		return TickMsg(clock())
	})
}

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Computing...\n"
	}

	s := m.snap
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tracking "+m.cfg.Name) + "\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}

	row("UTC", s.Time.UTC().Format("2006-01-02 15:04:05.0"))
	row("LAST", FormatHours(s.Sidereal+m.cfg.Observer.Longitude))
	row("RA / Dec", FormatRA(s.Target.RightAscension)+"  "+FormatAngle(s.Target.Declination))
	row("Hour angle", FormatHours(s.HourAngle))
	b.WriteString("\n")
	row("Altitude", FormatAngle(s.Position.Altitude))
	row("Azimuth", FormatAngle(s.Position.Azimuth))
	row("Alt rate", FormatRate(s.Rates.Altitude))
	row("Az rate", FormatRate(s.Rates.Azimuth))

	if s.Position.Altitude < 0 {
		b.WriteString("\n" + warnStyle.Render("Target is below the horizon") + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("q to quit") + "\n")
	return b.String()
}

// FormatAngle renders radians as signed degrees, minutes and seconds.
func FormatAngle(rad float64) string {
	return fmt.Sprintf("%.1s", sexa.FmtAngle(unit.Angle(rad)))
}

// FormatRA renders a right ascension in hours, minutes and seconds.
func FormatRA(rad float64) string {
	return fmt.Sprintf("%.2s", sexa.FmtRA(unit.RAFromRad(rad)))
}

// FormatHours renders an angle in [0, 2π) as hours of time.
func FormatHours(rad float64) string {
	return fmt.Sprintf("%.2s", sexa.FmtTime(unit.TimeFromRad(rad).Mod1()))
}

// FormatRate renders an angular rate in arcseconds per second.
func FormatRate(radPerSec float64) string {
	return fmt.Sprintf("%+.2f″/s", unit.Angle(radPerSec).Sec())
}
