package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
	"go.uber.org/zap"

	"github.com/thurmanmarka/altaz"
	"github.com/thurmanmarka/altaz/internal/config"
	"github.com/thurmanmarka/altaz/internal/log"
	"github.com/thurmanmarka/altaz/internal/tracker"
)

func main() {
	// No args or a leading flag means point mode.
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		runPoint(os.Args[1:])
		return
	}

	switch os.Args[1] {
	case "point":
		runPoint(os.Args[2:])
	case "sidereal":
		runSidereal(os.Args[2:])
	case "crossings":
		runCrossings(os.Args[2:])
	case "track":
		runTrack(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `altaz – telescope pointing and tracking rates

Usage:
  altaz [flags]              # alt/az and rates now (default mode)
  altaz point [flags]        # same as above
  altaz sidereal [flags]     # Julian Day and sidereal times
  altaz crossings [flags]    # when a target crosses an altitude on a date
  altaz track [flags]        # live tracking view

Targets come from -ra/-dec, from -target looked up in -config, or -target sun.
The observer comes from -lat/-lon or the config's observer block.

Run "altaz <subcommand> -h" for flags.
`)
}

// ---------------------
// Shared flags
// ---------------------

type siteFlags struct {
	configPath *string
	target     *string
	lat, lon   *string
	ra, dec    *string
	debug      *bool
}

func addSiteFlags(fs *flag.FlagSet) *siteFlags {
	return &siteFlags{
		configPath: fs.String("config", "", "path to a YAML file with observer and targets"),
		target:     fs.String("target", "", `target name from -config, or "sun"`),
		lat:        fs.String("lat", "", `observer latitude, e.g. 40.3349 or "40:20:05.57"`),
		lon:        fs.String("lon", "", `observer longitude, east positive, e.g. "-74:37:16.06"`),
		ra:         fs.String("ra", "", `target right ascension in hours, e.g. "18h36m56s"`),
		dec:        fs.String("dec", "", `target declination in degrees, e.g. "+38d47m01s"`),
		debug:      fs.Bool("debug", false, "enable debug logging"),
	}
}

// resolved is a target and observer ready for computation.
type resolved struct {
	name     string
	target   tracker.TargetFunc
	sun      bool
	observer altaz.GeographicCoordinates
}

func (s *siteFlags) resolve() (resolved, error) {
	var (
		r   resolved
		cfg *config.Config
		err error
	)

	if *s.configPath != "" {
		cfg, err = config.Load(*s.configPath)
		if err != nil {
			return r, fmt.Errorf("loading config %q: %w", *s.configPath, err)
		}
		log.Debugw("loaded config", "path", *s.configPath, "targets", len(cfg.Targets))
	}

	// Observer: flags override the file.
	obs := config.Observer{Name: "command line", Latitude: *s.lat, Longitude: *s.lon}
	if cfg != nil {
		if obs.Latitude == "" {
			obs.Latitude = cfg.Observer.Latitude
		}
		if obs.Longitude == "" {
			obs.Longitude = cfg.Observer.Longitude
		}
		if cfg.Observer.Name != "" && *s.lat == "" && *s.lon == "" {
			obs.Name = cfg.Observer.Name
		}
	}
	r.observer, err = obs.Coordinates()
	if errors.Is(err, config.ErrNoObserver) {
		return r, fmt.Errorf("%w: use -lat and -lon or -config", err)
	}
	if err != nil {
		return r, err
	}

	switch {
	case *s.ra != "" || *s.dec != "":
		t := config.Target{Name: *s.target, RA: *s.ra, Dec: *s.dec}
		if t.Name == "" {
			t.Name = "target"
		}
		eq, err := t.Coordinates()
		if err != nil {
			return r, err
		}
		r.name, r.target = t.Name, tracker.Fixed(eq)

	case strings.EqualFold(*s.target, "sun"):
		r.name, r.target, r.sun = "Sun", altaz.SunAt, true

	case *s.target != "":
		if cfg == nil {
			return r, fmt.Errorf("-target %q needs -config (or use -ra/-dec)", *s.target)
		}
		t, err := cfg.Target(*s.target)
		if err != nil {
			return r, err
		}
		eq, err := t.Coordinates()
		if err != nil {
			return r, err
		}
		r.name, r.target = t.Name, tracker.Fixed(eq)

	default:
		return r, errors.New("no target: use -ra and -dec, or -target")
	}

	log.Debugw("resolved target",
		"target", r.name,
		"observer", obs.Name,
		"lat_deg", unit.Angle(r.observer.Latitude).Deg(),
		"lon_deg", unit.Angle(r.observer.Longitude).Deg())

	return r, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
	}
	var err error
	for _, layout := range layouts {
		var t time.Time
		t, err = time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse time %q: %w", s, err)
}

func initLog(debug bool) {
	if err := log.Init(debug); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// ---------------------
// Point (default) mode
// ---------------------

func runPoint(args []string) {
	fs := flag.NewFlagSet("point", flag.ExitOnError)
	site := addSiteFlags(fs)
	timeStr := fs.String("time", "", "instant in RFC3339 or 'YYYY-MM-DDTHH:MM' local time (default now)")
	eps := fs.Duration("eps", time.Second, "finite-difference window for the rates")
	jsonOut := fs.Bool("json", false, "output result as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: altaz point [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	initLog(*site.debug)
	defer log.Sync()

	r, err := site.resolve()
	if err != nil {
		log.Fatalf("%v", err)
	}
	t, err := parseTime(*timeStr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	snap := tracker.Sample(r.target, r.observer, t, *eps)
	log.Debugw("sampled", "time", t, "alt_rad", snap.Position.Altitude, "az_rad", snap.Position.Azimuth)

	if *jsonOut {
		printPointJSON(r, snap, *eps)
	} else {
		printPointHuman(r, snap)
	}
}

func printPointHuman(r resolved, s tracker.Snapshot) {
	fmt.Printf("%s at %s\n", r.name, s.Time.Format(time.RFC3339))
	fmt.Printf("  RA / Dec   : %s  %s\n", tracker.FormatRA(s.Target.RightAscension), tracker.FormatAngle(s.Target.Declination))
	fmt.Printf("  Hour angle : %s\n", tracker.FormatHours(s.HourAngle))
	fmt.Printf("  Altitude   : %s\n", tracker.FormatAngle(s.Position.Altitude))
	fmt.Printf("  Azimuth    : %s\n", tracker.FormatAngle(s.Position.Azimuth))
	fmt.Printf("  Alt rate   : %s\n", tracker.FormatRate(s.Rates.Altitude))
	fmt.Printf("  Az rate    : %s\n", tracker.FormatRate(s.Rates.Azimuth))
	if s.Position.Altitude < 0 {
		fmt.Println("  (below the horizon)")
	}
}

type pointJSON struct {
	Target         string    `json:"target"`
	Time           time.Time `json:"time"`
	RightAscension float64   `json:"ra_rad"`
	Declination    float64   `json:"dec_rad"`
	Latitude       float64   `json:"latitude_rad"`
	Longitude      float64   `json:"longitude_rad"`
	Sidereal       float64   `json:"gast_rad"`
	HourAngle      float64   `json:"hour_angle_rad"`
	Altitude       float64   `json:"altitude_rad"`
	Azimuth        float64   `json:"azimuth_rad"`
	AltitudeDeg    float64   `json:"altitude_deg"`
	AzimuthDeg     float64   `json:"azimuth_deg"`
	AltitudeRate   float64   `json:"altitude_rate_rad_s"`
	AzimuthRate    float64   `json:"azimuth_rate_rad_s"`
	Epsilon        string    `json:"epsilon"`
}

func printPointJSON(r resolved, s tracker.Snapshot, eps time.Duration) {
	out := pointJSON{
		Target:         r.name,
		Time:           s.Time,
		RightAscension: s.Target.RightAscension,
		Declination:    s.Target.Declination,
		Latitude:       r.observer.Latitude,
		Longitude:      r.observer.Longitude,
		Sidereal:       s.Sidereal,
		HourAngle:      s.HourAngle,
		Altitude:       s.Position.Altitude,
		Azimuth:        s.Position.Azimuth,
		AltitudeDeg:    unit.Angle(s.Position.Altitude).Deg(),
		AzimuthDeg:     unit.Angle(s.Position.Azimuth).Deg(),
		AltitudeRate:   s.Rates.Altitude,
		AzimuthRate:    s.Rates.Azimuth,
		Epsilon:        eps.String(),
	}
	// encoding/json rejects NaN; a zero window leaves the rates undefined.
	if math.IsNaN(out.AltitudeRate) || math.IsNaN(out.AzimuthRate) {
		out.AltitudeRate, out.AzimuthRate = 0, 0
		log.Warnw("rates undefined for a zero window, reporting 0", "eps", eps)
	}
	writeJSON(out)
}

func writeJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("failed to encode JSON: %v", err)
	}
}

// ---------------------
// Sidereal subcommand
// ---------------------

func runSidereal(args []string) {
	fs := flag.NewFlagSet("sidereal", flag.ExitOnError)
	timeStr := fs.String("time", "", "instant in RFC3339 or 'YYYY-MM-DDTHH:MM' local time (default now)")
	lon := fs.String("lon", "", "optional observer longitude for local sidereal time")
	debug := fs.Bool("debug", false, "enable debug logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: altaz sidereal [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	initLog(*debug)
	defer log.Sync()

	t, err := parseTime(*timeStr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	gmst := altaz.MeanSiderealAt(t)
	gast := altaz.ApparentSiderealAt(t)

	fmt.Printf("Sidereal time at %s\n", t.UTC().Format(time.RFC3339Nano))
	fmt.Printf("  Julian Day : %.6f\n", altaz.JulianDayAt(t))
	fmt.Printf("  GMST       : %s\n", fmtTime(gmst))
	fmt.Printf("  GAST       : %s\n", fmtTime(gast))
	fmt.Printf("  Eq. equinox: %+.4fs\n", unit.TimeFromRad(gast-gmst).Sec())

	if *lon != "" {
		l, err := config.ParseAngle(*lon)
		if err != nil {
			log.Fatalf("invalid -lon: %v", err)
		}
		fmt.Printf("  LAST       : %s\n", fmtTime(gast+l))
	}
}

func fmtTime(rad float64) string {
	return fmt.Sprintf("%.4s", sexa.FmtTime(unit.TimeFromRad(rad).Mod1()))
}

// ---------------------
// Crossings subcommand
// ---------------------

func runCrossings(args []string) {
	fs := flag.NewFlagSet("crossings", flag.ExitOnError)
	site := addSiteFlags(fs)
	dateS := fs.String("date", "", "date in YYYY-MM-DD (default today in -tz)")
	tzName := fs.String("tz", "Local", "IANA time zone name for the date and output")
	limit := fs.String("alt", "0", "altitude limit in degrees, or horizon, civil, nautical, astronomical")
	jsonOut := fs.Bool("json", false, "output result as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: altaz crossings [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	initLog(*site.debug)
	defer log.Sync()

	loc, err := time.LoadLocation(*tzName)
	if err != nil {
		log.Fatalf("invalid time zone %q: %v", *tzName, err)
	}

	var date time.Time
	if *dateS == "" {
		now := time.Now().In(loc)
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	} else {
		date, err = time.ParseInLocation("2006-01-02", *dateS, loc)
		if err != nil {
			log.Fatalf("invalid -date %q: %v", *dateS, err)
		}
	}

	alt, err := parseLimit(*limit)
	if err != nil {
		log.Fatalf("invalid -alt: %v", err)
	}

	r, err := site.resolve()
	if err != nil {
		log.Fatalf("%v", err)
	}

	var c altaz.Crossings
	if r.sun {
		c, err = altaz.SunCrossingsFor(r.observer, date, alt)
	} else {
		c, err = altaz.CrossingsFor(r.target(date), r.observer, date, alt)
	}
	if err != nil && !errors.Is(err, altaz.ErrNoCrossing) {
		log.Fatalf("error computing crossings: %v", err)
	}

	if *jsonOut {
		out := struct {
			Target   string     `json:"target"`
			Date     string     `json:"date"`
			Timezone string     `json:"timezone"`
			Altitude float64    `json:"altitude_deg"`
			Rise     *time.Time `json:"rise,omitempty"`
			Set      *time.Time `json:"set,omitempty"`
		}{
			Target:   r.name,
			Date:     date.Format("2006-01-02"),
			Timezone: loc.String(),
			Altitude: unit.Angle(alt).Deg(),
		}
		if c.HasRise {
			out.Rise = &c.Rise
		}
		if c.HasSet {
			out.Set = &c.Set
		}
		writeJSON(out)
		return
	}

	fmt.Printf("%s crossing %.2f° on %s (%s)\n\n", r.name, unit.Angle(alt).Deg(), date.Format("2006-01-02"), loc)
	if errors.Is(err, altaz.ErrNoCrossing) {
		noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, loc)
		if altaz.ApparentAltAzAt(r.target(noon), r.observer, noon).Altitude > alt {
			fmt.Println("Stays above the limit all day.")
		} else {
			fmt.Println("Stays below the limit all day.")
		}
		return
	}
	if c.HasRise {
		fmt.Printf("Rise: %s\n", c.Rise.Format(time.RFC3339))
	} else {
		fmt.Println("Rise: none")
	}
	if c.HasSet {
		fmt.Printf("Set:  %s\n", c.Set.Format(time.RFC3339))
	} else {
		fmt.Println("Set:  none")
	}
}

func parseLimit(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "horizon":
		return altaz.Horizon, nil
	case "civil":
		return altaz.CivilTwilight, nil
	case "nautical":
		return altaz.NauticalTwilight, nil
	case "astronomical":
		return altaz.AstronomicalTwilight, nil
	}
	return config.ParseLatitude(s)
}

// ---------------------
// Track subcommand
// ---------------------

func runTrack(args []string) {
	fs := flag.NewFlagSet("track", flag.ExitOnError)
	site := addSiteFlags(fs)
	eps := fs.Duration("eps", time.Second, "finite-difference window for the rates")
	interval := fs.Duration("interval", time.Second, "refresh interval")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: altaz track [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	initLog(*site.debug)
	defer log.Sync()

	r, err := site.resolve()
	if err != nil {
		log.Fatalf("%v", err)
	}

	// The UI owns the terminal from here on.
	log.SetLogger(zap.NewNop())

	m := tracker.New(tracker.Config{
		Name:     r.name,
		Target:   r.target,
		Observer: r.observer,
		Epsilon:  *eps,
		Interval: *interval,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tracker failed: %v\n", err)
		os.Exit(1)
	}
}
