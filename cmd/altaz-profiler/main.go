package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/thurmanmarka/altaz"
	"github.com/thurmanmarka/altaz/internal/config"
	"github.com/thurmanmarka/altaz/internal/log"
)

// residuals collects per-row errors in arcseconds.
type residuals struct {
	alt []float64 // ours - ref
	az  []float64 // ours - ref, wrapped to (-180°, 180°]
	sky []float64 // great-circle separation
}

func (r *residuals) add(dAlt, dAz, sep float64) {
	r.alt = append(r.alt, dAlt)
	r.az = append(r.az, dAz)
	r.sky = append(r.sky, sep)
}

type summary struct {
	count     int
	mean, std float64
	min, max  float64
	p50, p95  float64
	rms       float64
}

func summarize(x []float64) summary {
	s := summary{count: len(x)}
	if len(x) == 0 {
		return s
	}
	s.mean, s.std = stat.MeanStdDev(x, nil)
	s.min, s.max = floats.Min(x), floats.Max(x)

	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	s.p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.p95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)

	s.rms = math.Sqrt(floats.Dot(x, x) / float64(len(x)))
	return s
}

func abs(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Abs(v)
	}
	return out
}

// wrapDeg folds a degree difference into (-180, 180].
func wrapDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// separation is the angle between two horizontal positions, all in radians.
func separation(alt1, az1, alt2, az2 float64) float64 {
	s1, c1 := math.Sincos(alt1)
	s2, c2 := math.Sincos(alt2)
	cosSep := s1*s2 + c1*c2*math.Cos(az1-az2)
	return math.Acos(math.Max(-1, math.Min(1, cosSep)))
}

// CSV format:
//
//	time,alt_deg,az_deg
//	2025-08-07T15:18:18Z,-10.1012,9.5710
//	2025-08-07T16:18:18Z,-7.9305,22.0154
//
// - time is RFC3339; a value without an offset is read in -tz
// - alt/az are the reference topocentric position in decimal degrees,
//   azimuth from north through east
func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML file with observer and targets")
		targetName = flag.String("target", "", `target name from -config, or "sun"`)
		latS       = flag.String("lat", "", "observer latitude")
		lonS       = flag.String("lon", "", "observer longitude, east positive")
		raS        = flag.String("ra", "", "target right ascension in hours")
		decS       = flag.String("dec", "", "target declination in degrees")
		tzName     = flag.String("tz", "UTC", "IANA time zone for times without an offset")
		mean       = flag.Bool("mean", false, "compare against mean instead of apparent sidereal time")
		refCSV     = flag.String("refcsv", "", "path to reference CSV file (time,alt_deg,az_deg)")
		outCSV     = flag.String("outcsv", "", "optional path to write per-row error CSV")
		verbose    = flag.Bool("verbose", false, "log per-row errors instead of only summary")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)

	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *refCSV == "" {
		log.Fatalf("missing -refcsv (path to reference CSV)")
	}

	loc, err := time.LoadLocation(*tzName)
	if err != nil {
		log.Fatalf("failed to load timezone %q: %v", *tzName, err)
	}

	var cfg *config.Config
	if *configPath != "" {
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	obs := config.Observer{Latitude: *latS, Longitude: *lonS}
	if cfg != nil && obs.Latitude == "" && obs.Longitude == "" {
		obs = cfg.Observer
	}
	observer, err := obs.Coordinates()
	if err != nil {
		log.Fatalf("observer: %v", err)
	}

	var target func(time.Time) altaz.EquatorialCoordinates
	switch {
	case *raS != "" || *decS != "":
		eq, err := config.Target{Name: "target", RA: *raS, Dec: *decS}.Coordinates()
		if err != nil {
			log.Fatalf("%v", err)
		}
		target = func(time.Time) altaz.EquatorialCoordinates { return eq }
	case strings.EqualFold(*targetName, "sun"):
		target = altaz.SunAt
	case cfg != nil && *targetName != "":
		t, err := cfg.Target(*targetName)
		if err != nil {
			log.Fatalf("%v", err)
		}
		eq, err := t.Coordinates()
		if err != nil {
			log.Fatalf("%v", err)
		}
		target = func(time.Time) altaz.EquatorialCoordinates { return eq }
	default:
		log.Fatalf("no target: use -ra/-dec, -target sun, or -config with -target")
	}

	position := altaz.ApparentAltAzAt
	modeDesc := "APPARENT"
	if *mean {
		position = altaz.MeanAltAzAt
		modeDesc = "MEAN"
	}

	f, err := os.Open(*refCSV)
	if err != nil {
		log.Fatalf("failed to open refcsv %q: %v", *refCSV, err)
	}
	defer f.Close()

	var outWriter *csv.Writer
	if *outCSV != "" {
		outFile, err := os.Create(*outCSV)
		if err != nil {
			log.Fatalf("failed to create outcsv %q: %v", *outCSV, err)
		}
		defer outFile.Close()

		outWriter = csv.NewWriter(outFile)
		defer outWriter.Flush()

		if err := outWriter.Write([]string{
			"time", "alt_deg", "az_deg", "ref_alt_deg", "ref_az_deg",
			"alt_err_arcsec", "az_err_arcsec", "sep_arcsec",
		}); err != nil {
			log.Fatalf("failed to write outcsv header: %v", err)
		}
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var (
		res       residuals
		skipped   int
		totalRows int
	)

	for line := 1; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("failed to read CSV: %v", err)
		}
		if line == 1 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "time") {
			continue
		}
		totalRows++

		if len(row) < 3 {
			log.Warnw("expected 3 columns (time,alt_deg,az_deg), skipping", "row", line, "columns", len(row))
			skipped++
			continue
		}

		t, err := parseTime(strings.TrimSpace(row[0]), loc)
		if err != nil {
			log.Warnw("invalid time, skipping", "row", line, "value", row[0], "error", err)
			skipped++
			continue
		}
		refAlt, err1 := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		refAz, err2 := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err1 != nil || err2 != nil {
			log.Warnw("invalid alt/az, skipping", "row", line, "alt", row[1], "az", row[2])
			skipped++
			continue
		}

		got := position(target(t), observer, t)
		gotAlt := unit.Angle(got.Altitude).Deg()
		gotAz := unit.Angle(got.Azimuth).Deg()

		dAlt := (gotAlt - refAlt) * 3600
		dAz := wrapDeg(gotAz-refAz) * 3600
		sep := unit.Angle(separation(
			got.Altitude, got.Azimuth,
			unit.AngleFromDeg(refAlt).Rad(), unit.AngleFromDeg(refAz).Rad(),
		)).Sec()

		res.add(dAlt, dAz, sep)

		if *verbose {
			fmt.Printf("%s: alt err=%+.2f″ az err=%+.2f″ sep=%.2f″ (got %.4f°/%.4f° ref %.4f°/%.4f°)\n",
				t.Format(time.RFC3339), dAlt, dAz, sep, gotAlt, gotAz, refAlt, refAz)
		}

		if outWriter != nil {
			rec := []string{
				t.Format(time.RFC3339),
				fmt.Sprintf("%.6f", gotAlt),
				fmt.Sprintf("%.6f", gotAz),
				fmt.Sprintf("%.6f", refAlt),
				fmt.Sprintf("%.6f", refAz),
				fmt.Sprintf("%.3f", dAlt),
				fmt.Sprintf("%.3f", dAz),
				fmt.Sprintf("%.3f", sep),
			}
			if err := outWriter.Write(rec); err != nil {
				log.Errorf("row %d: failed to write outcsv: %v", line, err)
			}
		}
	}

	fmt.Println("=== altaz profiler summary ===")
	fmt.Printf("Mode:    %s\n", modeDesc)
	fmt.Printf("Lat/Lon: %.4f / %.4f\n", unit.Angle(observer.Latitude).Deg(), unit.Angle(observer.Longitude).Deg())
	fmt.Printf("TZ:      %s\n", loc.String())
	fmt.Printf("Rows:    %d (processed), %d skipped\n", totalRows-skipped, skipped)

	if len(res.alt) == 0 {
		fmt.Println("No valid rows to compute stats.")
		return
	}

	printSummary("Altitude signed error (arcsec, ours - ref)", summarize(res.alt))
	printSummary("Azimuth signed error (arcsec, ours - ref)", summarize(res.az))
	printSummary("Altitude absolute error (arcsec)", summarize(abs(res.alt)))
	printSummary("Azimuth absolute error (arcsec)", summarize(abs(res.az)))
	printSummary("Sky separation (arcsec)", summarize(res.sky))
}

func printSummary(title string, s summary) {
	fmt.Printf("\n%s:\n", title)
	fmt.Printf("  count: %d\n", s.count)
	fmt.Printf("  min:   %.3f\n", s.min)
	fmt.Printf("  max:   %.3f\n", s.max)
	fmt.Printf("  mean:  %.3f\n", s.mean)
	fmt.Printf("  std:   %.3f\n", s.std)
	fmt.Printf("  rms:   %.3f\n", s.rms)
	fmt.Printf("  p50:   %.3f\n", s.p50)
	fmt.Printf("  p95:   %.3f\n", s.p95)
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}
