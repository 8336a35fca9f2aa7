package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"
)

// ErrBadAngle is returned for angle strings that cannot be parsed.
var ErrBadAngle = errors.New("invalid angle")

// ParseAngle parses an angle in degrees and returns radians. Accepted forms:
//
//	40.3349
//	-74:37:16.06
//	+38d47m01s
//	38°47′01″
//	38 47 1.5
//
// Only the last component may have a fractional part.
func ParseAngle(s string) (float64, error) {
	neg, d, m, sec, err := splitSexa(s)
	if err != nil {
		return 0, err
	}
	return unit.AngleFromDeg(signed(neg, d+m/60+sec/3600)).Rad(), nil
}

// ParseLatitude is ParseAngle restricted to [-90°, 90°]; it is used for
// latitudes and declinations.
func ParseLatitude(s string) (float64, error) {
	rad, err := ParseAngle(s)
	if err != nil {
		return 0, err
	}
	if math.Abs(rad) > math.Pi/2 {
		return 0, fmt.Errorf("%w: %q is beyond ±90°", ErrBadAngle, s)
	}
	return rad, nil
}

// ParseRA parses a right ascension in hours and returns radians in [0, 2π).
// Accepted forms mirror ParseAngle with h/m/s markers: "18.6156",
// "18:36:56", "18h36m56s".
func ParseRA(s string) (float64, error) {
	neg, h, m, sec, err := splitSexa(s)
	if err != nil {
		return 0, err
	}
	if neg == '-' {
		return 0, fmt.Errorf("%w: negative right ascension %q", ErrBadAngle, s)
	}
	hours := h + m/60 + sec/3600
	if hours >= 24 {
		return 0, fmt.Errorf("%w: %q is 24h or more", ErrBadAngle, s)
	}
	return unit.RAFromHour(hours).Rad(), nil
}

func signed(neg byte, v float64) float64 {
	if neg == '-' {
		return -v
	}
	return v
}

// splitSexa splits s into a sign and up to three sexagesimal components.
func splitSexa(s string) (neg byte, a, b, c float64, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, 0, 0, fmt.Errorf("%w: empty", ErrBadAngle)
	}

	switch s[0] {
	case '-':
		neg = '-'
		s = s[1:]
	case '+':
		s = s[1:]
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ':', ' ', '\t', 'd', 'h', 'm', 's', '°', '\'', '"', '′', '″', 'ʰ', 'ᵐ', 'ˢ':
			return true
		}
		return false
	})
	if len(fields) == 0 || len(fields) > 3 {
		return 0, 0, 0, 0, fmt.Errorf("%w: %q", ErrBadAngle, s)
	}

	var parts [3]float64
	for i, f := range fields {
		v, perr := strconv.ParseFloat(f, 64)
		if perr != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, 0, 0, 0, fmt.Errorf("%w: %q", ErrBadAngle, s)
		}
		if i < len(fields)-1 && v != math.Trunc(v) {
			return 0, 0, 0, 0, fmt.Errorf("%w: only the last component of %q may be fractional", ErrBadAngle, s)
		}
		if i > 0 && v >= 60 {
			return 0, 0, 0, 0, fmt.Errorf("%w: component %q of %q is 60 or more", ErrBadAngle, f, s)
		}
		parts[i] = v
	}

	return neg, parts[0], parts[1], parts[2], nil
}
