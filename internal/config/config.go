// Package config loads observer sites and named targets for the altaz
// commands from YAML, and parses the angle notations people type.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/thurmanmarka/altaz"
)

var (
	// ErrUnknownTarget is returned when a target name is not in the config.
	ErrUnknownTarget = errors.New("unknown target")

	// ErrNoObserver is returned when the config has no observer location.
	ErrNoObserver = errors.New("no observer configured")
)

// Config is the contents of an altaz YAML file:
//
//	observer:
//	  name: backyard
//	  latitude: "40:20:05.57"
//	  longitude: "-74:37:16.06"
//	targets:
//	  - name: vega
//	    ra: "18h36m56s"
//	    dec: "+38d47m01s"
type Config struct {
	Observer Observer `yaml:"observer"`
	Targets  []Target `yaml:"targets,omitempty"`
}

// Observer is a site on Earth. Angles are strings in any notation ParseAngle
// accepts; longitude is east positive.
type Observer struct {
	Name      string `yaml:"name,omitempty"`
	Latitude  string `yaml:"latitude"`
	Longitude string `yaml:"longitude"`
}

// Target is a named fixed sky position. RA is in hours (ParseRA), Dec in
// degrees (ParseAngle).
type Target struct {
	Name string `yaml:"name"`
	RA   string `yaml:"ra"`
	Dec  string `yaml:"dec"`
}

// Load reads and validates a YAML config file.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates YAML config data.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if c.Observer.Latitude != "" || c.Observer.Longitude != "" {
		if _, err := c.Observer.Coordinates(); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]bool, len(c.Targets))
	for _, t := range c.Targets {
		key := strings.ToLower(t.Name)
		if key == "" {
			return nil, fmt.Errorf("target with ra %q has no name", t.RA)
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate target %q", t.Name)
		}
		seen[key] = true

		if _, err := t.Coordinates(); err != nil {
			return nil, err
		}
	}

	return &c, nil
}

// Coordinates converts the observer to radians.
func (o Observer) Coordinates() (altaz.GeographicCoordinates, error) {
	if o.Latitude == "" && o.Longitude == "" {
		return altaz.GeographicCoordinates{}, ErrNoObserver
	}

	lat, err := ParseLatitude(o.Latitude)
	if err != nil {
		return altaz.GeographicCoordinates{}, fmt.Errorf("observer %q latitude: %w", o.Name, err)
	}
	lon, err := ParseAngle(o.Longitude)
	if err != nil {
		return altaz.GeographicCoordinates{}, fmt.Errorf("observer %q longitude: %w", o.Name, err)
	}

	return altaz.GeographicFromRadians(lat, lon), nil
}

// Coordinates converts the target to radians.
func (t Target) Coordinates() (altaz.EquatorialCoordinates, error) {
	ra, err := ParseRA(t.RA)
	if err != nil {
		return altaz.EquatorialCoordinates{}, fmt.Errorf("target %q ra: %w", t.Name, err)
	}
	dec, err := ParseLatitude(t.Dec)
	if err != nil {
		return altaz.EquatorialCoordinates{}, fmt.Errorf("target %q dec: %w", t.Name, err)
	}

	return altaz.NewEquatorial(ra, dec), nil
}

// Target looks up a target by name, ignoring case.
func (c *Config) Target(name string) (Target, error) {
	for _, t := range c.Targets {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return Target{}, fmt.Errorf("%w %q", ErrUnknownTarget, name)
}
