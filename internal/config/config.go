// Package config loads autopilot run configurations from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/flight"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/geo"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/pid"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/rand"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/weather"
)

// RandomWeather selects the weather mode from the run's seeded source.
const RandomWeather = "random"

type OutputConfig struct {
	Dir     string `yaml:"dir"`
	LogFile string `yaml:"log_file"`
	Plots   bool   `yaml:"plots"`
	Frames  bool   `yaml:"frames"`

	// FrameEvery renders one frame every this many steps.
	FrameEvery int `yaml:"frame_every"`
	FPS        int `yaml:"fps"`
}

type Config struct {
	TargetAltitude float64   `yaml:"target_altitude_ft"`
	DT             float64   `yaml:"dt_seconds"`
	TotalSteps     int       `yaml:"total_steps"`
	Seed           int64     `yaml:"seed"`
	Weather        string    `yaml:"weather"`
	Gains          pid.Gains `yaml:"gains"`

	// IntegralLimit clamps the controller integral to ±IntegralLimit when
	// positive. Zero leaves it unclamped.
	IntegralLimit float64 `yaml:"integral_limit"`

	Route          geo.Route `yaml:"route"`
	CruiseSpeedKmh float64   `yaml:"cruise_speed_kmh"`

	Output           OutputConfig `yaml:"output"`
	ProgressInterval int          `yaml:"progress_interval"`
}

// Default returns the Des Moines to Chicago flight at 35,000 ft.
func Default() Config {
	return Config{
		TargetAltitude: 35000,
		DT:             1,
		TotalSteps:     180,
		Seed:           42,
		Weather:        RandomWeather,
		Gains:          pid.DefaultGains,
		Route: geo.Route{
			Start: geo.Point{Lat: 41.5325, Lon: -93.6480},
			End:   geo.Point{Lat: 41.9742, Lon: -87.9073},
		},
		CruiseSpeedKmh: 800,
		Output: OutputConfig{
			Dir:        "output/autopilot",
			LogFile:    "flight_data.csv",
			Plots:      true,
			FrameEvery: 1,
			FPS:        20,
		},
		ProgressInterval: 10,
	}
}

var ErrInvalid = errors.New("invalid configuration")

// Validate reports every problem found, joined into one error.
func (c Config) Validate() error {
	var errs []error
	if err := (flight.Config{DT: c.DT, TotalSteps: c.TotalSteps}).Validate(); err != nil {
		errs = append(errs, err)
	}
	if !strings.EqualFold(c.Weather, RandomWeather) {
		if _, err := weather.ParseMode(c.Weather); err != nil {
			errs = append(errs, err)
		}
	}
	if c.IntegralLimit < 0 {
		errs = append(errs, fmt.Errorf("integral_limit %v: must not be negative", c.IntegralLimit))
	}
	if c.Output.Frames && c.Output.FrameEvery <= 0 {
		errs = append(errs, fmt.Errorf("output.frame_every %d: must be positive", c.Output.FrameEvery))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Decode reads YAML from r over the defaults. Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the configuration file at path; an empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Decode(bytes.NewReader(nil))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// ResolveWeather returns the configured mode, sampling one from r when the
// configuration asks for random weather.
func (c Config) ResolveWeather(r *rand.Rand) (weather.Mode, error) {
	if strings.EqualFold(c.Weather, RandomWeather) {
		return weather.Random(r), nil
	}
	return weather.ParseMode(c.Weather)
}

// Flight builds the simulator configuration for the given weather mode.
func (c Config) Flight(m weather.Mode) flight.Config {
	fc := flight.Config{
		TargetAltitude: c.TargetAltitude,
		DT:             c.DT,
		TotalSteps:     c.TotalSteps,
		Gains:          c.Gains,
		Route:          c.Route,
		Weather:        m,
	}
	if c.IntegralLimit > 0 {
		fc.IntegralLimits = &[2]float64{-c.IntegralLimit, c.IntegralLimit}
	}
	return fc
}
