package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/flight"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/rand"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/weather"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TargetAltitude != 35000 || cfg.DT != 1 || cfg.TotalSteps != 180 || cfg.Seed != 42 {
		t.Errorf("got %+v", cfg)
	}
	if cfg.Gains.Kp != 0.4 || cfg.Gains.Ki != 0.02 || cfg.Gains.Kd != 0.15 {
		t.Errorf("gains %+v", cfg.Gains)
	}
	if fc := cfg.Flight(weather.Clear); fc.IntegralLimits != nil {
		t.Errorf("default integral limits %v", *fc.IntegralLimits)
	}
}

func TestDecodeOverridesDefaults(t *testing.T) {
	in := `
total_steps: 150
weather: Storm
integral_limit: 5000
gains:
  kp: 0.5
route:
  end: {lat: 40.0, lon: -80.0}
output:
  frames: true
  frame_every: 5
`
	cfg, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TotalSteps != 150 || cfg.TargetAltitude != 35000 {
		t.Errorf("steps %d target %v", cfg.TotalSteps, cfg.TargetAltitude)
	}
	// Unset nested keys keep their defaults.
	if cfg.Gains.Kp != 0.5 || cfg.Gains.Ki != 0.02 || cfg.Gains.Kd != 0.15 {
		t.Errorf("gains %+v", cfg.Gains)
	}
	if cfg.Route.Start.Lat != 41.5325 || cfg.Route.End.Lat != 40 || cfg.Route.End.Lon != -80 {
		t.Errorf("route %+v", cfg.Route)
	}
	if !cfg.Output.Frames || cfg.Output.FrameEvery != 5 || !cfg.Output.Plots {
		t.Errorf("output %+v", cfg.Output)
	}

	m, err := cfg.ResolveWeather(rand.New(1))
	if err != nil || m != weather.Storm {
		t.Errorf("weather %v, %v", m, err)
	}

	fc := cfg.Flight(m)
	if fc.IntegralLimits == nil || fc.IntegralLimits[0] != -5000 || fc.IntegralLimits[1] != 5000 {
		t.Errorf("integral limits %v", fc.IntegralLimits)
	}
	if fc.Weather != weather.Storm || fc.TotalSteps != 150 || fc.Gains != cfg.Gains {
		t.Errorf("flight config %+v", fc)
	}
}

func TestValidation(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want error
	}{
		{"dt_seconds: 0", flight.ErrNonPositiveTimeStep},
		{"dt_seconds: -0.5", flight.ErrNonPositiveTimeStep},
		{"total_steps: 0", flight.ErrNonPositiveSteps},
		{"weather: fog", ErrInvalid},
		{"integral_limit: -1", ErrInvalid},
		{"output: {frames: true, frame_every: 0}", ErrInvalid},
	} {
		_, err := Decode(strings.NewReader(tc.in))
		if !errors.Is(err, tc.want) || !errors.Is(err, ErrInvalid) {
			t.Errorf("%q: got %v, expected %v", tc.in, err, tc.want)
		}
	}

	// Both problems are reported.
	_, err := Decode(strings.NewReader("dt_seconds: 0\ntotal_steps: -1"))
	if !errors.Is(err, flight.ErrNonPositiveTimeStep) || !errors.Is(err, flight.ErrNonPositiveSteps) {
		t.Errorf("got %v", err)
	}
}

func TestUnknownKeyRejected(t *testing.T) {
	if _, err := Decode(strings.NewReader("target_altitude: 30000")); err == nil {
		t.Errorf("expected error for unknown key")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autopilot.yaml")
	if err := os.WriteFile(path, []byte("seed: 7\nweather: random\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 7 {
		t.Errorf("seed %d", cfg.Seed)
	}

	// Random weather is reproducible from the seed.
	a, _ := cfg.ResolveWeather(rand.New(cfg.Seed))
	b, _ := cfg.ResolveWeather(rand.New(cfg.Seed))
	if a != b {
		t.Errorf("random weather not reproducible: %v vs %v", a, b)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected error for missing file")
	}
}
