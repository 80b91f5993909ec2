// ------------------------------------------------------------
// Smart Flight Autopilot: PID altitude hold along a fixed route
// ------------------------------------------------------------
// A PID controller flies the takeoff / cruise / descent altitude profile
// from Des Moines to Chicago while the weather disturbs the aircraft:
//   - wind pushes the aircraft off the planned track
//   - turbulence corrupts the altitude the controller senses
//
// Output folders (default configuration):
//   output/autopilot/flight_data.csv       one row per step
//   output/autopilot/*.png                 charts (Gonum Plot)
//   output/autopilot/frames/frame_*.png    live view, with -frames
//   output/autopilot/autopilot.mp4         (if ffmpeg in PATH)
//   output/autopilot/autopilot.slog        structured log
// ------------------------------------------------------------

package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/config"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/dashboard"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/flight"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/flightlog"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/log"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/rand"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/render"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/weather"
)

func fatalf(lg *log.Logger, format string, args ...any) {
	lg.Errorf(format, args...)
	_ = lg.Close()
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", "", "YAML run configuration (defaults when empty)")
	logLevel := flag.String("log-level", "info", "logging level: debug, info, warn, error")
	seed := flag.Int64("seed", 0, "random seed (overrides the configuration)")
	weatherFlag := flag.String("weather", "", "weather mode: clear, windy, storm or random")
	steps := flag.Int("steps", 0, "number of simulation steps")
	frames := flag.Bool("frames", false, "render a frame per step and encode an MP4")
	flag.Parse()

	// ----------------------------
	// Configuration
	// ----------------------------
	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf(nil, "%v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = *seed
		case "weather":
			cfg.Weather = strings.TrimSpace(*weatherFlag)
		case "steps":
			cfg.TotalSteps = *steps
		case "frames":
			cfg.Output.Frames = *frames
		}
	})
	if err := cfg.Validate(); err != nil {
		fatalf(nil, "%v", err)
	}

	outDir := cfg.Output.Dir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fatalf(nil, "cannot create output dir: %v", err)
	}
	lg := log.New("autopilot", *logLevel, outDir)
	defer lg.Close()
	lg.Info("configuration", slog.Any("config", cfg))

	// ----------------------------
	// Weather and simulator
	// ----------------------------
	rng := rand.New(cfg.Seed)
	mode, err := cfg.ResolveWeather(rng)
	if err != nil {
		fatalf(lg, "%v", err)
	}
	fc := cfg.Flight(mode)

	csvPath := filepath.Join(outDir, cfg.Output.LogFile)
	csvLog, err := flightlog.Create(csvPath)
	if err != nil {
		fatalf(lg, "cannot create flight log: %v", err)
	}

	route := fc.Route
	route.Steps = fc.TotalSteps
	trace := render.NewTrace(route, fc.TargetAltitude)

	var fw *render.FrameWriter
	if cfg.Output.Frames {
		if fw, err = render.NewFrameWriter(filepath.Join(outDir, "frames"), cfg.Output.FrameEvery, lg); err != nil {
			fatalf(lg, "%v", err)
		}
		trace.Frames = fw
	}

	var rec flight.Recorder
	stepLog := flight.ObserverFunc(func(r flight.Record) {
		lg.Debug("step",
			slog.Int("step", r.Step),
			slog.String("phase", r.Phase.String()),
			slog.Float64("setpoint", r.Setpoint),
			slog.Float64("altitude", r.Altitude),
			slog.Float64("climb_rate", r.ClimbRate),
			slog.Float64("output", r.Output),
			slog.Float64("wind", r.Wind),
			slog.Float64("turbulence", r.Turbulence))
	})

	sim, err := flight.New(fc, weather.NewSampler(mode.Ranges(), rng),
		&rec, csvLog, trace, stepLog, dashboard.NewProgress(os.Stdout, fc.TotalSteps, cfg.ProgressInterval))
	if err != nil {
		fatalf(lg, "%v", err)
	}

	// ----------------------------
	// Flight
	// ----------------------------
	dashboard.Banner(os.Stdout, fc.Route, mode, cfg.Seed)
	lg.Info("takeoff",
		slog.String("weather", mode.String()),
		slog.Int64("seed", cfg.Seed),
		slog.Float64("distance_km", fc.Route.DistanceKm()))

	sim.Run()

	if err := csvLog.Close(); err != nil {
		fatalf(lg, "flight log: %v", err)
	}
	lg.Info("flight log written", slog.String("path", csvPath), slog.Int("rows", csvLog.Rows()))

	summary := flight.Summarize(rec.Records, fc.TargetAltitude)
	dashboard.FlightSummary(os.Stdout, summary, fc.Route.DistanceKm(), csvPath)
	lg.Info("flight complete", slog.Any("summary", summary))

	// ----------------------------
	// Charts and video
	// ----------------------------
	if cfg.Output.Plots {
		lg.Info("saving charts", slog.String("dir", outDir))
		if err := render.SaveCharts(outDir, trace); err != nil {
			fatalf(lg, "chart saving failed: %v", err)
		}
	}
	if fw != nil {
		if err := fw.Err(); err != nil {
			fatalf(lg, "%v", err)
		}
		fw.Encode(cfg.Output.FPS, filepath.Join(outDir, "autopilot.mp4"))
	}

	lg.Info("done")
}
