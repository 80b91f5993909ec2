// ------------------------------------------------------------
// Autopilot PID altitude control: step response
// ------------------------------------------------------------
// The aircraft starts on the ground with the setpoint fixed at the target
// altitude. The altimeter reads within ±noise ft of the true altitude and
// there is no wind.
//
// Output folders:
//   output/autopilot_pid/pid_response.png
//   output/autopilot_pid/pid_error.png
//   output/autopilot_pid/autopilot_pid.slog
// ------------------------------------------------------------

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/config"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/dashboard"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/flight"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/log"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/rand"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/render"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/schedule"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/weather"
)

func fatalf(lg *log.Logger, format string, args ...any) {
	lg.Errorf(format, args...)
	_ = lg.Close()
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", "", "YAML run configuration for target altitude, gains and seed")
	logLevel := flag.String("log-level", "info", "logging level: debug, info, warn, error")
	seconds := flag.Int("time", 600, "simulated seconds")
	noise := flag.Float64("noise", 100, "altimeter noise amplitude (ft); 0 disables it")
	outDir := flag.String("out", "output/autopilot_pid", "output directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf(nil, "%v", err)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fatalf(nil, "cannot create output dir: %v", err)
	}
	lg := log.New("autopilot_pid", *logLevel, *outDir)
	defer lg.Close()

	// ----------------------------
	// Constant setpoint, noisy altimeter, calm air
	// ----------------------------
	fc := cfg.Flight(weather.Clear)
	fc.DT = 1
	fc.TotalSteps = *seconds
	fc.Schedule = schedule.Constant{Target: cfg.TargetAltitude}

	var env weather.Source = weather.Calm
	if *noise > 0 {
		env = weather.NewSampler(weather.Ranges{Turbulence: *noise}, rand.New(cfg.Seed))
	}

	var rec flight.Recorder
	report := flight.ObserverFunc(func(r flight.Record) {
		if (r.Step-1)%10 == 0 || r.Step == fc.TotalSteps {
			dashboard.StepResponse(os.Stdout, r, fc.DT)
		}
	})
	trace := render.NewTrace(fc.Route, fc.TargetAltitude)

	sim, err := flight.New(fc, env, &rec, trace, report)
	if err != nil {
		fatalf(lg, "%v", err)
	}
	lg.Info("step response",
		slog.Float64("target", fc.TargetAltitude),
		slog.Any("gains", fc.Gains),
		slog.Int("seconds", fc.TotalSteps),
		slog.Float64("noise", *noise))

	fmt.Println("Autopilot PID Altitude Control Simulation")
	fmt.Println("──────────────────────────────────────────────")
	sim.Run()

	summary := flight.Summarize(rec.Records, fc.TargetAltitude)
	dashboard.StepResponseSummary(os.Stdout, summary)
	lg.Info("simulation complete", slog.Any("summary", summary))

	if err := render.SaveStepResponse(*outDir, trace); err != nil {
		fatalf(lg, "plot saving failed: %v", err)
	}
	lg.Info("done")
}
