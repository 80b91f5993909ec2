// ------------------------------------------------------------
// Flight data analysis
// ------------------------------------------------------------
// Loads the CSV log written by the autopilot program, prints the flight
// performance analysis and redraws the charts from the recorded data.
//
// Output folders:
//   output/flight_analysis/*.png
//   output/flight_analysis/flight_analysis.slog
// ------------------------------------------------------------

package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/config"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/dashboard"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/flight"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/flightlog"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/log"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/render"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/schedule"
)

func fatalf(lg *log.Logger, format string, args ...any) {
	lg.Errorf(format, args...)
	_ = lg.Close()
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", "", "YAML run configuration the flight was flown with")
	logLevel := flag.String("log-level", "info", "logging level: debug, info, warn, error")
	logPath := flag.String("log", "output/autopilot/flight_data.csv", "flight log to analyze")
	outDir := flag.String("out", "output/flight_analysis", "output directory for charts")
	noPlots := flag.Bool("no-plots", false, "print the analysis only")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf(nil, "%v", err)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fatalf(nil, "cannot create output dir: %v", err)
	}
	lg := log.New("flight_analysis", *logLevel, *outDir)
	defer lg.Close()

	recs, err := flightlog.ReadFile(*logPath, schedule.Flight{Target: cfg.TargetAltitude})
	if errors.Is(err, fs.ErrNotExist) {
		fatalf(lg, "no flight log found at %s; run the autopilot program first", *logPath)
	} else if err != nil {
		fatalf(lg, "%v", err)
	}
	fmt.Printf("Loaded flight data: %d records from '%s'\n", len(recs), *logPath)
	lg.Info("flight log loaded", slog.String("path", *logPath), slog.Int("records", len(recs)))

	summary := flight.Summarize(recs, cfg.TargetAltitude)
	dashboard.Analysis(os.Stdout, summary)
	lg.Info("analysis", slog.Any("summary", summary))

	if *noPlots || len(recs) == 0 {
		return
	}
	trace := render.TraceOf(recs, cfg.Route, cfg.TargetAltitude)
	if err := render.SaveCharts(*outDir, trace); err != nil {
		fatalf(lg, "chart saving failed: %v", err)
	}
	fmt.Printf("\nAnalysis complete; charts saved to %s\n", *outDir)
}
