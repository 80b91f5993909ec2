// ------------------------------------------------------------
// Flight path visualizer
// ------------------------------------------------------------
// Moves the aircraft along the great-circle route in evenly spaced steps
// and renders one map frame per step annotated with the distance covered
// and the remaining flight time at cruise speed.
//
// Output folders:
//   output/flight_path/frames/frame_000000.png ...
//   output/flight_path/flight_path.mp4    (if ffmpeg in PATH)
//   output/flight_path/flight_path.slog
// ------------------------------------------------------------

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/config"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/dashboard"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/geo"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/log"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/render"
)

func fatalf(lg *log.Logger, format string, args ...any) {
	lg.Errorf(format, args...)
	_ = lg.Close()
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", "", "YAML run configuration for the route and cruise speed")
	logLevel := flag.String("log-level", "info", "logging level: debug, info, warn, error")
	steps := flag.Int("steps", 150, "number of route points")
	every := flag.Int("every", 1, "render a frame every n route points")
	fps := flag.Int("fps", 30, "video frame rate")
	outDir := flag.String("out", "output/flight_path", "output directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf(nil, "%v", err)
	}
	if *steps < 2 {
		fatalf(nil, "-steps %d: need at least 2 route points", *steps)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fatalf(nil, "cannot create output dir: %v", err)
	}
	lg := log.New("flight_path", *logLevel, *outDir)
	defer lg.Close()

	route := cfg.Route
	route.Steps = *steps
	distance := route.DistanceKm()
	eta := geo.FlightTime(distance, cfg.CruiseSpeedKmh)

	fmt.Println("Flight Path Visualizer")
	fmt.Println("----------------------------")
	fmt.Printf("From: %s\n", route.Start)
	fmt.Printf("To:   %s\n", route.End)
	fmt.Printf("Total Distance: %.1f km\n", distance)
	fmt.Printf("Estimated Flight Time: %.1f minutes\n\n", eta.Minutes())

	// ----------------------------
	// Frames
	// ----------------------------
	fw, err := render.NewFrameWriter(filepath.Join(*outDir, "frames"), *every, lg)
	if err != nil {
		fatalf(lg, "%v", err)
	}
	for i := 0; i < route.Steps; i++ {
		caption := dashboard.RouteProgress(route, i, cfg.CruiseSpeedKmh)
		if i == route.Steps-1 {
			caption = "Arrived: " + caption
		}
		fw.AddRoute(route, i, "Flight Path", caption)
		if i%25 == 0 {
			lg.Info("route point", slog.Int("point", i), slog.String("progress", caption))
		}
	}
	if err := fw.Err(); err != nil {
		fatalf(lg, "%v", err)
	}
	fw.Encode(*fps, filepath.Join(*outDir, "flight_path.mp4"))

	fmt.Println("Flight completed successfully!")
	fmt.Printf("Total Distance Flown: %.1f km\n", distance)
	fmt.Printf("Frames written: %d\n", fw.Frames())
}
