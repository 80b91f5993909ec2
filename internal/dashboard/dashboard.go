// Package dashboard prints flight progress and reports to the terminal.
package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/flight"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/geo"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/weather"
)

const (
	rule     = "──────────────────────────────────────────────"
	barWidth = 30
)

// Overlay is the one-line status of a step: phase, altitude, climb rate,
// wind, turbulence and weather.
func Overlay(r flight.Record) string {
	return fmt.Sprintf("Phase: %s | Altitude: %.0f ft | Climb: %.1f ft/min | Wind: %+.1f | Turbulence: %+.1f | Weather: %s",
		r.Phase, r.Altitude, r.ClimbRate, r.Wind, r.Turbulence, r.Weather)
}

// Bar renders done/total as a fixed-width bar with a percentage.
func Bar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	done = min(max(done, 0), total)
	fill := done * width / total
	return fmt.Sprintf("%3d%%|%s%s| %d/%d", done*100/total,
		strings.Repeat("█", fill), strings.Repeat(" ", width-fill), done, total)
}

// Progress is a flight.Observer that prints the bar and the overlay every
// Every steps and after the last one.
type Progress struct {
	W     io.Writer
	Total int
	Every int
	Label string
}

func NewProgress(w io.Writer, total, every int) *Progress {
	if every < 1 {
		every = 1
	}
	return &Progress{W: w, Total: total, Every: every, Label: "Simulating Flight"}
}

func (p *Progress) Observe(r flight.Record) {
	if r.Step%p.Every != 0 && r.Step != p.Total && r.Step != 1 {
		return
	}
	fmt.Fprintf(p.W, "%s %s  %s\n", p.Label, Bar(r.Step, p.Total, barWidth), Overlay(r))
}

// Banner opens a run: route, distance and weather.
func Banner(w io.Writer, route geo.Route, mode weather.Mode, seed int64) {
	fmt.Fprintln(w, "Smart Flight Autopilot Simulator")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Route: %s -> %s (%.1f km)\n", route.Start, route.End, route.DistanceKm())
	rg := mode.Ranges()
	fmt.Fprintf(w, "Weather Mode: %s (wind ±%.0f, turbulence ±%.0f)\n", mode, rg.Wind, rg.Turbulence)
	fmt.Fprintf(w, "Seed: %d\n\n", seed)
}

// FlightSummary prints the post-flight report of the main simulation.
func FlightSummary(w io.Writer, s flight.Summary, distanceKm float64, logPath string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flight Summary")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total Distance: %.1f km\n", distanceKm)
	fmt.Fprintf(w, "Target Altitude: %.0f ft\n", s.TargetAltitude)
	fmt.Fprintf(w, "Final Altitude: %.1f ft\n", s.FinalAltitude)
	fmt.Fprintf(w, "Mean Altitude (last %d steps): %.2f ft\n", min(s.Steps, 20), s.TailAltitude)
	fmt.Fprintf(w, "Weather Mode: %s\n", s.Weather)
	if logPath != "" {
		fmt.Fprintf(w, "Data saved to: %s\n", logPath)
	}
}

// Analysis prints the performance analysis of a recorded flight.
func Analysis(w io.Writer, s flight.Summary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "FLIGHT PERFORMANCE ANALYSIS")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  Weather Mode: %s\n", s.Weather)
	fmt.Fprintf(w, "  Average Climb Rate: %.2f ft/min\n", s.MeanClimbRate)
	fmt.Fprintf(w, "  Maximum Altitude: %.1f ft\n", s.MaxAltitude)
	fmt.Fprintf(w, "  Minimum Altitude: %.1f ft\n", s.MinAltitude)
	fmt.Fprintf(w, "  Target Altitude: %.0f ft\n", s.TargetAltitude)
	fmt.Fprintf(w, "  Overshoot Above Target: %.1f ft\n", s.Overshoot)
	fmt.Fprintf(w, "  Turbulence Variability (σ): %.1f\n", s.StdTurbulence)
	fmt.Fprintf(w, "  Average Turbulence: %.1f\n", s.MeanTurbulence)
	fmt.Fprintf(w, "  Mean Absolute Error: %.1f ft\n", s.MeanAbsError)
	fmt.Fprintf(w, "  Final Altitude: %.1f ft\n", s.FinalAltitude)
	fmt.Fprintln(w, rule)
}

// StepResponse prints one line of the constant-setpoint response.
func StepResponse(w io.Writer, r flight.Record, dt float64) {
	fmt.Fprintf(w, " %5.0fs | Altitude: %8.1f ft | Climb Rate: %7.1f ft/min | Error: %8.1f\n",
		float64(r.Step-1)*dt, r.Altitude, r.ClimbRate, r.Setpoint-r.Altitude)
}

// StepResponseSummary closes the constant-setpoint report.
func StepResponseSummary(w io.Writer, s flight.Summary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Simulation complete.")
	fmt.Fprintf(w, "Final Altitude: %.1f ft (Target: %.0f ft)\n", s.FinalAltitude, s.TargetAltitude)
	fmt.Fprintf(w, "Max Overshoot: %.1f ft\n", s.Overshoot)
	fmt.Fprintf(w, "Mean Error: %.1f ft\n", s.MeanAbsError)
}

// RouteProgress is the flight path annotation at route point i of n:
// distance covered out of the total and the remaining flight time.
func RouteProgress(route geo.Route, i int, speedKmh float64) string {
	total := route.DistanceKm()
	done := geo.GreatCircleKm(route.Start, route.At(i))
	eta := geo.FlightTime(max(total-done, 0), speedKmh)
	return fmt.Sprintf("%.1f km / %.1f km  ETA: %.1f min", done, total, eta.Minutes())
}
