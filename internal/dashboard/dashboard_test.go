package dashboard

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/flight"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/geo"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/schedule"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/weather"
)

var desMoinesChicago = geo.Route{
	Start: geo.Point{Lat: 41.5325, Lon: -93.6480},
	End:   geo.Point{Lat: 41.9742, Lon: -87.9073},
}

func expectContains(t *testing.T, s string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(s, w) {
			t.Errorf("%q missing %q", s, w)
		}
	}
}

func TestOverlay(t *testing.T) {
	s := Overlay(flight.Record{
		Phase:      schedule.Descent,
		Altitude:   12345.6,
		ClimbRate:  -42.31,
		Wind:       3.5,
		Turbulence: -120.04,
		Weather:    weather.Storm,
	})
	expectContains(t, s, "Phase: Descent", "Altitude: 12346 ft", "Climb: -42.3 ft/min",
		"Wind: +3.5", "Turbulence: -120.0", "Weather: Storm")
}

func TestBar(t *testing.T) {
	for _, tc := range []struct {
		done, total int
		expect      string
	}{
		{0, 10, "  0%|          | 0/10"},
		{5, 10, " 50%|█████     | 5/10"},
		{10, 10, "100%|██████████| 10/10"},
		{12, 10, "100%|██████████| 10/10"},
		{3, 0, "100%|██████████| 1/1"},
	} {
		if got := Bar(tc.done, tc.total, 10); got != tc.expect {
			t.Errorf("Bar(%d, %d) = %q, expected %q", tc.done, tc.total, got, tc.expect)
		}
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 25, 10)
	for i := 1; i <= 25; i++ {
		p.Observe(flight.Record{Step: i, Phase: schedule.Cruise, Weather: weather.Clear})
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// Steps 1, 10, 20 and 25.
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	expectContains(t, lines[3], "Simulating Flight", "100%", "25/25", "Phase: Cruise", "Weather: Clear")
}

func TestReports(t *testing.T) {
	s := flight.Summary{
		Steps:          180,
		Weather:        weather.Windy,
		TargetAltitude: 35000,
		FinalAltitude:  1234.56,
		MaxAltitude:    40000,
		MinAltitude:    -12,
		Overshoot:      5000,
		MeanClimbRate:  10.5,
		TailAltitude:   2000,
		MeanTurbulence: 1.25,
		StdTurbulence:  86.6,
		MeanAbsError:   321,
	}

	var buf bytes.Buffer
	Banner(&buf, desMoinesChicago, weather.Windy, 42)
	expectContains(t, buf.String(), "(41.5325, -93.6480) -> (41.9742, -87.9073)", "km)", "Weather Mode: Windy", "Seed: 42")

	buf.Reset()
	FlightSummary(&buf, s, 480.2, "output/flight_data.csv")
	expectContains(t, buf.String(), "Total Distance: 480.2 km", "Final Altitude: 1234.6 ft",
		"Mean Altitude (last 20 steps): 2000.00 ft", "Data saved to: output/flight_data.csv")

	buf.Reset()
	Analysis(&buf, s)
	expectContains(t, buf.String(), "Weather Mode: Windy", "Average Climb Rate: 10.50 ft/min",
		"Overshoot Above Target: 5000.0 ft", "Turbulence Variability (σ): 86.6", "Minimum Altitude: -12.0 ft")

	buf.Reset()
	StepResponse(&buf, flight.Record{Step: 11, Altitude: 100, ClimbRate: 5, Setpoint: 35000}, 1)
	expectContains(t, buf.String(), "10s", "Error:  34900.0")

	buf.Reset()
	StepResponseSummary(&buf, s)
	expectContains(t, buf.String(), "Final Altitude: 1234.6 ft (Target: 35000 ft)", "Max Overshoot: 5000.0 ft", "Mean Error: 321.0 ft")
}

func TestRouteProgress(t *testing.T) {
	route := desMoinesChicago
	route.Steps = 150

	start := RouteProgress(route, 0, 800)
	expectContains(t, start, "0.0 km / ")
	end := RouteProgress(route, 149, 800)
	expectContains(t, end, "ETA: 0.0 min")

	total := route.DistanceKm()
	expectContains(t, end, fmt.Sprintf("%.1f km / %.1f km", total, total))
}
