package render

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var ErrEmptyTrace = errors.New("no steps to plot")

// AltitudePlot shows altitude against the target, shading the overshoot.
func AltitudePlot(t *Trace, title string, scale float64) (*plot.Plot, error) {
	p := newPlot(title, "Time Step", "Altitude (ft)")
	stylePlot(p, scale, "%.0f", "%.0f")

	// Polygon between max(altitude, target) and the target line; it has
	// zero area wherever the aircraft is at or below the target.
	n := t.Len()
	poly := make(plotter.XYs, 0, 2*n)
	for i := 0; i < n; i++ {
		poly = append(poly, plotter.XY{X: t.Step[i], Y: math.Max(t.Altitude[i], t.Target)})
	}
	for i := n - 1; i >= 0; i-- {
		poly = append(poly, plotter.XY{X: t.Step[i], Y: t.Target})
	}
	shade, err := plotter.NewPolygon(poly)
	if err != nil {
		return nil, err
	}
	shade.Color = overshootColor
	shade.LineStyle.Width = 0
	p.Add(shade)
	p.Legend.Add("Overshoot Zone", shade)

	if err := addLine(p, "Altitude", series(t.Step, t.Altitude), altitudeColor, 2.2*scale, false); err != nil {
		return nil, err
	}
	target := plotter.XYs{{X: t.Step[0], Y: t.Target}, {X: t.Step[n-1], Y: t.Target}}
	if err := addLine(p, fmt.Sprintf("Target Altitude (%.0f ft)", t.Target), target, targetColor, 1.6*scale, true); err != nil {
		return nil, err
	}
	return p, nil
}

// ClimbTurbulencePlot overlays the climb rate and the turbulence samples.
func ClimbTurbulencePlot(t *Trace) (*plot.Plot, error) {
	p := newPlot("Climb Rate vs Turbulence", "Time Step", "Value")
	stylePlot(p, 1, "%.0f", "%.0f")
	if err := addLine(p, "Climb Rate (ft/min)", series(t.Step, t.ClimbRate), climbColor, 2, false); err != nil {
		return nil, err
	}
	if err := addLine(p, "Turbulence", series(t.Step, t.Turbulence), turbulenceColor, 1.2, false); err != nil {
		return nil, err
	}
	return p, nil
}

// AltitudeHistogram bins the altitudes flown.
func AltitudeHistogram(t *Trace, bins int) (*plot.Plot, error) {
	p := newPlot("Altitude Distribution During Flight", "Altitude (ft)", "Frequency")
	stylePlot(p, 1, "%.0f", "%.0f")
	h, err := plotter.NewHist(plotter.Values(t.Altitude), bins)
	if err != nil {
		return nil, err
	}
	h.FillColor = histColor
	p.Add(h)
	return p, nil
}

// ErrorPlot shows setpoint minus altitude over time.
func ErrorPlot(t *Trace) (*plot.Plot, error) {
	p := newPlot("PID Error Convergence", "Time Step", "Error (ft)")
	stylePlot(p, 1, "%.0f", "%.0f")
	if err := addLine(p, "Altitude Error (ft)", series(t.Step, t.Errors()), turbulenceColor, 2, false); err != nil {
		return nil, err
	}
	zero := plotter.XYs{{X: t.Step[0]}, {X: t.Step[t.Len()-1]}}
	if err := addLine(p, "", zero, routeColor, 1, false); err != nil {
		return nil, err
	}
	return p, nil
}

// PathPlot draws the planned route, the flown track and, when showAircraft
// is set, a marker at the latest position.
func PathPlot(t *Trace, title string, scale float64, showAircraft bool) (*plot.Plot, error) {
	p := newPlot(title, "Longitude", "Latitude")
	stylePlot(p, scale, "%.2f", "%.2f")

	route := t.Route
	if route.Steps < 2 {
		route.Steps = 2
	}
	planned := make(plotter.XYs, route.Steps)
	for i := range planned {
		pt := route.At(i)
		planned[i] = plotter.XY{X: pt.Lon, Y: pt.Lat}
	}
	if err := addLine(p, "Flight Path", planned, routeColor, 1.5*scale, true); err != nil {
		return nil, err
	}

	if t.Len() > 1 {
		if err := addLine(p, "", series(t.Lon, t.Lat), altitudeColor, 1*scale, false); err != nil {
			return nil, err
		}
	}

	if showAircraft && t.Len() > 0 {
		s, err := plotter.NewScatter(plotter.XYs{{X: t.Lon[t.Len()-1], Y: t.Lat[t.Len()-1]}})
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(5 * scale)
		s.GlyphStyle.Color = aircraftColor
		p.Add(s)
		p.Legend.Add("Aircraft", s)
	}
	return p, nil
}

// SaveCharts writes the post-flight charts into outDir.
func SaveCharts(outDir string, t *Trace) error {
	if t.Len() == 0 {
		return ErrEmptyTrace
	}

	type chart struct {
		file string
		make func() (*plot.Plot, error)
		w, h float64
	}
	charts := []chart{
		{"altitude.png", func() (*plot.Plot, error) { return AltitudePlot(t, "Autopilot Altitude Stability", 1) }, 10, 5},
		{"climb_turbulence.png", func() (*plot.Plot, error) { return ClimbTurbulencePlot(t) }, 10, 5},
		{"altitude_histogram.png", func() (*plot.Plot, error) { return AltitudeHistogram(t, 20) }, 8, 4},
		{"error.png", func() (*plot.Plot, error) { return ErrorPlot(t) }, 10, 4},
		{"flight_path.png", func() (*plot.Plot, error) { return PathPlot(t, "Smart Flight Navigation", 1, true) }, 8, 6},
	}
	for _, c := range charts {
		p, err := c.make()
		if err != nil {
			return fmt.Errorf("%s: %w", c.file, err)
		}
		if err := savePlotPNG(p, c.w, c.h, filepath.Join(outDir, c.file)); err != nil {
			return fmt.Errorf("%s: %w", c.file, err)
		}
	}
	return nil
}

// SaveStepResponse writes the altitude response and error charts of a
// constant-setpoint run into outDir.
func SaveStepResponse(outDir string, t *Trace) error {
	if t.Len() == 0 {
		return ErrEmptyTrace
	}
	p, err := AltitudePlot(t, "Autopilot Altitude Control (PID Response)", 1)
	if err != nil {
		return err
	}
	p.X.Label.Text = "Time (seconds)"
	if err := savePlotPNG(p, 10, 5, filepath.Join(outDir, "pid_response.png")); err != nil {
		return fmt.Errorf("pid_response.png: %w", err)
	}

	if p, err = ErrorPlot(t); err != nil {
		return err
	}
	p.X.Label.Text = "Time (seconds)"
	if err := savePlotPNG(p, 10, 4, filepath.Join(outDir, "pid_error.png")); err != nil {
		return fmt.Errorf("pid_error.png: %w", err)
	}
	return nil
}
