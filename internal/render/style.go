// Package render draws the flight with Gonum Plot: summary charts after
// the run and, optionally, one animation frame per step.
package render

import (
	"bufio"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Chart output resolution.
const (
	ChartDPI = 300
	FrameDPI = 96
)

var (
	altitudeColor   = color.RGBA{R: 31, G: 90, B: 220, A: 255}
	targetColor     = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	overshootColor  = color.RGBA{R: 220, G: 40, B: 40, A: 40}
	climbColor      = color.RGBA{R: 30, G: 150, B: 60, A: 255}
	turbulenceColor = color.RGBA{R: 255, G: 150, B: 20, A: 190}
	routeColor      = color.RGBA{R: 130, G: 130, B: 130, A: 255}
	aircraftColor   = color.RGBA{R: 230, G: 30, B: 30, A: 255}
	histColor       = color.RGBA{R: 135, G: 206, B: 235, A: 220}

	dashes = []vg.Length{vg.Points(6), vg.Points(4)}
)

// limitedTicker places at most maxLabels evenly spaced ticks.
func limitedTicker(maxLabels int, labelFmt string) plot.Ticker {
	if maxLabels < 2 {
		maxLabels = 2
	}
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return nil
		}
		if min == max {
			return []plot.Tick{{Value: min, Label: fmt.Sprintf(labelFmt, min)}}
		}
		step := (max - min) / float64(maxLabels-1)
		ticks := make([]plot.Tick, 0, maxLabels)
		for i := 0; i < maxLabels; i++ {
			v := min + float64(i)*step
			ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf(labelFmt, v)})
		}
		return ticks
	})
}

// stylePlot scales fonts and line widths; scale 1 suits an 8x6 inch chart.
func stylePlot(p *plot.Plot, scale float64, xFmt, yFmt string) {
	pt := func(v float64) vg.Length { return vg.Points(v * scale) }

	p.Title.TextStyle.Font.Size = pt(20)
	p.Title.Padding = pt(12)

	p.X.Label.TextStyle.Font.Size = pt(16)
	p.Y.Label.TextStyle.Font.Size = pt(16)
	p.X.Label.Padding = pt(8)
	p.Y.Label.Padding = pt(8)

	p.X.LineStyle.Width = pt(1.6)
	p.Y.LineStyle.Width = pt(1.6)
	p.X.Padding = pt(10)
	p.Y.Padding = pt(10)

	p.X.Tick.LineStyle.Width = pt(1.4)
	p.Y.Tick.LineStyle.Width = pt(1.4)
	p.X.Tick.Length = pt(6)
	p.Y.Tick.Length = pt(6)

	p.X.Tick.Label.Font.Size = pt(12)
	p.Y.Tick.Label.Font.Size = pt(12)

	p.X.Tick.Marker = limitedTicker(9, xFmt)
	p.Y.Tick.Marker = limitedTicker(9, yFmt)

	p.Legend.TextStyle.Font.Size = pt(12)
	p.Legend.Top = true

	p.Add(plotter.NewGrid())
}

func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	return p
}

func series(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

func addLine(p *plot.Plot, name string, pts plotter.XYs, c color.Color, width float64, dashed bool) error {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(width)
	if dashed {
		line.LineStyle.Dashes = dashes
	}
	p.Add(line)
	if name != "" {
		p.Legend.Add(name, line)
	}
	return nil
}

// writePNG draws onto a fresh canvas of the given size and saves it as PNG.
func writePNG(filename string, widthIn, heightIn float64, dpi int, drawFn func(draw.Canvas)) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	w := vg.Length(widthIn) * vg.Inch
	h := vg.Length(heightIn) * vg.Inch

	c := vgimg.NewWith(
		vgimg.UseWH(w, h),
		vgimg.UseDPI(dpi),
	)
	drawFn(draw.New(c))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return nil
}

func savePlotPNG(p *plot.Plot, widthIn, heightIn float64, filename string) error {
	return writePNG(filename, widthIn, heightIn, ChartDPI, p.Draw)
}
