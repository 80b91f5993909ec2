package render

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/dashboard"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/flight"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/geo"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/log"
)

// Frame size in inches.
const (
	FrameWidth  = 12
	FrameHeight = 6
)

// FrameWriter renders the live view, the map with the aircraft and the
// altitude trace side by side under a one-line dashboard, to numbered PNGs.
type FrameWriter struct {
	Dir   string
	Every int
	Log   *log.Logger

	frames int
	err    error
}

// NewFrameWriter empties dir of old frames and returns a writer that
// renders every n-th step into it.
func NewFrameWriter(dir string, every int, lg *log.Logger) (*FrameWriter, error) {
	if every < 1 {
		every = 1
	}
	if err := cleanOldFrames(dir); err != nil {
		return nil, fmt.Errorf("cannot clean frames: %w", err)
	}
	return &FrameWriter{Dir: dir, Every: every, Log: lg}, nil
}

// Frames returns the number of frames written so far.
func (fw *FrameWriter) Frames() int { return fw.frames }

// Err returns the first error hit while rendering. Rendering stops after it.
func (fw *FrameWriter) Err() error { return fw.err }

// Add renders the live view for step r when it falls on the frame interval.
func (fw *FrameWriter) Add(t *Trace, r flight.Record) {
	if (r.Step-1)%fw.Every != 0 {
		return
	}
	fw.write(func(fn string) error { return SaveFrame(fn, t, r) })
}

// AddRoute renders the route map with the aircraft at point i.
func (fw *FrameWriter) AddRoute(route geo.Route, i int, title, caption string) {
	if i%fw.Every != 0 && i != route.Steps-1 {
		return
	}
	fw.write(func(fn string) error { return SaveRouteFrame(fn, route, i, title, caption) })
}

func (fw *FrameWriter) write(render func(filename string) error) {
	if fw.err != nil {
		return
	}
	fn := filepath.Join(fw.Dir, fmt.Sprintf("frame_%06d.png", fw.frames))
	if err := render(fn); err != nil {
		fw.err = fmt.Errorf("frame %d: %w", fw.frames, err)
		fw.Log.Error("frame rendering failed", "frame", fw.frames, "error", err)
		return
	}
	fw.frames++
}

// SaveFrame writes a single frame showing the flight up to r.
func SaveFrame(filename string, t *Trace, r flight.Record) error {
	left, err := PathPlot(t, "Smart Flight Navigation", 0.6, true)
	if err != nil {
		return err
	}
	right, err := AltitudePlot(t, fmt.Sprintf("Altitude (step %d)", r.Step), 0.6)
	if err != nil {
		return err
	}

	header := left.Title.TextStyle
	header.Font.Size = vg.Points(11)
	header.XAlign = draw.XCenter

	return writePNG(filename, FrameWidth, FrameHeight, FrameDPI, func(dc draw.Canvas) {
		tiles := draw.Tiles{
			Rows:      1,
			Cols:      2,
			PadX:      vg.Points(18),
			PadTop:    vg.Points(30),
			PadBottom: vg.Points(6),
			PadLeft:   vg.Points(6),
			PadRight:  vg.Points(6),
		}
		plots := [][]*plot.Plot{{left, right}}
		canvases := plot.Align(plots, tiles, dc)
		left.Draw(canvases[0][0])
		right.Draw(canvases[0][1])

		mid := dc.Min.X + (dc.Max.X-dc.Min.X)/2
		dc.FillText(header, vg.Point{X: mid, Y: dc.Max.Y - vg.Points(20)}, dashboard.Overlay(r))
	})
}

// Encode assembles the frames into an MP4 at fps.
func (fw *FrameWriter) Encode(fps int, outMP4 string) {
	if fw.frames == 0 {
		return
	}
	encodeMP4WithFFmpeg(fw.Dir, fps, outMP4, fw.Log)
}

// listFilesSorted lists files in a directory matching a suffix, sorted by name.
func listFilesSorted(dir, suffix string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(strings.ToLower(name), strings.ToLower(suffix)) {
			out = append(out, filepath.Join(dir, name))
		}
	}
	sort.Strings(out)
	return out, nil
}

// cleanOldFrames removes existing PNG frames so runs don't mix.
func cleanOldFrames(framesDir string) error {
	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		return err
	}
	files, err := listFilesSorted(framesDir, ".png")
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := os.Remove(f); err != nil {
			return err
		}
	}
	return nil
}

// encodeMP4WithFFmpeg calls ffmpeg if it is available in PATH.
func encodeMP4WithFFmpeg(framesDir string, fps int, outMP4 string, lg *log.Logger) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		lg.Warn("ffmpeg not found on PATH; MP4 will not be created")
		return
	}
	if fps < 1 {
		fps = 1
	}

	cmd := exec.Command("ffmpeg",
		"-y",
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", filepath.Join(framesDir, "frame_%06d.png"),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		outMP4,
	)

	lg.Info("encoding MP4 with ffmpeg", "frames", framesDir, "fps", fps)
	if out, err := cmd.CombinedOutput(); err != nil {
		lg.Error("ffmpeg encoding failed", "error", err, "output", string(out))
		return
	}
	lg.Info("MP4 created", "path", outMP4)
}

// SaveRouteFrame writes a map of route with the aircraft at point i and
// caption next to it.
func SaveRouteFrame(filename string, route geo.Route, i int, title, caption string) error {
	p := newPlot(title, "Longitude", "Latitude")
	stylePlot(p, 1, "%.2f", "%.2f")

	planned := make(plotter.XYs, max(route.Steps, 2))
	r := route
	r.Steps = len(planned)
	for k := range planned {
		pt := r.At(k)
		planned[k] = plotter.XY{X: pt.Lon, Y: pt.Lat}
	}
	if err := addLine(p, "Route Path", planned, routeColor, 1.5, true); err != nil {
		return err
	}

	pos := route.At(i)
	s, err := plotter.NewScatter(plotter.XYs{{X: pos.Lon, Y: pos.Lat}})
	if err != nil {
		return err
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(6)
	s.GlyphStyle.Color = aircraftColor
	p.Add(s)
	p.Legend.Add("Aircraft", s)

	if caption != "" {
		labels, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: pos.Lon, Y: pos.Lat + 0.05}},
			Labels: []string{caption},
		})
		if err != nil {
			return err
		}
		p.Add(labels)
	}
	return writePNG(filename, 8, 6, FrameDPI, p.Draw)
}
