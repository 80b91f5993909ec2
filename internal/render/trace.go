package render

import (
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/flight"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/geo"
)

// Trace accumulates the series the charts and frames are drawn from: the
// aircraft's position track and the altitude trace.
type Trace struct {
	Route  geo.Route
	Target float64

	Step       []float64
	Lat, Lon   []float64
	Altitude   []float64
	ClimbRate  []float64
	Wind       []float64
	Turbulence []float64
	Setpoint   []float64

	last flight.Record

	// Frames, when set, gets a frame after each observed step.
	Frames *FrameWriter
}

// NewTrace returns a trace for a flight along route toward target.
func NewTrace(route geo.Route, target float64) *Trace {
	n := max(route.Steps, 0)
	return &Trace{
		Route:      route,
		Target:     target,
		Step:       make([]float64, 0, n),
		Lat:        make([]float64, 0, n),
		Lon:        make([]float64, 0, n),
		Altitude:   make([]float64, 0, n),
		ClimbRate:  make([]float64, 0, n),
		Wind:       make([]float64, 0, n),
		Turbulence: make([]float64, 0, n),
		Setpoint:   make([]float64, 0, n),
	}
}

// TraceOf builds a trace from already recorded steps, e.g. a loaded log.
func TraceOf(recs []flight.Record, route geo.Route, target float64) *Trace {
	route.Steps = len(recs)
	t := NewTrace(route, target)
	for _, r := range recs {
		t.Observe(r)
	}
	return t
}

func (t *Trace) Observe(r flight.Record) {
	t.Step = append(t.Step, float64(r.Step))
	t.Lat = append(t.Lat, r.Position.Lat)
	t.Lon = append(t.Lon, r.Position.Lon)
	t.Altitude = append(t.Altitude, r.Altitude)
	t.ClimbRate = append(t.ClimbRate, r.ClimbRate)
	t.Wind = append(t.Wind, r.Wind)
	t.Turbulence = append(t.Turbulence, r.Turbulence)
	t.Setpoint = append(t.Setpoint, r.Setpoint)
	t.last = r

	if t.Frames != nil {
		t.Frames.Add(t, r)
	}
}

func (t *Trace) Len() int { return len(t.Step) }

// Last returns the most recently observed record.
func (t *Trace) Last() flight.Record { return t.last }

// Errors returns setpoint minus altitude for every step.
func (t *Trace) Errors() []float64 {
	e := make([]float64, len(t.Altitude))
	for i := range e {
		e[i] = t.Setpoint[i] - t.Altitude[i]
	}
	return e
}
