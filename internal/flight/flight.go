// Package flight runs the closed altitude loop: disturbance sampling,
// setpoint scheduling, PID control and plant integration, one step at a
// time, notifying observers with a Record after every step.
package flight

import (
	"errors"
	"fmt"
	"math"

	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/geo"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/pid"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/schedule"
	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/weather"
)

var (
	ErrNonPositiveTimeStep = errors.New("time step must be positive")
	ErrNonPositiveSteps    = errors.New("total steps must be positive")
)

type Config struct {
	TargetAltitude float64 // ft
	DT             float64 // s
	TotalSteps     int
	Gains          pid.Gains

	// IntegralLimits bounds the controller integral when non-nil.
	IntegralLimits *[2]float64

	Route   geo.Route
	Weather weather.Mode

	// Schedule defaults to the takeoff/cruise/descent profile toward
	// TargetAltitude.
	Schedule schedule.Schedule
}

func (c Config) Validate() error {
	if !(c.DT > 0) || math.IsInf(c.DT, 0) {
		return fmt.Errorf("dt %v: %w", c.DT, ErrNonPositiveTimeStep)
	}
	if c.TotalSteps <= 0 {
		return fmt.Errorf("%d steps: %w", c.TotalSteps, ErrNonPositiveSteps)
	}
	return nil
}

// State is the driver-owned part of the flight.
type State struct {
	Plant
	Step     int
	Position geo.Point
}

// Record is what observers see after each step. It is not retained by the
// simulator.
type Record struct {
	Step       int // from 1
	Position   geo.Point
	Altitude   float64
	ClimbRate  float64
	Wind       float64
	Turbulence float64
	Weather    weather.Mode

	Setpoint float64
	Phase    schedule.Phase
	Output   float64
}

// Observer receives every Record synchronously, in step order.
type Observer interface {
	Observe(Record)
}

type ObserverFunc func(Record)

func (f ObserverFunc) Observe(r Record) { f(r) }

type Simulator struct {
	cfg       Config
	ctrl      *pid.Controller
	env       weather.Source
	sched     schedule.Schedule
	route     geo.Route
	observers []Observer

	state State
}

// New validates cfg and returns a simulator at step 0 with the aircraft on
// the ground. Nothing is created if the configuration is invalid.
func New(cfg Config, env weather.Source, obs ...Observer) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if env == nil {
		env = weather.Calm
	}
	if cfg.Schedule == nil {
		cfg.Schedule = schedule.Flight{Target: cfg.TargetAltitude}
	}

	var opts []pid.Option
	if l := cfg.IntegralLimits; l != nil {
		opts = append(opts, pid.WithIntegralLimits(l[0], l[1]))
	}

	route := cfg.Route
	route.Steps = cfg.TotalSteps

	return &Simulator{
		cfg:       cfg,
		ctrl:      pid.New(cfg.Gains, cfg.Schedule.Setpoint(0, cfg.TotalSteps), opts...),
		env:       env,
		sched:     cfg.Schedule,
		route:     route,
		observers: obs,
		state:     State{Position: route.Start},
	}, nil
}

func (s *Simulator) Config() Config              { return s.cfg }
func (s *Simulator) State() State                { return s.state }
func (s *Simulator) Controller() *pid.Controller { return s.ctrl }
func (s *Simulator) Done() bool                  { return s.state.Step >= s.cfg.TotalSteps }

// Observe adds an observer for subsequent steps.
func (s *Simulator) Observe(o Observer) { s.observers = append(s.observers, o) }

// Step advances the flight by one tick and returns the record that was
// sent to the observers.
func (s *Simulator) Step() Record {
	i, n, dt := s.state.Step, s.cfg.TotalSteps, s.cfg.DT

	d := s.env.Sample()

	sp := s.sched.Setpoint(i, n)
	s.ctrl.SetSetpoint(sp)

	// Turbulence corrupts the sensed altitude only.
	out := s.ctrl.Update(s.state.Altitude+d.Turbulence, dt)
	s.state.Apply(out, dt)

	s.state.Position = geo.Drift(s.route.At(i), d.Wind)
	s.state.Step++

	r := Record{
		Step:       s.state.Step,
		Position:   s.state.Position,
		Altitude:   s.state.Altitude,
		ClimbRate:  s.state.ClimbRate,
		Wind:       d.Wind,
		Turbulence: d.Turbulence,
		Weather:    s.cfg.Weather,
		Setpoint:   sp,
		Phase:      s.sched.Phase(i, n),
		Output:     out,
	}
	for _, o := range s.observers {
		o.Observe(r)
	}
	return r
}

// Run steps until TotalSteps have been simulated.
func (s *Simulator) Run() {
	for !s.Done() {
		s.Step()
	}
}

// Recorder is an Observer that keeps every record, for summaries and
// plots that need the whole flight.
type Recorder struct {
	Records []Record
}

func (r *Recorder) Observe(rec Record) { r.Records = append(r.Records, rec) }
