// Package pid implements a discrete-time PID controller.
//
// The controller is deliberately naive: the integral term accumulates
// without bound unless limits are configured, and a setpoint change is
// seen by the derivative term on the very next update.
package pid

import (
	"fmt"
	"math"
)

// Gains holds the proportional, integral and derivative coefficients.
type Gains struct {
	Kp float64 `yaml:"kp"`
	Ki float64 `yaml:"ki"`
	Kd float64 `yaml:"kd"`
}

// DefaultGains are the autopilot gains used by the altitude simulations.
var DefaultGains = Gains{Kp: 0.4, Ki: 0.02, Kd: 0.15}

// Controller keeps the integral and derivative state of one control loop.
type Controller struct {
	gains    Gains
	setpoint float64

	integral  float64
	prevError float64

	// Optional integral limits; nil means unclamped.
	limits *[2]float64
}

// Option configures a Controller.
type Option func(*Controller)

// WithIntegralLimits bounds the accumulated integral to [lo, hi].
func WithIntegralLimits(lo, hi float64) Option {
	return func(c *Controller) {
		if lo > hi {
			lo, hi = hi, lo
		}
		c.limits = &[2]float64{lo, hi}
	}
}

func New(g Gains, setpoint float64, opts ...Option) *Controller {
	c := &Controller{gains: g, setpoint: setpoint}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Gains() Gains          { return c.gains }
func (c *Controller) Setpoint() float64     { return c.setpoint }
func (c *Controller) Integral() float64     { return c.integral }
func (c *Controller) PrevError() float64    { return c.prevError }
func (c *Controller) SetSetpoint(v float64) { c.setpoint = v }

// Update computes the control output for the sensed process value over a
// time step of dt seconds. The integral and previous error are carried over
// even when the setpoint changed since the last call.
//
// dt must be strictly positive; Update panics otherwise.
func (c *Controller) Update(sensed, dt float64) float64 {
	if !(dt > 0) || math.IsInf(dt, 0) {
		panic(fmt.Sprintf("pid: time step must be positive and finite, got %v", dt))
	}

	e := c.setpoint - sensed
	c.integral += e * dt
	if c.limits != nil {
		c.integral = math.Max(c.limits[0], math.Min(c.limits[1], c.integral))
	}
	derivative := (e - c.prevError) / dt

	out := c.gains.Kp*e + c.gains.Ki*c.integral + c.gains.Kd*derivative
	c.prevError = e
	return out
}

// Reset clears the accumulated state; the setpoint is left unchanged.
func (c *Controller) Reset() {
	c.integral = 0
	c.prevError = 0
}
