// Package schedule computes the altitude setpoint for each step of a
// flight: a linear climb over the first 30% of the steps, cruise at the
// target altitude, and a linear descent over the last 20%.
package schedule

import "fmt"

type Phase int

const (
	Takeoff Phase = iota
	Cruise
	Descent
)

func (p Phase) String() string {
	switch p {
	case Takeoff:
		return "Takeoff"
	case Cruise:
		return "Cruise"
	case Descent:
		return "Descent"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Phase boundaries as fractions of the total step count.
const (
	ClimbEnd     = 0.3
	DescentStart = 0.8

	descentSpan = 0.2
)

// PhaseAt returns the flight phase of step i of n. Both boundaries belong
// to the cruise phase.
func PhaseAt(i, n int) Phase {
	fi, fn := float64(i), float64(n)
	switch {
	case fi < ClimbEnd*fn:
		return Takeoff
	case fi > DescentStart*fn:
		return Descent
	default:
		return Cruise
	}
}

// Setpoint returns the altitude target for step i of n.
func Setpoint(i, n int, target float64) float64 {
	fi, fn := float64(i), float64(n)
	switch PhaseAt(i, n) {
	case Takeoff:
		return target * (fi / (ClimbEnd * fn))
	case Descent:
		return target * (1 - (fi-DescentStart*fn)/(descentSpan*fn))
	default:
		return target
	}
}

// Schedule maps a step to its setpoint.
type Schedule interface {
	Setpoint(i, n int) float64
	Phase(i, n int) Phase
}

// Flight is the takeoff/cruise/descent schedule toward Target.
type Flight struct {
	Target float64
}

func (f Flight) Setpoint(i, n int) float64 { return Setpoint(i, n, f.Target) }
func (f Flight) Phase(i, n int) Phase      { return PhaseAt(i, n) }

// Constant holds the setpoint at Target for the whole run, as in a
// step-response test.
type Constant struct {
	Target float64
}

func (c Constant) Setpoint(i, n int) float64 { return c.Target }
func (c Constant) Phase(i, n int) Phase      { return Cruise }
