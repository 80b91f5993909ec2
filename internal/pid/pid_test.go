package pid

import (
	"math"
	"testing"
)

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestUpdateTwoSteps(t *testing.T) {
	c := New(Gains{Kp: 0.4, Ki: 0.02, Kd: 0.15}, 100)

	if out := c.Update(0, 1); !near(out, 57, 1e-9) {
		t.Errorf("first update: got %v, expected 57", out)
	}
	if c.Integral() != 100 || c.PrevError() != 100 {
		t.Errorf("after first update: integral %v prev error %v", c.Integral(), c.PrevError())
	}

	// 0.4*50 + 0.02*150 + 0.15*(50-100)
	if out := c.Update(50, 1); !near(out, 15.5, 1e-9) {
		t.Errorf("second update: got %v, expected 15.5", out)
	}
	if c.Integral() != 150 || c.PrevError() != 50 {
		t.Errorf("after second update: integral %v prev error %v", c.Integral(), c.PrevError())
	}
}

func TestIntegralAccumulation(t *testing.T) {
	for _, dt := range []float64{0.1, 0.5, 1, 2.5} {
		for _, e := range []float64{-12.5, 3, 250} {
			c := New(Gains{Ki: 1}, e)
			const n = 40
			for iter := 0; iter < n; iter++ {
				c.Update(0, dt)
			}
			if expected := n * e * dt; !near(c.Integral(), expected, 1e-9*math.Abs(expected)+1e-12) {
				t.Errorf("dt %v error %v: integral %v, expected %v", dt, e, c.Integral(), expected)
			}
		}
	}
}

func TestDerivativeSpikeOnSetpointChange(t *testing.T) {
	g := Gains{Kp: 0.4, Ki: 0.02, Kd: 0.15}
	c := New(g, 1000)
	dt := 0.5

	c.Update(900, dt)
	prevErr, integral := c.PrevError(), c.Integral()

	c.SetSetpoint(35000)
	out := c.Update(950, dt)

	e := 35000. - 950
	derivative := (e - prevErr) / dt
	expected := g.Kp*e + g.Ki*(integral+e*dt) + g.Kd*derivative
	if !near(out, expected, 1e-9*math.Abs(expected)) {
		t.Errorf("got %v, expected %v", out, expected)
	}
	if c.Setpoint() != 35000 {
		t.Errorf("setpoint %v not retained", c.Setpoint())
	}
}

func TestIntegralUnclampedByDefault(t *testing.T) {
	c := New(Gains{Ki: 1}, 1e6)
	for iter := 0; iter < 1000; iter++ {
		c.Update(0, 1)
	}
	if c.Integral() != 1e9 {
		t.Errorf("integral %v: expected unbounded growth to 1e9", c.Integral())
	}
}

func TestIntegralLimits(t *testing.T) {
	c := New(Gains{Ki: 1}, 100, WithIntegralLimits(500, -500))
	for iter := 0; iter < 20; iter++ {
		c.Update(0, 1)
	}
	if c.Integral() != 500 {
		t.Errorf("integral %v: expected clamp at 500", c.Integral())
	}

	c.SetSetpoint(-100)
	for iter := 0; iter < 20; iter++ {
		c.Update(0, 1)
	}
	if c.Integral() != -500 {
		t.Errorf("integral %v: expected clamp at -500", c.Integral())
	}
}

func TestUpdatePanicsOnBadTimeStep(t *testing.T) {
	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("dt %v: expected panic", dt)
				}
			}()
			New(DefaultGains, 1).Update(0, dt)
		}()
	}
}

func TestReset(t *testing.T) {
	c := New(DefaultGains, 10)
	c.Update(3, 1)
	c.Reset()
	if c.Integral() != 0 || c.PrevError() != 0 || c.Setpoint() != 10 {
		t.Errorf("reset left integral %v prev error %v setpoint %v", c.Integral(), c.PrevError(), c.Setpoint())
	}
}
