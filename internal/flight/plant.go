package flight

// ClimbScale converts one unit of controller output into ft/min of climb
// rate change.
const ClimbScale = 0.01

// Plant is the vertical channel of the aircraft: the controller adjusts the
// climb rate and the climb rate is integrated into altitude.
type Plant struct {
	Altitude  float64 // ft
	ClimbRate float64 // ft/min
}

// Apply adds the scaled adjustment to the climb rate and advances the
// altitude by dt seconds.
func (p *Plant) Apply(adjustment, dt float64) {
	p.ClimbRate += adjustment * ClimbScale
	p.Altitude += p.ClimbRate * (dt / 60)
}
