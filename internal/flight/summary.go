package flight

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/weather"
)

// tailSteps is the number of final steps averaged for TailAltitude.
const tailSteps = 20

// Summary describes a completed flight.
type Summary struct {
	Steps          int
	Weather        weather.Mode
	TargetAltitude float64

	FinalAltitude float64
	MaxAltitude   float64
	MinAltitude   float64

	// Overshoot is MaxAltitude - TargetAltitude; negative when the target
	// was never reached.
	Overshoot float64

	MeanClimbRate float64

	// TailAltitude is the mean altitude over the last steps of the flight.
	TailAltitude float64

	MeanTurbulence float64
	StdTurbulence  float64 // population standard deviation

	// MeanAbsError is the mean of |setpoint - altitude| over all steps.
	MeanAbsError float64
}

// Summarize reduces a flight's records. It returns the zero Summary for an
// empty flight.
func Summarize(recs []Record, target float64) Summary {
	n := len(recs)
	if n == 0 {
		return Summary{TargetAltitude: target}
	}

	alt := make([]float64, n)
	climb := make([]float64, n)
	turb := make([]float64, n)
	absErr := make([]float64, n)
	for i, r := range recs {
		alt[i] = r.Altitude
		climb[i] = r.ClimbRate
		turb[i] = r.Turbulence
		absErr[i] = math.Abs(r.Setpoint - r.Altitude)
	}

	meanTurb := stat.Mean(turb, nil)
	// stat.StdDev is the unbiased estimator; scale back to the population
	// value so a single-step flight reports 0.
	stdTurb := 0.
	if n > 1 {
		stdTurb = stat.StdDev(turb, nil) * math.Sqrt(float64(n-1)/float64(n))
	}

	tail := alt[max(0, n-tailSteps):]

	s := Summary{
		Steps:          n,
		Weather:        recs[0].Weather,
		TargetAltitude: target,
		FinalAltitude:  alt[n-1],
		MaxAltitude:    floats.Max(alt),
		MinAltitude:    floats.Min(alt),
		MeanClimbRate:  stat.Mean(climb, nil),
		TailAltitude:   stat.Mean(tail, nil),
		MeanTurbulence: meanTurb,
		StdTurbulence:  stdTurb,
		MeanAbsError:   stat.Mean(absErr, nil),
	}
	s.Overshoot = s.MaxAltitude - target
	return s
}
