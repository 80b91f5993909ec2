// Package weather provides the wind and turbulence disturbances seen by
// the autopilot.
package weather

import (
	"fmt"
	"strings"

	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/rand"
)

// Mode is selected once at run start and held for the whole flight.
type Mode int

const (
	Clear Mode = iota
	Windy
	Storm
)

var Modes = []Mode{Clear, Windy, Storm}

var modeNames = [...]string{"Clear", "Windy", "Storm"}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts a mode name in any case.
func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%q: unknown weather mode", s)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Random picks a mode uniformly.
func Random(r *rand.Rand) Mode {
	return rand.Sample(r, Modes...)
}

// Ranges gives the half-widths of the symmetric intervals disturbances are
// drawn from.
type Ranges struct {
	Wind       float64
	Turbulence float64
}

func (m Mode) Ranges() Ranges {
	switch m {
	case Windy:
		return Ranges{Wind: 100, Turbulence: 150}
	case Storm:
		return Ranges{Wind: 200, Turbulence: 300}
	default:
		return Ranges{Wind: 30, Turbulence: 80}
	}
}

// Disturbance is one step's environment sample. Wind only displaces the
// reported position; turbulence corrupts the altitude sensor.
type Disturbance struct {
	Wind       float64
	Turbulence float64
}

// Source produces one disturbance sample per simulation step.
type Source interface {
	Sample() Disturbance
}

// Sampler draws wind and turbulence independently and uniformly every step,
// with no correlation between steps.
type Sampler struct {
	ranges Ranges
	r      *rand.Rand
}

func NewSampler(rg Ranges, r *rand.Rand) *Sampler {
	return &Sampler{ranges: rg, r: r}
}

func (s *Sampler) Ranges() Ranges { return s.ranges }

// Sample draws wind first and turbulence second so that a given seed always
// yields the same pair sequence.
func (s *Sampler) Sample() Disturbance {
	w := s.r.Uniform(-s.ranges.Wind, s.ranges.Wind)
	t := s.r.Uniform(-s.ranges.Turbulence, s.ranges.Turbulence)
	return Disturbance{Wind: w, Turbulence: t}
}

// Calm is a Source with no wind and no turbulence.
var Calm Source = calm{}

type calm struct{}

func (calm) Sample() Disturbance { return Disturbance{} }
