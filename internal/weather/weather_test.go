package weather

import (
	"testing"

	"github.com/mohammadijoo/FLIGHT_AUTOPILOT_GO/internal/rand"
)

func TestModeRanges(t *testing.T) {
	for _, tc := range []struct {
		m    Mode
		wind float64
		turb float64
	}{
		{Clear, 30, 80},
		{Windy, 100, 150},
		{Storm, 200, 300},
	} {
		if rg := tc.m.Ranges(); rg.Wind != tc.wind || rg.Turbulence != tc.turb {
			t.Errorf("%s: got %+v", tc.m, rg)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		for _, s := range []string{m.String(), " " + m.String() + " "} {
			got, err := ParseMode(s)
			if err != nil || got != m {
				t.Errorf("%q: got %v, %v", s, got, err)
			}
		}
	}
	if m, err := ParseMode("storm"); err != nil || m != Storm {
		t.Errorf("lowercase storm: got %v, %v", m, err)
	}
	if _, err := ParseMode("hail"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
	if s := Mode(7).String(); s != "Mode(7)" {
		t.Errorf("out of range mode string %q", s)
	}
}

func TestSamplerWithinRanges(t *testing.T) {
	for _, m := range Modes {
		s := NewSampler(m.Ranges(), rand.New(42))
		rg := m.Ranges()
		for iter := 0; iter < 2000; iter++ {
			d := s.Sample()
			if d.Wind < -rg.Wind || d.Wind > rg.Wind {
				t.Fatalf("%s: wind %v outside ±%v", m, d.Wind, rg.Wind)
			}
			if d.Turbulence < -rg.Turbulence || d.Turbulence > rg.Turbulence {
				t.Fatalf("%s: turbulence %v outside ±%v", m, d.Turbulence, rg.Turbulence)
			}
		}
	}
}

func TestSamplerDeterministic(t *testing.T) {
	a := NewSampler(Storm.Ranges(), rand.New(9))
	b := NewSampler(Storm.Ranges(), rand.New(9))
	for i := 0; i < 500; i++ {
		if da, db := a.Sample(), b.Sample(); da != db {
			t.Fatalf("%d: %+v != %+v", i, da, db)
		}
	}
}

func TestCalm(t *testing.T) {
	for iter := 0; iter < 10; iter++ {
		if d := Calm.Sample(); d != (Disturbance{}) {
			t.Errorf("calm produced %+v", d)
		}
	}
}

func TestRandomCoversModes(t *testing.T) {
	r := rand.New(3)
	seen := make(map[Mode]bool)
	for iter := 0; iter < 200; iter++ {
		seen[Random(r)] = true
	}
	if len(seen) != len(Modes) {
		t.Errorf("only saw %v", seen)
	}
}
