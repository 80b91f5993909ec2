package rand

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 1000; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("%d: %v != %v", i, x, y)
		}
	}

	c := New(43)
	same := 0
	a.Seed(42)
	for iter := 0; iter < 100; iter++ {
		if a.Uint32() == c.Uint32() {
			same++
		}
	}
	if same > 5 {
		t.Errorf("different seeds agreed on %d/100 draws", same)
	}
}

func TestUniformBounds(t *testing.T) {
	r := New(7)
	for _, b := range [][2]float64{{-30, 30}, {-300, 300}, {0, 1}, {5, 5}} {
		lo, hi := b[0], b[1]
		var sum float64
		const n = 5000
		for iter := 0; iter < n; iter++ {
			v := r.Uniform(lo, hi)
			if v < lo || (hi > lo && v >= hi) || (hi == lo && v != lo) {
				t.Fatalf("[%v, %v): sampled %v", lo, hi, v)
			}
			sum += v
		}
		if mid, mean := (lo+hi)/2, sum/n; hi > lo && (mean < mid-(hi-lo)*0.05 || mean > mid+(hi-lo)*0.05) {
			t.Errorf("[%v, %v): mean %v far from %v", lo, hi, mean, mid)
		}
	}
}

func TestSample(t *testing.T) {
	r := New(1)
	seen := make(map[string]int)
	for iter := 0; iter < 300; iter++ {
		seen[Sample(r, "a", "b", "c")]++
	}
	for _, k := range []string{"a", "b", "c"} {
		if seen[k] == 0 {
			t.Errorf("%q never sampled", k)
		}
	}
}
