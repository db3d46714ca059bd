package engine

import "testing"

func TestSeededSource_Reproducible(t *testing.T) {
	a, b := NewSeededSource(42), NewSeededSource(42)
	for i := 0; i < 100; i++ {
		x, y := a.Float64(), b.Float64()
		if x != y {
			t.Fatalf("draw %d differs: %v != %v", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("draw %d = %v outside [0,1)", i, x)
		}
	}
}

func TestSystemSource_Range(t *testing.T) {
	src := NewSystemSource()
	for i := 0; i < 1000; i++ {
		if v := src.Float64(); v < 0 || v >= 1 {
			t.Fatalf("draw %d = %v outside [0,1)", i, v)
		}
	}
}

func TestSequenceSource(t *testing.T) {
	src := NewSequenceSource(0.1, 0.2)
	got := []float64{src.Float64(), src.Float64(), src.Float64()}
	want := []float64{0.1, 0.2, 0.1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("draw %d = %v, want %v", i, got[i], want[i])
		}
	}
	if src.Draws() != 3 {
		t.Errorf("Draws() = %d, want 3", src.Draws())
	}

	if v := NewSequenceSource().Float64(); v != 0 {
		t.Errorf("empty sequence draw = %v, want 0", v)
	}
}
