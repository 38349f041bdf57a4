package noise

import (
	"math"
	"testing"
)

func TestNewVariants(t *testing.T) {
	for _, v := range Variants() {
		f, err := New(v, 42)
		if err != nil {
			t.Errorf("New(%q): unexpected error: %v", v, err)
		}
		if f == nil {
			t.Errorf("New(%q): nil field", v)
		}
	}

	if f, err := New("", 42); err != nil || f == nil {
		t.Errorf("Expected empty variant to default to simplex, got (%v, %v)", f, err)
	}

	if _, err := New("voronoi", 42); err == nil {
		t.Error("Expected error for unknown variant")
	}
}

func TestFieldDeterminism(t *testing.T) {
	for _, v := range Variants() {
		a, _ := New(v, 12345)
		b, _ := New(v, 12345)
		for i := 0; i < 200; i++ {
			x, y, z := float64(i)*0.17, float64(i)*0.23, float64(i)*0.11
			if a.Eval3(x, y, z) != b.Eval3(x, y, z) {
				t.Errorf("%s: sample %d differs between equal seeds", v, i)
			}
		}
	}
}

func TestFieldBounded(t *testing.T) {
	for _, v := range Variants() {
		f, _ := New(v, 7)
		for i := 0; i < 2000; i++ {
			x := math.Sin(float64(i)) * 10
			y := math.Cos(float64(i)*0.7) * 10
			z := float64(i) * 0.05
			n := f.Eval3(x, y, z)
			if math.IsNaN(n) || n < -1.5 || n > 1.5 {
				t.Fatalf("%s: Eval3(%v,%v,%v) = %v out of range", v, x, y, z, n)
			}
		}
	}
}

func TestFieldContinuity(t *testing.T) {
	// A coherent field must not jump for a tiny input delta.
	const eps = 1e-4
	for _, v := range Variants() {
		f, _ := New(v, 99)
		for i := 0; i < 500; i++ {
			x, y, z := float64(i)*0.31, float64(i)*0.19, float64(i)*0.07
			d := math.Abs(f.Eval3(x+eps, y, z) - f.Eval3(x, y, z))
			if d > 0.01 {
				t.Fatalf("%s: discontinuity at (%v,%v,%v): delta %v", v, x, y, z, d)
			}
		}
	}
}

func TestSeedStable(t *testing.T) {
	if Seed(0xCAFEBABE) != Seed(0xCAFEBABE) {
		t.Error("Expected identical seeds for identical hashes")
	}
	if Seed(1) == Seed(2) {
		t.Error("Expected different hashes to give different seeds")
	}
}
