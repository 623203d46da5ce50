package lvexplorer

import "testing"

func rgbEq(a, b RGB, tol float64) bool {
	return nearly(a.R, b.R, tol) && nearly(a.G, b.G, tol) && nearly(a.B, b.B, tol)
}

func TestMassColor_Endpoints(t *testing.T) {
	first := massPalette[0].color
	last := massPalette[len(massPalette)-1].color

	if c := MassColor(6.0); !rgbEq(c, first, eps) {
		t.Fatalf("MassColor(6.0) = %+v, want first stop %+v", c, first)
	}
	if c := MassColor(11.5); !rgbEq(c, last, eps) {
		t.Fatalf("MassColor(11.5) = %+v, want last stop %+v", c, last)
	}
}

func TestMassColor_Clamps(t *testing.T) {
	first := massPalette[0].color
	last := massPalette[len(massPalette)-1].color

	if c := MassColor(3.25); !rgbEq(c, first, eps) {
		t.Fatalf("MassColor(3.25) = %+v, want clamp to first stop", c)
	}
	if c := MassColor(20); !rgbEq(c, last, eps) {
		t.Fatalf("MassColor(20) = %+v, want clamp to last stop", c)
	}
}

func TestMassColor_LinearInterpolation(t *testing.T) {
	// Halfway between two adjacent stops each channel must sit exactly at
	// the arithmetic midpoint (linear, not gamma-aware).
	lo, hi := massPalette[1], massPalette[2]
	tMid := (lo.pos + hi.pos) / 2
	massLog := massColorFloor + tMid*massColorSpan

	want := RGB{
		R: (lo.color.R + hi.color.R) / 2,
		G: (lo.color.G + hi.color.G) / 2,
		B: (lo.color.B + hi.color.B) / 2,
	}
	if c := MassColor(massLog); !rgbEq(c, want, 1e-12) {
		t.Fatalf("MassColor(%g) = %+v, want midpoint %+v", massLog, c, want)
	}
}

func TestMassColor_Idempotent(t *testing.T) {
	for _, m := range []float64{0, 6, 7.3, 9.9, 11.5, 42} {
		if a, b := MassColor(m), MassColor(m); a != b {
			t.Fatalf("MassColor(%g) unstable: %+v vs %+v", m, a, b)
		}
	}
}

func TestMassColor_Monotonic(t *testing.T) {
	// The ramp should brighten with mass: total intensity never decreases.
	prev := -1.0
	for m := 5.0; m <= 12.0; m += 0.05 {
		c := MassColor(m)
		sum := c.R + c.G + c.B
		if sum < prev-1e-9 {
			t.Fatalf("palette darkens at massLog=%g", m)
		}
		prev = sum
	}
}
