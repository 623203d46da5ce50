package lvexplorer

import "testing"

func vecNearly(a, b Vec3, tol float64) bool {
	return nearly(a.X, b.X, tol) && nearly(a.Y, b.Y, tol) && nearly(a.Z, b.Z, tol)
}

func TestSphericalToCartesian_Axes(t *testing.T) {
	cases := []struct {
		ra, dec, dist float64
		want          Vec3
	}{
		{0, 0, 1, V3(1, 0, 0)},
		{90, 0, 1, V3(0, 1, 0)},
		{0, 90, 1, V3(0, 0, 1)},
		{180, 0, 2, V3(-2, 0, 0)},
		{0, -90, 1, V3(0, 0, -1)},
	}
	for _, c := range cases {
		got := SphericalToCartesian(c.ra, c.dec, c.dist)
		if !vecNearly(got, c.want, 1e-12) {
			t.Fatalf("SphericalToCartesian(%g, %g, %g) = %+v, want %+v",
				c.ra, c.dec, c.dist, got, c.want)
		}
	}
}

func TestSphericalToCartesian_NoValidation(t *testing.T) {
	// Out-of-range angles still yield a consistent point on the sphere.
	got := SphericalToCartesian(360, 0, 1)
	if !vecNearly(got, V3(1, 0, 0), 1e-12) {
		t.Fatalf("ra=360 should wrap to (1,0,0), got %+v", got)
	}
	if l := SphericalToCartesian(123, 45, 7).Len(); !nearly(l, 7, 1e-12) {
		t.Fatalf("distance not preserved: |v| = %g, want 7", l)
	}
}
