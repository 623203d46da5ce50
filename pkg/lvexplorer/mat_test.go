package lvexplorer

import "testing"

// The framebuffer surface must behave identically on both Mat backends.
func TestMatFramebufferSurface(t *testing.T) {
	m := NewMatWithSize(4, 5)
	defer m.Close()

	data := m.DataFloat32()
	if len(data) != 20 {
		t.Fatalf("backing slice has %d elements, want 20", len(data))
	}

	data[7] = 3.5
	m.SetToZero()
	if data[7] != 0 {
		t.Fatalf("SetToZero left %g at index 7", data[7])
	}

	data[3] = 1.25
	dst := NewMatWithSize(4, 5)
	defer dst.Close()
	CopyMatTo(m, &dst)
	if got := dst.DataFloat32()[3]; got != 1.25 {
		t.Fatalf("CopyMatTo copied %g, want 1.25", got)
	}
}

func TestGaussianKernelNormalized(t *testing.T) {
	k := getGaussianKernel1D(3, 0.8)
	defer k.Close()

	data := k.DataFloat32()
	sum := 0.0
	for _, v := range data[:3] {
		sum += float64(v)
	}
	if !nearly(sum, 1, 1e-6) {
		t.Fatalf("kernel sums to %g, want 1", sum)
	}
	if data[1] <= data[0] || data[1] <= data[2] {
		t.Fatalf("kernel must peak at the center: %v", data[:3])
	}
}

// A normalized separable blur leaves a constant field unchanged, reflected
// borders included.
func TestSepFilterPreservesConstantField(t *testing.T) {
	src := NewMatWithSize(6, 6)
	defer src.Close()
	data := src.DataFloat32()
	for i := range data[:36] {
		data[i] = 2.0
	}

	kernel := getGaussianKernel1D(3, 0.8)
	defer kernel.Close()
	dst := NewMatWithSize(6, 6)
	defer dst.Close()
	sepFilter2DReflect(src, &dst, kernel, kernel)

	for i, v := range dst.DataFloat32()[:36] {
		if !nearly(float64(v), 2.0, 1e-5) {
			t.Fatalf("blurred constant field drifted at %d: %g", i, v)
		}
	}
}
