//go:build purego || js

package lvexplorer

import "math"

// Mat is a pure Go 2D float32 matrix, the dependency-free twin of the
// OpenCV-backed Mat. The software renderer uses one Mat per color channel
// as its additive accumulation buffer. Framebuffer mats are always
// contiguous, so no sub-matrix bookkeeping is needed.
type Mat struct {
	data []float32
	rows int
	cols int
}

func NewMatWithSize(rows, cols int) Mat {
	return Mat{data: make([]float32, rows*cols), rows: rows, cols: cols}
}

func (m *Mat) Close() {
	m.data = nil
	m.rows = 0
	m.cols = 0
}

// DataFloat32 returns the backing float32 slice, row-major.
func (m Mat) DataFloat32() []float32 { return m.data }

func (m *Mat) SetToZero() {
	for i := range m.data {
		m.data[i] = 0
	}
}

func CopyMatTo(src Mat, dst *Mat) {
	if dst.rows != src.rows || dst.cols != src.cols || dst.data == nil {
		*dst = NewMatWithSize(src.rows, src.cols)
	}
	copy(dst.data, src.data)
}

// --- Pure Go CV operations ---

func reflectIndex(idx, size int) int {
	if idx < 0 {
		idx = -idx
	}
	for idx >= size {
		idx = 2*size - 2 - idx
		if idx < 0 {
			idx = -idx
		}
	}
	return idx
}

// sepFilter2DReflect applies a separable filter with reflected borders,
// matching OpenCV's SepFilter2D with BorderReflect.
func sepFilter2DReflect(src Mat, dst *Mat, kernelX, kernelY Mat) {
	rows, cols := src.rows, src.cols
	srcData := src.DataFloat32()
	kx := kernelX.DataFloat32()
	ky := kernelY.DataFloat32()
	kxHalf := len(kx) / 2
	kyHalf := len(ky) / 2

	if dst.rows != rows || dst.cols != cols || dst.data == nil {
		*dst = NewMatWithSize(rows, cols)
	}

	temp := make([]float32, rows*cols)

	// Horizontal pass.
	for r := 0; r < rows; r++ {
		rowOff := r * cols
		for c := 0; c < cols; c++ {
			var sum float32
			if c >= kxHalf && c < cols-kxHalf {
				base := rowOff + c - kxHalf
				for k := range kx {
					sum += srcData[base+k] * kx[k]
				}
			} else {
				for k := range kx {
					sum += srcData[rowOff+reflectIndex(c+k-kxHalf, cols)] * kx[k]
				}
			}
			temp[rowOff+c] = sum
		}
	}

	// Vertical pass.
	dstData := dst.DataFloat32()
	rowOffs := make([]int, len(ky))
	for r := 0; r < rows; r++ {
		for k := range ky {
			rowOffs[k] = reflectIndex(r+k-kyHalf, rows) * cols
		}
		dstOff := r * cols
		for c := 0; c < cols; c++ {
			var sum float32
			for k := range ky {
				sum += temp[rowOffs[k]+c] * ky[k]
			}
			dstData[dstOff+c] = sum
		}
	}
}

func getGaussianKernel1D(size int, sigma float64) Mat {
	m := NewMatWithSize(size, 1)
	data := m.DataFloat32()
	half := size / 2
	sum := 0.0
	for i := 0; i < size; i++ {
		x := float64(i - half)
		val := math.Exp(-x * x / (2 * sigma * sigma))
		data[i] = float32(val)
		sum += val
	}
	for i := range data[:size] {
		data[i] = float32(float64(data[i]) / sum)
	}
	return m
}
