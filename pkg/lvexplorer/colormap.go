package lvexplorer

// RGB is a color with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

// The colormap maps log stellar mass onto a magma-like ramp. Masses at or
// below massColorFloor take the first stop, masses at or above
// massColorFloor+massColorSpan the last.
const (
	massColorFloor = 6.0
	massColorSpan  = 5.5
)

type paletteStop struct {
	pos   float64
	color RGB
}

// Six control points from black through purple and orange to pale yellow.
var massPalette = []paletteStop{
	{0.00, RGB{0.00, 0.00, 0.02}},
	{0.20, RGB{0.16, 0.06, 0.36}},
	{0.40, RGB{0.45, 0.12, 0.51}},
	{0.60, RGB{0.73, 0.21, 0.47}},
	{0.80, RGB{0.97, 0.55, 0.24}},
	{1.00, RGB{0.99, 0.99, 0.75}},
}

// MassColor maps a log stellar mass to its palette color by piecewise
// linear interpolation. Channel interpolation is plain linear, no gamma.
func MassColor(massLog float64) RGB {
	t := (massLog - massColorFloor) / massColorSpan
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	last := massPalette[len(massPalette)-1]
	if t >= last.pos {
		return last.color
	}
	for i := 1; i < len(massPalette); i++ {
		hi := massPalette[i]
		if t > hi.pos {
			continue
		}
		lo := massPalette[i-1]
		f := (t - lo.pos) / (hi.pos - lo.pos)
		return RGB{
			R: lo.color.R + (hi.color.R-lo.color.R)*f,
			G: lo.color.G + (hi.color.G-lo.color.G)*f,
			B: lo.color.B + (hi.color.B-lo.color.B)*f,
		}
	}
	return last.color
}
