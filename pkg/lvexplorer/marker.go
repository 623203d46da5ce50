package lvexplorer

import "math"

// Marker highlights a single scene position: a located sky coordinate or
// the active search match.
type Marker struct {
	Pos Vec3
}

// Marker appearance. The glyph is an additively blended soft sprite drawn
// over the point cloud regardless of depth.
// A translucent line ties the marker back to the origin so the eye can
// read its direction at a glance.
const (
	MarkerSize        = 3.0
	MarkerLineOpacity = 0.3
	blinkRate         = 8.0 // radians per second
)

// MarkerColor is the locate-glyph green of the viewer.
var MarkerColor = RGB{0.1, 1.0, 0.3}

// BlinkOpacity is the marker opacity at t seconds since render start. It is
// a pure function of elapsed time, bounded in [0.3, 1.0].
func BlinkOpacity(t float64) float64 {
	return 0.65 + 0.35*math.Sin(blinkRate*t)
}
