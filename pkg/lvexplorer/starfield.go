package lvexplorer

import "math/rand"

// Background starfield decoration: dim points scattered through a cube
// around the catalog volume.
const (
	starfieldCount  = 5000
	starfieldExtent = 1000.0
	starfieldSeed   = 1

	// StarPointSize is the declared size of one background star.
	StarPointSize = 0.5
	// StarfieldOpacity dims the background below every catalog point.
	StarfieldOpacity = 0.8
)

// StarfieldColor is the dim gray of background stars.
var StarfieldColor = RGB{0.53, 0.53, 0.53}

// GenerateStarfield returns n points uniformly placed in a cube of the
// given edge length centered on the origin. The generator is seeded so
// every run produces the same sky.
func GenerateStarfield(n int, extent float64) []Vec3 {
	rng := rand.New(rand.NewSource(starfieldSeed))
	stars := make([]Vec3, n)
	for i := range stars {
		stars[i] = V3(
			(rng.Float64()-0.5)*extent,
			(rng.Float64()-0.5)*extent,
			(rng.Float64()-0.5)*extent,
		)
	}
	return stars
}

// DefaultStarfield builds the standard background sky.
func DefaultStarfield() []Vec3 {
	return GenerateStarfield(starfieldCount, starfieldExtent)
}
