package lvexplorer

import "math"

// SphericalToCartesian converts a sky coordinate (right ascension and
// declination in degrees, distance in Mpc) to a scene-space point. No range
// validation is done: out-of-range angles just land on a mathematically
// consistent point.
func SphericalToCartesian(raDeg, decDeg, dist float64) Vec3 {
	ra := raDeg * math.Pi / 180
	dec := decDeg * math.Pi / 180
	cosDec := math.Cos(dec)
	return Vec3{
		X: dist * cosDec * math.Cos(ra),
		Y: dist * cosDec * math.Sin(ra),
		Z: dist * math.Sin(dec),
	}
}
