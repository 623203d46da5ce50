package lvexplorer

// Point radius buckets by log stellar mass, in render-space units.
const (
	sizeDwarf  = 1.5
	sizeMedium = 2.5
	sizeGiant  = 4.0
)

// SizeForMass classifies a log stellar mass into a point radius bucket.
// Buckets are half-open on the lower side: exactly 8.0 is medium, exactly
// 10.0 is giant.
func SizeForMass(massLog float64) float64 {
	switch {
	case massLog < 8.0:
		return sizeDwarf
	case massLog < 10.0:
		return sizeMedium
	default:
		return sizeGiant
	}
}

// IsMassive reports whether a galaxy sits above the user's massive/dwarf
// classification threshold.
func IsMassive(massLog, threshold float64) bool {
	return massLog > threshold
}
