package lvexplorer

import (
	"fmt"
	"strconv"
	"strings"
)

// Column names the pipeline interprets. Anything else in the catalog is
// carried through on each record untouched.
const (
	ColSGX      = "sg_xx"
	ColSGY      = "sg_yy"
	ColSGZ      = "sg_zz"
	ColMass     = "mass_stellar"
	ColDistance = "distance"
	ColName     = "name"
	ColMV       = "M_V"
)

// RawRow is one parsed catalog row: column name -> raw field text.
type RawRow map[string]string

// Float returns the named column as a float64. The second return is false
// when the column is absent, empty, or not numeric.
func (r RawRow) Float(key string) (float64, bool) {
	s, ok := r[key]
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// GalaxyRecord is the canonical form of one catalog galaxy. Records are
// built once per load and never mutated afterwards; filtering produces
// fresh annotated copies.
type GalaxyRecord struct {
	// ID is the sequence index assigned at normalization, stable across
	// filtering within one load.
	ID int

	// X, Y, Z are supergalactic Cartesian coordinates in Mpc.
	X, Y, Z float64

	// MassLog is log10 stellar mass in solar masses. Zero means the
	// catalog carried no mass for this galaxy (sub-threshold, not absent).
	MassLog float64

	// DistMpc is the radial distance in Mpc.
	DistMpc float64

	Name  string
	MV    float64
	HasMV bool

	// Fields carries every original column of the source row.
	Fields RawRow

	// IsMatch is recomputed on every filter pass: true iff the active
	// search string is empty or a case-insensitive substring of Name.
	IsMatch bool
}

// MassScale is the dataset-wide interpretation of the mass_stellar column,
// decided once by a pre-scan during normalization.
type MassScale int

const (
	// MassScaleLog means mass_stellar already holds log10 solar masses.
	MassScaleLog MassScale = iota
	// MassScaleLinear means mass_stellar holds linear solar masses.
	MassScaleLinear
)

func (s MassScale) String() string {
	switch s {
	case MassScaleLog:
		return "log"
	case MassScaleLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// FilterState is the immutable configuration for one filter pass.
type FilterState struct {
	MaxDist        float64 // Mpc
	MinMass        float64 // log10 solar masses
	MinMV, MaxMV   float64 // absolute magnitude band
	LocalGroupOnly bool
	SearchQuery    string
}

// DefaultFilterState returns the filter configuration the viewer starts with.
func DefaultFilterState() FilterState {
	return FilterState{
		MaxDist: 11.0,
		MinMass: 6.0,
		MinMV:   -25.0,
		MaxMV:   0.0,
	}
}

// NormalizeMetrics tracks what happened to the raw rows during one
// normalization pass.
type NormalizeMetrics struct {
	RowsIn        int
	Emitted       int
	DroppedCoords int
	MissingMass   int
	Scale         MassScale
}

func (m *NormalizeMetrics) String() string {
	return fmt.Sprintf("{RowsIn=%d, Emitted=%d, DroppedCoords=%d, MissingMass=%d, Scale=%s}",
		m.RowsIn, m.Emitted, m.DroppedCoords, m.MissingMass, m.Scale)
}
