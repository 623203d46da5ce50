package lvexplorer

import "math"

// kpcPerMpc converts the catalog's kiloparsec columns to scene megaparsecs.
const kpcPerMpc = 1000.0

// DetectMassScale pre-scans all rows and decides how the mass_stellar
// column is encoded. If any row exceeds 20 the column holds linear solar
// masses; otherwise it is already log10. The decision is global: one scan,
// one answer for the whole dataset.
func DetectMassScale(rows []RawRow) MassScale {
	maxMass := 0.0
	for _, row := range rows {
		if m, ok := row.Float(ColMass); ok && m > maxMass {
			maxMass = m
		}
	}
	if maxMass > 20 {
		return MassScaleLinear
	}
	return MassScaleLog
}

// Normalize turns raw catalog rows into canonical GalaxyRecords, in input
// order. Rows missing any of the three supergalactic coordinates are
// dropped silently. A missing mass becomes 0 and is never log-transformed,
// so log10(0) can never leak into a record.
func Normalize(rows []RawRow) ([]GalaxyRecord, *NormalizeMetrics) {
	metrics := &NormalizeMetrics{RowsIn: len(rows)}
	records := make([]GalaxyRecord, 0, len(rows))
	if len(rows) == 0 {
		return records, metrics
	}

	scale := DetectMassScale(rows)
	metrics.Scale = scale

	for _, row := range rows {
		sx, okX := row.Float(ColSGX)
		sy, okY := row.Float(ColSGY)
		sz, okZ := row.Float(ColSGZ)
		if !okX || !okY || !okZ {
			metrics.DroppedCoords++
			continue
		}

		mass, hasMass := row.Float(ColMass)
		if !hasMass {
			mass = 0
			metrics.MissingMass++
		}
		if scale == MassScaleLinear && mass > 0 {
			mass = math.Log10(mass)
		}

		dist, _ := row.Float(ColDistance)
		mv, hasMV := row.Float(ColMV)

		records = append(records, GalaxyRecord{
			ID:      len(records),
			X:       sx / kpcPerMpc,
			Y:       sy / kpcPerMpc,
			Z:       sz / kpcPerMpc,
			MassLog: mass,
			DistMpc: dist / kpcPerMpc,
			Name:    row[ColName],
			MV:      mv,
			HasMV:   hasMV,
			Fields:  row,
		})
	}
	metrics.Emitted = len(records)
	return records, metrics
}
