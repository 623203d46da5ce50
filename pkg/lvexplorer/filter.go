package lvexplorer

import "strings"

// localGroupCutoffMpc bounds the "Local Group only" view.
const localGroupCutoffMpc = 3.0

// ApplyFilter returns the records that survive the given filter state, as a
// fresh slice in input order. Each survivor carries an IsMatch annotation
// for the active search string. The input slice is never mutated: the
// function is pure and value-stable across repeated calls.
//
// The magnitude band only constrains records that carry an M_V value;
// records without one always pass the band, so narrowing it never hides
// galaxies whose magnitude is simply unknown.
func ApplyFilter(records []GalaxyRecord, state FilterState) []GalaxyRecord {
	query := strings.ToLower(state.SearchQuery)

	out := make([]GalaxyRecord, 0, len(records))
	for _, rec := range records {
		if rec.DistMpc > state.MaxDist {
			continue
		}
		if rec.MassLog < state.MinMass {
			continue
		}
		if state.LocalGroupOnly && rec.DistMpc > localGroupCutoffMpc {
			continue
		}
		// Magnitude band applies only when the state narrows it and the
		// record actually carries an M_V value.
		if rec.HasMV && (state.MinMV != 0 || state.MaxMV != 0) {
			if rec.MV < state.MinMV || rec.MV > state.MaxMV {
				continue
			}
		}
		rec.IsMatch = query == "" || strings.Contains(strings.ToLower(rec.Name), query)
		out = append(out, rec)
	}
	return out
}

// FirstMatch returns the record the marker should highlight: the first
// survivor with IsMatch set while a non-empty search is active. When
// several records match, the first in iteration order is "the" match.
func FirstMatch(filtered []GalaxyRecord, state FilterState) (GalaxyRecord, bool) {
	if state.SearchQuery == "" {
		return GalaxyRecord{}, false
	}
	for _, rec := range filtered {
		if rec.IsMatch {
			return rec, true
		}
	}
	return GalaxyRecord{}, false
}
