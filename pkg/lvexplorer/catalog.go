package lvexplorer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ParseCatalog reads a tabular galaxy catalog. The first record must be a
// header row naming the columns; every following record becomes one RawRow.
// Columns the pipeline does not interpret are kept verbatim.
//
// A catalog with a header and no data rows is valid and yields zero rows.
func ParseCatalog(r io.Reader) ([]RawRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("catalog is empty: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog header: %w", err)
	}

	rows := make([]RawRow, 0)
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading catalog row %d: %w", len(rows)+1, err)
		}
		row := make(RawRow, len(header))
		for i, col := range header {
			if i < len(fields) {
				row[col] = fields[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadCatalog opens and parses a catalog file.
func LoadCatalog(path string) ([]RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	rows, err := ParseCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rows, nil
}
