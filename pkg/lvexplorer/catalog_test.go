package lvexplorer

import (
	"strings"
	"testing"
)

func TestParseCatalog(t *testing.T) {
	csv := `name,sg_xx,sg_yy,sg_zz,mass_stellar,distance,M_V,morphology
Andromeda Galaxy,780,100,-200,1.2e11,780,-21.5,Sb
Sculptor,50,20,30,,86,-11.1,dSph
`
	rows, err := ParseCatalog(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][ColName] != "Andromeda Galaxy" {
		t.Fatalf("name = %q", rows[0][ColName])
	}
	if v, ok := rows[0].Float(ColMass); !ok || !nearly(v, 1.2e11, 1) {
		t.Fatalf("mass = %g, %v", v, ok)
	}
	// Empty cell reads as missing.
	if _, ok := rows[1].Float(ColMass); ok {
		t.Fatalf("empty mass cell should read as missing")
	}
	// Unknown columns pass through.
	if rows[0]["morphology"] != "Sb" {
		t.Fatalf("morphology = %q", rows[0]["morphology"])
	}
}

func TestParseCatalog_HeaderOnly(t *testing.T) {
	rows, err := ParseCatalog(strings.NewReader("name,sg_xx,sg_yy,sg_zz\n"))
	if err != nil {
		t.Fatalf("header-only catalog should be valid: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected 0 rows, got %d", len(rows))
	}
	// Downstream stages accept the empty set without special-casing.
	records, _ := Normalize(rows)
	filtered := ApplyFilter(records, DefaultFilterState())
	if len(filtered) != 0 {
		t.Fatalf("empty pipeline produced %d records", len(filtered))
	}
}

func TestParseCatalog_Errors(t *testing.T) {
	if _, err := ParseCatalog(strings.NewReader("")); err == nil {
		t.Fatalf("zero-byte catalog should fail")
	}
	// A malformed row surfaces as a single terminal error.
	bad := "name,sg_xx\n\"unterminated,1\n"
	if _, err := ParseCatalog(strings.NewReader(bad)); err == nil {
		t.Fatalf("malformed catalog should fail")
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	if _, err := LoadCatalog("testdata/does-not-exist.csv"); err == nil {
		t.Fatalf("missing catalog file should fail")
	}
}
