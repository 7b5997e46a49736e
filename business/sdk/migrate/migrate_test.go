package migrate

import (
	"strings"
	"testing"
)

func TestParseEmbedded(t *testing.T) {
	migrations, err := Parse(migrateDoc)
	if err != nil {
		t.Fatalf("Should be able to parse the embedded document: %s", err)
	}

	if len(migrations) != 5 {
		t.Fatalf("Should get 5 migrations, got %d", len(migrations))
	}

	last := migrations[len(migrations)-1]
	if !strings.Contains(last.Script, "EXCLUDE USING gist") {
		t.Errorf("The bookings migration should carry the overlap exclusion constraint")
	}
}

func TestParse(t *testing.T) {
	doc := `
-- Version: 1.01
-- Description: first
CREATE TABLE a (id INT);

-- Version: 1.02
CREATE TABLE b (id INT);
`
	migrations, err := Parse(doc)
	if err != nil {
		t.Fatalf("Should parse: %s", err)
	}

	if len(migrations) != 2 {
		t.Fatalf("Should get 2 migrations, got %d", len(migrations))
	}

	if migrations[0].Description != "first" {
		t.Errorf("Got description %q, want %q", migrations[0].Description, "first")
	}

	if migrations[1].Script != "CREATE TABLE b (id INT);" {
		t.Errorf("Got script %q", migrations[1].Script)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"statement-before-version", "CREATE TABLE a (id INT);"},
		{"bad-version", "-- Version: one\nSELECT 1;"},
		{"non-increasing", "-- Version: 1.02\nSELECT 1;\n-- Version: 1.01\nSELECT 1;"},
		{"description-before-version", "-- Description: nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.doc); err == nil {
				t.Errorf("Should fail to parse %q", tt.doc)
			}
		})
	}
}
