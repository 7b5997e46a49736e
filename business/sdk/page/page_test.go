package page_test

import (
	"testing"

	"github.com/jcpaschoal/smartroom/business/sdk/page"
)

func Test_Parse(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		rows    string
		number  int
		perPage int
		offset  int
		wantErr bool
	}{
		{name: "defaults", number: 1, perPage: 10, offset: 0},
		{name: "third", page: "3", rows: "20", number: 3, perPage: 20, offset: 40},
		{name: "zero page", page: "0", wantErr: true},
		{name: "not a number", rows: "ten", wantErr: true},
		{name: "too many rows", rows: "101", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pg, err := page.Parse(tt.page, tt.rows)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Should fail for page %q rows %q", tt.page, tt.rows)
				}
				return
			}

			if err != nil {
				t.Fatalf("Should parse: %s", err)
			}

			if pg.Number() != tt.number || pg.RowsPerPage() != tt.perPage || pg.Offset() != tt.offset {
				t.Fatalf("got %s offset %d", pg, pg.Offset())
			}
		})
	}
}
