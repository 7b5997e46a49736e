package status_test

import (
	"testing"

	"github.com/jcpaschoal/smartroom/business/types/status"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want status.Status
	}{
		{"CONFIRMED", status.Confirmed},
		{"confirmed", status.Confirmed},
		{"Cancelled", status.Cancelled},
	}

	for _, tt := range tests {
		got, err := status.Parse(tt.in)
		if err != nil {
			t.Fatalf("Should parse %q: %s", tt.in, err)
		}

		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := status.Parse("pending"); err == nil {
		t.Error("Should not parse an unknown status")
	}
}
