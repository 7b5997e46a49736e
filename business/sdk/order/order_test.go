package order_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jcpaschoal/smartroom/business/sdk/order"
)

func Test_Parse(t *testing.T) {
	fields := map[string]string{
		"date": "booking_date",
		"room": "room_id",
	}
	def := order.NewBy("booking_date", order.ASC)

	tests := []struct {
		in      string
		want    order.By
		wantErr bool
	}{
		{in: "", want: def},
		{in: "room", want: order.NewBy("room_id", order.ASC)},
		{in: "date, desc", want: order.NewBy("booking_date", order.DESC)},
		{in: "title", wantErr: true},
		{in: "date,sideways", wantErr: true},
		{in: "date,asc,extra", wantErr: true},
	}

	for _, tt := range tests {
		got, err := order.Parse(fields, tt.in, def)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected an error", tt.in)
			}
			continue
		}

		if err != nil {
			t.Errorf("%q: unexpected error: %s", tt.in, err)
			continue
		}

		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%q: mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}
