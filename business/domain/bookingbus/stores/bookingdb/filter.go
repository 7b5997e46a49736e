package bookingdb

import (
	"bytes"
	"strings"

	"github.com/jcpaschoal/smartroom/business/domain/bookingbus"
)

func applyFilter(filter bookingbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.TenantID != nil {
		data["tenant_id"] = *filter.TenantID
		wc = append(wc, "tenant_id = :tenant_id")
	}

	if filter.ID != nil {
		data["booking_id"] = *filter.ID
		wc = append(wc, "booking_id = :booking_id")
	}

	if filter.RoomID != nil {
		data["room_id"] = *filter.RoomID
		wc = append(wc, "room_id = :room_id")
	}

	if filter.UserID != nil {
		data["user_id"] = *filter.UserID
		wc = append(wc, "user_id = :user_id")
	}

	if filter.Status != nil {
		data["status"] = strings.ToLower(filter.Status.String())
		wc = append(wc, "status = :status")
	}

	if filter.StartDate != nil {
		data["start_date"] = filter.StartDate.Time()
		wc = append(wc, "booking_date >= :start_date")
	}

	if filter.EndDate != nil {
		data["end_date"] = filter.EndDate.Time()
		wc = append(wc, "booking_date <= :end_date")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
