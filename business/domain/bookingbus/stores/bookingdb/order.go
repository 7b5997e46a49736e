package bookingdb

import (
	"fmt"

	"github.com/jcpaschoal/smartroom/business/domain/bookingbus"
	"github.com/jcpaschoal/smartroom/business/sdk/order"
)

var orderByFields = map[string][]string{
	bookingbus.OrderByID:        {"booking_id"},
	bookingbus.OrderByDate:      {"booking_date", "start_min"},
	bookingbus.OrderByRoomID:    {"room_id"},
	bookingbus.OrderByStatus:    {"status"},
	bookingbus.OrderByCreatedAt: {"created_at"},
}

func orderByClause(orderBy order.By) (string, error) {
	cols, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	clause := " ORDER BY "
	for i, col := range cols {
		if i > 0 {
			clause += ", "
		}
		clause += col + " " + orderBy.Direction
	}

	return clause, nil
}
