package roomdb

import (
	"fmt"

	"github.com/jcpaschoal/smartroom/business/domain/roombus"
	"github.com/jcpaschoal/smartroom/business/sdk/order"
)

var orderByFields = map[string]string{
	roombus.OrderByID:       "room_id",
	roombus.OrderByName:     "name",
	roombus.OrderByCapacity: "capacity",
	roombus.OrderByFloor:    "floor",
	roombus.OrderByActive:   "active",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
