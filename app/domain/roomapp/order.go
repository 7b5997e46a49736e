package roomapp

import (
	"github.com/jcpaschoal/smartroom/business/domain/roombus"
)

var orderByFields = map[string]string{
	"room_id":  roombus.OrderByID,
	"name":     roombus.OrderByName,
	"capacity": roombus.OrderByCapacity,
	"floor":    roombus.OrderByFloor,
	"active":   roombus.OrderByActive,
}
