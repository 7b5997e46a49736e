package bookingapp

import (
	"github.com/jcpaschoal/smartroom/business/domain/bookingbus"
)

var orderByFields = map[string]string{
	"booking_id":   bookingbus.OrderByID,
	"booking_date": bookingbus.OrderByDate,
	"room_id":      bookingbus.OrderByRoomID,
	"status":       bookingbus.OrderByStatus,
	"date_created": bookingbus.OrderByCreatedAt,
}
