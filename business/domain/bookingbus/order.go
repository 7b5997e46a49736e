package bookingbus

import "github.com/jcpaschoal/smartroom/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByDate, order.ASC)

// Set of fields that the results can be ordered by. Ordering by date also
// orders by start time within the day.
const (
	OrderByID        = "a"
	OrderByDate      = "b"
	OrderByRoomID    = "c"
	OrderByStatus    = "d"
	OrderByCreatedAt = "e"
)
