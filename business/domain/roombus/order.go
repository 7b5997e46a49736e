package roombus

import "github.com/jcpaschoal/smartroom/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByName, order.ASC)

// Set of fields that the results can be ordered by.
const (
	OrderByID       = "a"
	OrderByName     = "b"
	OrderByCapacity = "c"
	OrderByFloor    = "d"
	OrderByActive   = "e"
)
