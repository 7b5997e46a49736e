package roomdb

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jcpaschoal/smartroom/business/domain/roombus"
)

func applyFilter(filter roombus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.TenantID != nil {
		data["tenant_id"] = *filter.TenantID
		wc = append(wc, "tenant_id = :tenant_id")
	}

	if filter.ID != nil {
		data["room_id"] = *filter.ID
		wc = append(wc, "room_id = :room_id")
	}

	if filter.Name != nil {
		data["name"] = fmt.Sprintf("%%%s%%", *filter.Name)
		wc = append(wc, "name ILIKE :name")
	}

	if filter.MinCapacity != nil {
		data["min_capacity"] = *filter.MinCapacity
		wc = append(wc, "capacity >= :min_capacity")
	}

	if filter.Active != nil {
		data["active"] = *filter.Active
		wc = append(wc, "active = :active")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
