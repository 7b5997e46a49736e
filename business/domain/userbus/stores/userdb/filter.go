package userdb

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jcpaschoal/smartroom/business/domain/userbus"
)

func applyFilter(filter userbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.TenantID != nil {
		data["tenant_id"] = *filter.TenantID
		wc = append(wc, "tenant_id = :tenant_id")
	}

	if filter.ID != nil {
		data["user_id"] = *filter.ID
		wc = append(wc, "user_id = :user_id")
	}

	if filter.Name != nil {
		data["name"] = fmt.Sprintf("%%%s%%", *filter.Name)
		wc = append(wc, "name ILIKE :name")
	}

	if filter.Email != nil {
		data["email"] = filter.Email.Address
		wc = append(wc, "email = :email")
	}

	if filter.Role != nil {
		data["role"] = filter.Role.String()
		wc = append(wc, "role = :role")
	}

	if filter.StartCreatedAt != nil {
		data["start_date_created"] = filter.StartCreatedAt.UTC()
		wc = append(wc, "created_at >= :start_date_created")
	}

	if filter.EndCreatedAt != nil {
		data["end_date_created"] = filter.EndCreatedAt.UTC()
		wc = append(wc, "created_at <= :end_date_created")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
