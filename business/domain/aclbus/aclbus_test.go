package aclbus_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jcpaschoal/smartroom/business/domain/aclbus"
	"github.com/jcpaschoal/smartroom/business/types/actions"
	"github.com/jcpaschoal/smartroom/business/types/resource"
	"github.com/jcpaschoal/smartroom/business/types/role"
	"github.com/jcpaschoal/smartroom/foundation/logger"
)

func Test_Authorize(t *testing.T) {
	core, err := aclbus.NewCore(logger.Discard(), aclbus.DefaultRules)
	if err != nil {
		t.Fatalf("Should be able to construct the core: %s", err)
	}

	tests := []struct {
		role  role.Role
		res   resource.Resource
		act   actions.Action
		allow bool
	}{
		{role.User, resource.Room, actions.Get, true},
		{role.User, resource.Room, actions.Create, false},
		{role.User, resource.Booking, actions.Create, true},
		{role.User, resource.Booking, actions.Delete, true},
		{role.User, resource.Booking, actions.Manage, false},
		{role.User, resource.Analytics, actions.Get, false},
		{role.User, resource.User, actions.Create, false},
		{role.Admin, resource.Room, actions.Get, true},
		{role.Admin, resource.Room, actions.Update, true},
		{role.Admin, resource.Booking, actions.Create, true},
		{role.Admin, resource.Booking, actions.Manage, true},
		{role.Admin, resource.Analytics, actions.Get, true},
		{role.Admin, resource.Room, actions.Delete, false},
	}

	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.role.String()+"/"+tt.res.String()+"/"+tt.act.String(), func(t *testing.T) {
			err := core.Authorize(ctx, tt.role, tt.res, tt.act)

			switch tt.allow {
			case true:
				if err != nil {
					t.Errorf("Should be allowed: %s", err)
				}
			default:
				if !errors.Is(err, aclbus.ErrForbidden) {
					t.Errorf("Got error %v, want ErrForbidden", err)
				}
			}
		})
	}
}

func Test_GrantRevoke(t *testing.T) {
	ctx := context.Background()

	core, err := aclbus.NewCore(logger.Discard(), aclbus.DefaultRules)
	if err != nil {
		t.Fatalf("Should be able to construct the core: %s", err)
	}

	rule := aclbus.Rule{Role: role.User, Resource: resource.Analytics, Action: actions.Get}

	if err := core.Grant(ctx, rule); err != nil {
		t.Fatalf("Should grant: %s", err)
	}

	if err := core.Authorize(ctx, role.User, resource.Analytics, actions.Get); err != nil {
		t.Errorf("Granted rule should allow: %s", err)
	}

	if err := core.Revoke(ctx, rule); err != nil {
		t.Fatalf("Should revoke: %s", err)
	}

	if err := core.Authorize(ctx, role.User, resource.Analytics, actions.Get); !errors.Is(err, aclbus.ErrForbidden) {
		t.Errorf("Revoked rule should deny, got %v", err)
	}
}
