// Package aclbus decides which roles may perform which actions on which
// resources. Decisions are made by a casbin RBAC enforcer held in memory.
package aclbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/jcpaschoal/smartroom/business/types/actions"
	"github.com/jcpaschoal/smartroom/business/types/resource"
	"github.com/jcpaschoal/smartroom/business/types/role"
	"github.com/jcpaschoal/smartroom/foundation/logger"
	"github.com/jcpaschoal/smartroom/foundation/otel"
)

// ErrForbidden is returned when the role is not granted the action.
var ErrForbidden = errors.New("action not permitted")

const casbinModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Rule grants a role an action on a resource.
type Rule struct {
	Role     role.Role
	Resource resource.Resource
	Action   actions.Action
}

// DefaultRules is the policy the service starts with. ADMIN inherits
// everything granted to USER. Cancelling a booking is the Delete action.
var DefaultRules = []Rule{
	{role.User, resource.Room, actions.Get},
	{role.User, resource.Booking, actions.Get},
	{role.User, resource.Booking, actions.Create},
	{role.User, resource.Booking, actions.Delete},

	{role.Admin, resource.Room, actions.Create},
	{role.Admin, resource.Room, actions.Update},
	{role.Admin, resource.Booking, actions.Manage},
	{role.Admin, resource.User, actions.Get},
	{role.Admin, resource.User, actions.Create},
	{role.Admin, resource.User, actions.Update},
	{role.Admin, resource.Analytics, actions.Get},
}

// Core manages the set of APIs for access control.
type Core struct {
	log      *logger.Logger
	enforcer *casbin.Enforcer
}

// NewCore constructs the access control api loaded with the rules.
func NewCore(log *logger.Logger, rules []Rule) (*Core, error) {
	m, err := model.NewModelFromString(casbinModel)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	if _, err := e.AddGroupingPolicy(role.Admin.String(), role.User.String()); err != nil {
		return nil, fmt.Errorf("add role inheritance: %w", err)
	}

	for _, r := range rules {
		if _, err := e.AddPolicy(r.Role.String(), r.Resource.String(), r.Action.String()); err != nil {
			return nil, fmt.Errorf("add policy %s/%s/%s: %w", r.Role, r.Resource, r.Action, err)
		}
	}

	return &Core{
		log:      log,
		enforcer: e,
	}, nil
}

// Authorize returns ErrForbidden unless the role may perform the action on
// the resource.
func (c *Core) Authorize(ctx context.Context, r role.Role, res resource.Resource, act actions.Action) error {
	_, span := otel.AddSpan(ctx, "business.aclbus.authorize")
	defer span.End()

	ok, err := c.enforcer.Enforce(r.String(), res.String(), act.String())
	if err != nil {
		return fmt.Errorf("enforce: %w", err)
	}

	if !ok {
		return fmt.Errorf("role[%s] resource[%s] action[%s]: %w", r, res, act, ErrForbidden)
	}

	return nil
}

// Grant adds a rule at runtime.
func (c *Core) Grant(ctx context.Context, rule Rule) error {
	if _, err := c.enforcer.AddPolicy(rule.Role.String(), rule.Resource.String(), rule.Action.String()); err != nil {
		return fmt.Errorf("add policy: %w", err)
	}

	c.log.Info(ctx, "aclbus: rule granted", "role", rule.Role, "resource", rule.Resource, "action", rule.Action)

	return nil
}

// Revoke removes a rule at runtime.
func (c *Core) Revoke(ctx context.Context, rule Rule) error {
	if _, err := c.enforcer.RemovePolicy(rule.Role.String(), rule.Resource.String(), rule.Action.String()); err != nil {
		return fmt.Errorf("remove policy: %w", err)
	}

	c.log.Info(ctx, "aclbus: rule revoked", "role", rule.Role, "resource", rule.Resource, "action", rule.Action)

	return nil
}
