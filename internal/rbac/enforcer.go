package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"leavetrack/internal/identity"
)

const modelText = `
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

// policies maps each role to the resource actions it grants. Roles are
// fixed and provided by the external identity provider, so the policy set
// is static and loaded once at startup.
var policies = [][]string{
	{identity.RoleUser, "request", "create"},
	{identity.RoleUser, "request", "read"},
	{identity.RoleUser, "balance", "read"},
	{identity.RoleUser, "timeentry", "create"},
	{identity.RoleUser, "timeentry", "read"},
	{identity.RoleUser, "report", "read"},
	{identity.RolePM, "request", "decide"},
	{identity.RoleAdmin, "balance", "write"},
	{identity.RoleAdmin, "balance", "read_all"},
}

// grouping encodes the role hierarchy: admin inherits pm, pm inherits user.
var grouping = [][]string{
	{identity.RolePM, identity.RoleUser},
	{identity.RoleAdmin, identity.RolePM},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range grouping {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return enforcer, nil
}
