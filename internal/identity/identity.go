package identity

import "github.com/gin-gonic/gin"

// Role names as issued by the external identity provider. Every
// authenticated caller carries at least RoleUser.
const (
	RoleUser  = "user"
	RolePM    = "pm"
	RoleAdmin = "admin"
)

const (
	ContextActorID = "actor_id"
	ContextRoles   = "actor_roles"
)

// Actor is the authenticated caller. Services take it as an explicit
// argument; nothing below the HTTP layer reads ambient session state.
type Actor struct {
	ID    string
	Roles []string
}

func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (a Actor) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}

// CanDecide reports whether the actor may approve or reject requests.
func (a Actor) CanDecide() bool {
	return a.HasRole(RolePM) || a.HasRole(RoleAdmin)
}

// CanViewOthers reports whether the actor may read other people's
// requests, balances, and time entries.
func (a Actor) CanViewOthers() bool {
	return a.HasRole(RolePM) || a.HasRole(RoleAdmin)
}

// ActorFrom rebuilds the Actor placed in the gin context by the auth
// middleware. Missing keys yield a zero Actor, which fails every check.
func ActorFrom(c *gin.Context) Actor {
	actor := Actor{ID: c.GetString(ContextActorID)}
	if v, ok := c.Get(ContextRoles); ok {
		if roles, ok := v.([]string); ok {
			actor.Roles = roles
		}
	}
	return actor
}
