package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leavetrack/internal/identity"
	"leavetrack/internal/shared/response"
)

// Authorizer is a local interface so the middleware does not depend on the
// rbac package directly; anything with Authorize fits.
type Authorizer interface {
	Authorize(roles []string, resource, action string) (bool, error)
}

func RBACAuthorize(service Authorizer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := identity.ActorFrom(c)
		if actor.ID == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Authorize(actor.Roles, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
