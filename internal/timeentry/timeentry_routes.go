package timeentry

import (
	"github.com/gin-gonic/gin"

	"leavetrack/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.Authorizer,
) {
	entries := r.Group("/time-entries")
	entries.Use(middleware.AuthMiddleware())
	{
		entries.GET("", middleware.RBACAuthorize(rbacService, "timeentry", "read"), handler.GetAll)
		entries.POST("", middleware.RBACAuthorize(rbacService, "timeentry", "create"), handler.Create)
	}
}
