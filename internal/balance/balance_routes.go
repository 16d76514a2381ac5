package balance

import (
	"github.com/gin-gonic/gin"

	"leavetrack/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.Authorizer,
) {
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetOwn)
		balances.GET("/:personId", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetByPerson)
		balances.PUT("/:personId", middleware.RBACAuthorize(rbacService, "balance", "write"), handler.Set)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.GET("/balances", middleware.RBACAuthorize(rbacService, "balance", "read_all"), handler.GetAll)
	}
}
