package request

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"leavetrack/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.Authorizer,
	rdb *redis.Client,
) {
	requests := r.Group("/requests")
	requests.Use(middleware.AuthMiddleware())
	requests.Use(middleware.RateLimitByActor(rate.Limit(5), 10))
	{
		requests.GET("", middleware.RBACAuthorize(rbacService, "request", "read"), handler.GetAll)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "request", "read"), handler.GetById)
		requests.POST("",
			middleware.RBACAuthorize(rbacService, "request", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		requests.POST("/:id/decide", middleware.RBACAuthorize(rbacService, "request", "decide"), handler.Decide)
	}
}
