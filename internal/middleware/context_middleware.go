package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"leavetrack/internal/identity"
	"leavetrack/internal/shared/contextutil"
)

// ContextLogger attaches a request id and a request-scoped logger to both
// the gin context and the standard context so services and repositories can
// log with tracing metadata without knowing about gin.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header("X-Request-ID", rid)
		c.Set("request_id", rid)

		aid := c.GetString(identity.ContextActorID)

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("actor_id", aid),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithActorID(ctx, aid)
		ctx = contextutil.WithLogger(ctx, reqLogger)

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
