package rbac

import (
	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Authorize(roles []string, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{enforcer: enforcer, logger: l}
}

// Authorize grants access when any of the actor's roles permits the
// resource action, role hierarchy included.
func (s *service) Authorize(roles []string, resource, action string) (bool, error) {
	for _, role := range roles {
		allowed, err := s.enforcer.Enforce(role, resource, action)
		if err != nil {
			s.logger.Error("enforce failed",
				zap.String("role", role),
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			return false, err
		}
		if allowed {
			return true, nil
		}
	}

	s.logger.Debug("authorization denied",
		zap.Strings("roles", roles),
		zap.String("resource", resource),
		zap.String("action", action),
	)
	return false, nil
}
