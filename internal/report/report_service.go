package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"leavetrack/internal/identity"
	"leavetrack/internal/shared/apperror"
)

const cacheKeyPrefix = "report:person_year:"

func cacheKey(personID uuid.UUID, year int) string {
	return fmt.Sprintf("%s%s:%d", cacheKeyPrefix, personID, year)
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	PersonYear(ctx context.Context, actor identity.Actor, personID string, year int) (PersonYearReport, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		now:    time.Now,
		logger: l,
	}
}

// PersonYear builds the yearly summary for one person. Everyone may pull
// their own; pulling someone else's requires the pm or admin role. Results
// are cached briefly and concurrent misses for the same key collapse into
// one query.
func (s *service) PersonYear(ctx context.Context, actor identity.Actor, personID string, year int) (PersonYearReport, error) {
	if personID == "" {
		personID = actor.ID
	}
	if personID != actor.ID && !actor.CanViewOthers() {
		return PersonYearReport{}, apperror.ErrForbidden
	}

	personUUID, err := uuid.Parse(personID)
	if err != nil {
		return PersonYearReport{}, apperror.InvalidField("person_id")
	}
	if year == 0 {
		year = s.now().UTC().Year()
	}

	key := cacheKey(personUUID, year)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp PersonYearReport
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		resp, err := s.repo.PersonYear(ctx, personUUID, year)
		if err != nil {
			s.logger.Error("person year report query failed",
				zap.String("person_id", personID),
				zap.Int("year", year),
				zap.Error(err),
			)
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, key, jsonData, 5*time.Minute)
			}
		}
		return resp, nil
	})
	if err != nil {
		return PersonYearReport{}, err
	}

	return *v.(*PersonYearReport), nil
}
