package report_test

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"leavetrack/internal/identity"
	"leavetrack/internal/report"
	"leavetrack/internal/shared/apperror"
)

type fakeReportRepository struct {
	calls        atomic.Int64
	personYearFn func(ctx context.Context, personID uuid.UUID, year int) (*report.PersonYearReport, error)
}

func (f *fakeReportRepository) PersonYear(ctx context.Context, personID uuid.UUID, year int) (*report.PersonYearReport, error) {
	f.calls.Add(1)
	if f.personYearFn != nil {
		return f.personYearFn(ctx, personID, year)
	}
	return &report.PersonYearReport{PersonID: personID.String(), Year: year}, nil
}

func TestReportService_PersonYear(t *testing.T) {
	ctx := context.Background()
	personID := uuid.New()
	owner := identity.Actor{ID: personID.String(), Roles: []string{identity.RoleUser}}

	t.Run("success own report without cache", func(t *testing.T) {
		repo := &fakeReportRepository{
			personYearFn: func(ctx context.Context, pid uuid.UUID, year int) (*report.PersonYearReport, error) {
				assert.Equal(t, personID, pid)
				assert.Equal(t, 2026, year)
				return &report.PersonYearReport{
					PersonID:      pid.String(),
					Year:          year,
					TotalDays:     25,
					UsedDays:      8,
					RemainingDays: 17,
					RequestCount:  3,
				}, nil
			},
		}
		svc := report.NewService(repo, nil)

		resp, err := svc.PersonYear(ctx, owner, "", 2026)
		assert.NoError(t, err)
		assert.Equal(t, 17, resp.RemainingDays)
		assert.Equal(t, 3, resp.RequestCount)
	})

	t.Run("negative plain user reading someone else", func(t *testing.T) {
		svc := report.NewService(&fakeReportRepository{}, nil)

		_, err := svc.PersonYear(ctx, owner, uuid.New().String(), 2026)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("pm may read someone else", func(t *testing.T) {
		svc := report.NewService(&fakeReportRepository{}, nil)
		pm := identity.Actor{ID: uuid.New().String(), Roles: []string{identity.RolePM}}

		resp, err := svc.PersonYear(ctx, pm, personID.String(), 2025)
		assert.NoError(t, err)
		assert.Equal(t, personID.String(), resp.PersonID)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cached := report.PersonYearReport{PersonID: personID.String(), Year: 2026, RemainingDays: 12}
		payload, err := json.Marshal(&cached)
		assert.NoError(t, err)
		mock.Regexp().ExpectGet("report:person_year:.+").SetVal(string(payload))

		repo := &fakeReportRepository{}
		svc := report.NewService(repo, rdb)

		resp, err := svc.PersonYear(ctx, owner, "", 2026)
		assert.NoError(t, err)
		assert.Equal(t, 12, resp.RemainingDays)
		assert.Equal(t, int64(0), repo.calls.Load())
	})

	t.Run("cache miss queries and stores", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.Regexp().ExpectGet("report:person_year:.+").RedisNil()

		fresh := &report.PersonYearReport{PersonID: personID.String(), Year: 2026, RemainingDays: 20}
		repo := &fakeReportRepository{
			personYearFn: func(ctx context.Context, pid uuid.UUID, year int) (*report.PersonYearReport, error) {
				return fresh, nil
			},
		}
		payload, err := json.Marshal(fresh)
		assert.NoError(t, err)
		mock.Regexp().ExpectSet("report:person_year:.+", payload, 5*time.Minute).SetVal("OK")

		svc := report.NewService(repo, rdb)
		resp, err := svc.PersonYear(ctx, owner, "", 2026)
		assert.NoError(t, err)
		assert.Equal(t, 20, resp.RemainingDays)
		assert.Equal(t, int64(1), repo.calls.Load())
	})

	t.Run("negative malformed person id", func(t *testing.T) {
		svc := report.NewService(&fakeReportRepository{}, nil)
		pm := identity.Actor{ID: uuid.New().String(), Roles: []string{identity.RolePM}}

		_, err := svc.PersonYear(ctx, pm, "not-a-uuid", 2026)
		assert.Error(t, err)
	})
}
