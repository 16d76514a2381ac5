package timeentry_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"leavetrack/internal/identity"
	"leavetrack/internal/shared/apperror"
	"leavetrack/internal/timeentry"
	timeentryerrors "leavetrack/internal/timeentry/errors"
)

type fakeTimeEntryRepository struct {
	createFn     func(ctx context.Context, e *timeentry.TimeEntry) error
	findLatestFn func(ctx context.Context, personID uuid.UUID) (*timeentry.TimeEntry, error)
	findAllFn    func(ctx context.Context, personID uuid.UUID, from, to *time.Time) ([]timeentry.TimeEntry, error)
}

func (f *fakeTimeEntryRepository) Create(ctx context.Context, e *timeentry.TimeEntry) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeTimeEntryRepository) FindLatestByPerson(ctx context.Context, personID uuid.UUID) (*timeentry.TimeEntry, error) {
	if f.findLatestFn != nil {
		return f.findLatestFn(ctx, personID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTimeEntryRepository) FindAll(ctx context.Context, personID uuid.UUID, from, to *time.Time) ([]timeentry.TimeEntry, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, personID, from, to)
	}
	return nil, nil
}

func TestTimeEntryService_Create(t *testing.T) {
	ctx := context.Background()
	personID := uuid.New()
	actor := identity.Actor{ID: personID.String(), Roles: []string{identity.RoleUser}}

	t.Run("success clock in defaults location to office", func(t *testing.T) {
		repo := &fakeTimeEntryRepository{}
		var created *timeentry.TimeEntry
		repo.createFn = func(ctx context.Context, e *timeentry.TimeEntry) error {
			created = e
			return nil
		}

		svc := timeentry.NewService(repo)
		resp, err := svc.Create(ctx, actor, timeentry.CreateTimeEntryRequest{
			EntryType: timeentry.TypeClockIn,
		})
		assert.NoError(t, err)
		assert.Equal(t, timeentry.DefaultLocation, resp.Location)
		assert.Equal(t, personID, created.PersonID)
	})

	t.Run("success explicit timestamp and location", func(t *testing.T) {
		repo := &fakeTimeEntryRepository{}
		svc := timeentry.NewService(repo)

		resp, err := svc.Create(ctx, actor, timeentry.CreateTimeEntryRequest{
			EntryType: timeentry.TypeClockIn,
			Timestamp: "2026-03-02T09:00:00Z",
			Location:  "home",
		})
		assert.NoError(t, err)
		assert.Equal(t, "home", resp.Location)
		assert.Equal(t, "2026-03-02T09:00:00Z", resp.Timestamp)
	})

	t.Run("negative clock in while already open", func(t *testing.T) {
		repo := &fakeTimeEntryRepository{
			findLatestFn: func(ctx context.Context, personID uuid.UUID) (*timeentry.TimeEntry, error) {
				return &timeentry.TimeEntry{EntryType: timeentry.TypeClockIn}, nil
			},
		}
		svc := timeentry.NewService(repo)

		_, err := svc.Create(ctx, actor, timeentry.CreateTimeEntryRequest{EntryType: timeentry.TypeClockIn})
		assert.ErrorIs(t, err, timeentryerrors.ErrAlreadyClockedIn)
	})

	t.Run("negative clock out without open clock in", func(t *testing.T) {
		repo := &fakeTimeEntryRepository{}
		svc := timeentry.NewService(repo)

		_, err := svc.Create(ctx, actor, timeentry.CreateTimeEntryRequest{EntryType: timeentry.TypeClockOut})
		assert.ErrorIs(t, err, timeentryerrors.ErrNotClockedIn)
	})

	t.Run("success break start within open session", func(t *testing.T) {
		repo := &fakeTimeEntryRepository{
			findLatestFn: func(ctx context.Context, personID uuid.UUID) (*timeentry.TimeEntry, error) {
				return &timeentry.TimeEntry{EntryType: timeentry.TypeClockIn}, nil
			},
		}
		svc := timeentry.NewService(repo)

		resp, err := svc.Create(ctx, actor, timeentry.CreateTimeEntryRequest{EntryType: timeentry.TypeBreakStart})
		assert.NoError(t, err)
		assert.Equal(t, timeentry.TypeBreakStart, resp.EntryType)
	})

	t.Run("negative malformed timestamp", func(t *testing.T) {
		repo := &fakeTimeEntryRepository{}
		svc := timeentry.NewService(repo)

		_, err := svc.Create(ctx, actor, timeentry.CreateTimeEntryRequest{
			EntryType: timeentry.TypeClockIn,
			Timestamp: "yesterday",
		})
		assert.ErrorIs(t, err, timeentryerrors.ErrInvalidTimestamp)
	})
}

func TestTimeEntryService_GetAll(t *testing.T) {
	ctx := context.Background()
	personID := uuid.New()
	actor := identity.Actor{ID: personID.String(), Roles: []string{identity.RoleUser}}

	t.Run("success own entries with date range", func(t *testing.T) {
		repo := &fakeTimeEntryRepository{
			findAllFn: func(ctx context.Context, pid uuid.UUID, from, to *time.Time) ([]timeentry.TimeEntry, error) {
				assert.Equal(t, personID, pid)
				assert.NotNil(t, from)
				assert.NotNil(t, to)
				// Upper bound is exclusive, one day past the requested end.
				assert.Equal(t, from.AddDate(0, 0, 2), *to)
				return []timeentry.TimeEntry{{ID: uuid.New(), PersonID: pid, EntryType: timeentry.TypeClockIn}}, nil
			},
		}
		svc := timeentry.NewService(repo)

		resp, err := svc.GetAll(ctx, actor, timeentry.ListTimeEntriesFilter{
			From: "2026-03-02",
			To:   "2026-03-03",
		})
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("negative plain user reading someone else", func(t *testing.T) {
		repo := &fakeTimeEntryRepository{}
		svc := timeentry.NewService(repo)

		_, err := svc.GetAll(ctx, actor, timeentry.ListTimeEntriesFilter{
			PersonID: uuid.New().String(),
		})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("pm may read someone else", func(t *testing.T) {
		target := uuid.New()
		repo := &fakeTimeEntryRepository{
			findAllFn: func(ctx context.Context, pid uuid.UUID, from, to *time.Time) ([]timeentry.TimeEntry, error) {
				assert.Equal(t, target, pid)
				return nil, nil
			},
		}
		svc := timeentry.NewService(repo)
		pm := identity.Actor{ID: uuid.New().String(), Roles: []string{identity.RolePM}}

		_, err := svc.GetAll(ctx, pm, timeentry.ListTimeEntriesFilter{PersonID: target.String()})
		assert.NoError(t, err)
	})
}
