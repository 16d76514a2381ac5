package timeentry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"leavetrack/internal/identity"
	"leavetrack/internal/shared/apperror"
	timeentryerrors "leavetrack/internal/timeentry/errors"
)

//go:generate mockgen -source=timeentry_service.go -destination=mock/timeentry_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor identity.Actor, req CreateTimeEntryRequest) (TimeEntryResponse, error)
	GetAll(ctx context.Context, actor identity.Actor, filter ListTimeEntriesFilter) ([]TimeEntryResponse, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timeentry.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeentry.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

// Create records a work-time event for the acting person. A clock-in must
// not follow an open clock-in, and every other event type needs an open
// clock-in to attach to.
func (s *service) Create(ctx context.Context, actor identity.Actor, req CreateTimeEntryRequest) (TimeEntryResponse, error) {
	personID, err := uuid.Parse(actor.ID)
	if err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidPersonID
	}

	ts := s.now().UTC()
	if req.Timestamp != "" {
		ts, err = time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			return TimeEntryResponse{}, timeentryerrors.ErrInvalidTimestamp
		}
		ts = ts.UTC()
	}

	latest, err := s.repo.FindLatestByPerson(ctx, personID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return TimeEntryResponse{}, err
	}
	open := err == nil && latest.EntryType != TypeClockOut

	if req.EntryType == TypeClockIn && open {
		return TimeEntryResponse{}, timeentryerrors.ErrAlreadyClockedIn
	}
	if req.EntryType != TypeClockIn && !open {
		return TimeEntryResponse{}, timeentryerrors.ErrNotClockedIn
	}

	location := req.Location
	if location == "" {
		location = DefaultLocation
	}

	row := &TimeEntry{
		ID:        uuid.New(),
		PersonID:  personID,
		EntryType: req.EntryType,
		Timestamp: ts,
		Location:  location,
		Notes:     req.Notes,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("create time entry persist failed",
			zap.String("person_id", actor.ID),
			zap.Error(err),
		)
		return TimeEntryResponse{}, err
	}

	return mapToResponse(*row), nil
}

// GetAll lists time entries for a person, newest first. Viewing someone
// else's entries requires the pm or admin role.
func (s *service) GetAll(ctx context.Context, actor identity.Actor, filter ListTimeEntriesFilter) ([]TimeEntryResponse, error) {
	target := filter.PersonID
	if target == "" {
		target = actor.ID
	}
	if target != actor.ID && !actor.CanViewOthers() {
		return nil, apperror.ErrForbidden
	}

	personID, err := uuid.Parse(target)
	if err != nil {
		return nil, timeentryerrors.ErrInvalidPersonID
	}

	var from, to *time.Time
	if filter.From != "" {
		t, err := time.Parse("2006-01-02", filter.From)
		if err != nil {
			return nil, timeentryerrors.ErrInvalidTimestamp
		}
		from = &t
	}
	if filter.To != "" {
		t, err := time.Parse("2006-01-02", filter.To)
		if err != nil {
			return nil, timeentryerrors.ErrInvalidTimestamp
		}
		end := t.AddDate(0, 0, 1)
		to = &end
	}

	rows, err := s.repo.FindAll(ctx, personID, from, to)
	if err != nil {
		s.logger.Error("list time entries failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}
