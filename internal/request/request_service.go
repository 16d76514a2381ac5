package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"leavetrack/internal/audit"
	"leavetrack/internal/balance"
	"leavetrack/internal/events"
	"leavetrack/internal/identity"
	requesterrors "leavetrack/internal/request/errors"
	"leavetrack/internal/shared/apperror"
	"leavetrack/internal/shared/counter"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=request_service.go -destination=mock/request_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor identity.Actor, req CreateRequest) (RequestResponse, error)
	Decide(ctx context.Context, actor identity.Actor, requestID int64, req DecideRequest) (RequestResponse, error)
	GetByID(ctx context.Context, actor identity.Actor, requestID int64) (RequestResponse, error)
	GetAll(ctx context.Context, actor identity.Actor, filter ListRequestsFilter) ([]RequestResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	ledger  *balance.Ledger
	counter counter.Repository
	audit   audit.Recorder
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	ledger *balance.Ledger,
	counterRepo counter.Repository,
	auditRecorder audit.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		ledger:  ledger,
		counter: counterRepo,
		audit:   auditRecorder,
		now:     time.Now,
		logger:  l,
	}
}

// Create validates and persists a leave request for the acting person.
// Vacation requests start pending and reserve their business days against
// the balance. Sick leave is approved on the spot with the requester in
// the manager slot and debits used days directly, even past zero. Either
// way the person must already have a balance row. Request row and ledger
// movement commit in the same transaction.
func (s *service) Create(ctx context.Context, actor identity.Actor, req CreateRequest) (RequestResponse, error) {
	personID, err := uuid.Parse(actor.ID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidActorID
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidDateFormat
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidDateFormat
	}

	now := s.now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ltx := s.ledger.WithTx(tx)

	// Lock the balance row first so the remaining days the validator sees
	// cannot move before the ledger entry lands. A person without a stored
	// balance cannot file requests.
	bal, err := ltx.RequiredBalance(ctx, personID)
	if err != nil {
		return RequestResponse{}, err
	}

	var requestedDays int
	r := Request{
		PersonID:  personID,
		Type:      req.Type,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
	}

	switch req.Type {
	case TypeVacation:
		requestedDays, err = ValidateVacation(now, start, end, balance.Remaining(*bal))
		if err != nil {
			return RequestResponse{}, err
		}
		r.Status = StatusPending

	case TypeSickLeave:
		requestedDays, err = ValidateSickLeave(now, start, end)
		if err != nil {
			return RequestResponse{}, err
		}
		r.Status = StatusApproved
		r.ManagerDecidedBy = &personID
		decidedAt := now
		r.ManagerDecidedAt = &decidedAt

	default:
		return RequestResponse{}, requesterrors.ErrInvalidRequestType
	}

	r.RequestedDays = requestedDays

	id, err := s.counter.GetNextValue(ctx, counter.TypeLeaveRequest)
	if err != nil {
		s.logger.Error("create request id allocation failed", zap.Error(err))
		return RequestResponse{}, err
	}
	r.ID = id

	if err := qtx.Create(ctx, &r); err != nil {
		s.logger.Error("create request persist failed",
			zap.String("person_id", actor.ID),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}

	if req.Type == TypeVacation {
		err = ltx.Reserve(ctx, personID, requestedDays)
	} else {
		err = ltx.CreditUsed(ctx, personID, requestedDays)
	}
	if err != nil {
		s.logger.Error("create request ledger update failed",
			zap.String("person_id", actor.ID),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create request commit failed", zap.Error(err))
		return RequestResponse{}, err
	}

	s.logger.Info("create request success",
		zap.Int64("request_id", r.ID),
		zap.String("person_id", actor.ID),
		zap.String("type", r.Type),
		zap.Int("requested_days", requestedDays),
	)
	s.audit.Record(ctx, actor.ID, events.ActionCreateRequest,
		fmt.Sprintf("Created %s request #%d for %d days", r.Type, r.ID, requestedDays))

	r.CreatedAt = now
	r.UpdatedAt = now
	return mapToResponse(r), nil
}

// Decide resolves a pending request. Only pm or admin may decide. The
// status flip is a compare-and-set against pending, so concurrent
// decisions resolve to exactly one winner; everyone else gets
// ErrAlreadyProcessed. The ledger always moves by the frozen
// RequestedDays stored at creation.
func (s *service) Decide(ctx context.Context, actor identity.Actor, requestID int64, req DecideRequest) (RequestResponse, error) {
	if !actor.CanDecide() {
		return RequestResponse{}, apperror.ErrForbidden
	}
	actorUUID, err := uuid.Parse(actor.ID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidActorID
	}

	now := s.now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ltx := s.ledger.WithTx(tx)

	r, err := qtx.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		s.logger.Error("decide request read failed",
			zap.Int64("request_id", requestID),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}
	if r.Decided() {
		return RequestResponse{}, requesterrors.ErrAlreadyProcessed
	}

	action := events.ActionApproveRequest
	if *req.Approved {
		r.Status = StatusApproved
		if actor.IsAdmin() {
			r.AdminDecidedBy = &actorUUID
			r.AdminDecidedAt = &now
		} else {
			r.ManagerDecidedBy = &actorUUID
			r.ManagerDecidedAt = &now
		}
		r.RejectedBy = nil
		r.RejectedAt = nil
		r.RejectionReason = nil
	} else {
		action = events.ActionRejectRequest
		r.Status = StatusRejected
		r.ManagerDecidedBy = nil
		r.ManagerDecidedAt = nil
		r.AdminDecidedBy = nil
		r.AdminDecidedAt = nil
		r.RejectedBy = &actorUUID
		r.RejectedAt = &now
		if req.Reason != "" {
			reason := req.Reason
			r.RejectionReason = &reason
		}
	}

	ok, err := qtx.UpdateDecision(ctx, r, StatusPending)
	if err != nil {
		s.logger.Error("decide request persist failed",
			zap.Int64("request_id", requestID),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}
	if !ok {
		return RequestResponse{}, requesterrors.ErrAlreadyProcessed
	}

	if *req.Approved {
		err = ltx.ApproveTransition(ctx, r.PersonID, r.RequestedDays)
	} else {
		err = ltx.Release(ctx, r.PersonID, r.RequestedDays)
	}
	if err != nil {
		s.logger.Error("decide request ledger update failed",
			zap.Int64("request_id", requestID),
			zap.String("person_id", r.PersonID.String()),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide request commit failed", zap.Error(err))
		return RequestResponse{}, err
	}

	s.logger.Info("decide request success",
		zap.Int64("request_id", requestID),
		zap.String("status", r.Status),
		zap.String("actor_id", actor.ID),
	)
	s.audit.Record(ctx, actor.ID, action,
		fmt.Sprintf("%s request #%d for person %s", verb(r.Status), r.ID, r.PersonID))

	r.UpdatedAt = now
	return mapToResponse(*r), nil
}

func (s *service) GetByID(ctx context.Context, actor identity.Actor, requestID int64) (RequestResponse, error) {
	r, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}
	if r.PersonID.String() != actor.ID && !actor.CanViewOthers() {
		return RequestResponse{}, apperror.ErrForbidden
	}
	return mapToResponse(*r), nil
}

// GetAll lists requests. A plain user only ever sees their own; pm and
// admin may filter by person or see everything.
func (s *service) GetAll(ctx context.Context, actor identity.Actor, filter ListRequestsFilter) ([]RequestResponse, error) {
	var personID *uuid.UUID

	if actor.CanViewOthers() {
		if filter.PersonID != "" {
			parsed, err := uuid.Parse(filter.PersonID)
			if err != nil {
				return nil, requesterrors.ErrInvalidActorID
			}
			personID = &parsed
		}
	} else {
		own, err := uuid.Parse(actor.ID)
		if err != nil {
			return nil, requesterrors.ErrInvalidActorID
		}
		personID = &own
	}

	requests, err := s.repo.FindAll(ctx, personID, filter.Status)
	if err != nil {
		s.logger.Error("list requests failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func parseDate(v string) (time.Time, error) {
	return time.Parse(dateLayout, v)
}

func verb(status string) string {
	if status == StatusApproved {
		return "Approved"
	}
	return "Rejected"
}
