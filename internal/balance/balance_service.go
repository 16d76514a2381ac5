package balance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"leavetrack/internal/audit"
	balanceerrors "leavetrack/internal/balance/errors"
	"leavetrack/internal/events"
	"leavetrack/internal/identity"
	"leavetrack/internal/shared/apperror"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	GetBalance(ctx context.Context, actor identity.Actor, personID string) (BalanceResponse, error)
	GetAllBalances(ctx context.Context, actor identity.Actor) ([]BalanceResponse, error)
	SetBalance(ctx context.Context, actor identity.Actor, personID string, req SetBalanceRequest) (BalanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	ledger *Ledger
	audit  audit.Recorder
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, ledger *Ledger, auditRecorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{db: db, repo: repo, ledger: ledger, audit: auditRecorder, logger: l}
}

// GetBalance returns the person's balance, synthesizing the default
// allotment on first access. Reading someone else's balance requires the
// pm or admin role.
func (s *service) GetBalance(ctx context.Context, actor identity.Actor, personID string) (BalanceResponse, error) {
	if personID == "" {
		personID = actor.ID
	}
	if personID != actor.ID && !actor.CanViewOthers() {
		return BalanceResponse{}, apperror.ErrForbidden
	}

	personUUID, err := uuid.Parse(personID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidPersonID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("get balance begin tx failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	b, err := s.ledger.WithTx(tx).BalanceForUpdate(ctx, personUUID)
	if err != nil {
		s.logger.Error("get balance read failed",
			zap.String("person_id", personID),
			zap.Error(err),
		)
		return BalanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("get balance commit failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	return mapToResponse(*b), nil
}

func (s *service) GetAllBalances(ctx context.Context, actor identity.Actor) ([]BalanceResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	balances, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(balances), nil
}

// SetBalance is the administrative override. Omitted fields stay as they
// are; provided values are applied without bounds checks so an admin can
// correct mistakes, negative remaining included.
func (s *service) SetBalance(ctx context.Context, actor identity.Actor, personID string, req SetBalanceRequest) (BalanceResponse, error) {
	if !actor.IsAdmin() {
		return BalanceResponse{}, apperror.ErrForbidden
	}

	personUUID, err := uuid.Parse(personID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidPersonID
	}
	if req.TotalDays == nil && req.UsedDays == nil && req.PendingDays == nil && req.CarriedOverDays == nil {
		return BalanceResponse{}, balanceerrors.ErrNoFieldsToSet
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set balance begin tx failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	b, err := s.ledger.WithTx(tx).BalanceForUpdate(ctx, personUUID)
	if err != nil {
		return BalanceResponse{}, err
	}

	if req.TotalDays != nil {
		b.TotalDays = *req.TotalDays
	}
	if req.UsedDays != nil {
		b.UsedDays = *req.UsedDays
	}
	if req.PendingDays != nil {
		b.PendingDays = *req.PendingDays
	}
	if req.CarriedOverDays != nil {
		b.CarriedOverDays = *req.CarriedOverDays
	}

	if err := qtx.Save(ctx, b); err != nil {
		s.logger.Error("set balance persist failed",
			zap.String("person_id", personID),
			zap.Error(err),
		)
		return BalanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("set balance commit failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	s.logger.Info("set balance success",
		zap.String("person_id", personID),
		zap.String("actor_id", actor.ID),
		zap.Int("remaining_days", Remaining(*b)),
	)
	s.audit.Record(ctx, actor.ID, events.ActionUpdateBalance,
		fmt.Sprintf("Updated balance for person %s", personID))

	return mapToResponse(*b), nil
}
