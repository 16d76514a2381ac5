package balance

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	balanceerrors "leavetrack/internal/balance/errors"
)

// Ledger owns the balance arithmetic. Every operation is a read-modify-write
// against a single person's row, locked FOR UPDATE inside the caller's
// transaction, so two operations for the same person never interleave.
// Counters never go negative here; only the administrative override may do
// that.
type Ledger struct {
	repo   Repository
	logger *zap.Logger
}

func NewLedger(repo Repository, logger ...*zap.Logger) *Ledger {
	l := zap.L().Named("balance.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.ledger")
	}
	return &Ledger{repo: repo, logger: l}
}

func (l *Ledger) WithTx(tx *sql.Tx) *Ledger {
	return &Ledger{repo: l.repo.WithTx(tx), logger: l.logger}
}

// BalanceForUpdate returns the person's locked balance row, creating the
// default allotment on first access. A concurrent first access loses the
// insert race on the primary key and re-reads the winner's row.
func (l *Ledger) BalanceForUpdate(ctx context.Context, personID uuid.UUID) (*Balance, error) {
	b, err := l.repo.FindForUpdate(ctx, personID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	created := NewDefault(personID)
	if err := l.repo.Create(ctx, created); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return l.repo.FindForUpdate(ctx, personID)
		}
		return nil, err
	}

	l.logger.Info("balance created with default allotment",
		zap.String("person_id", personID.String()),
		zap.Int("total_days", created.TotalDays),
	)
	return created, nil
}

// RequiredBalance returns the person's locked balance row and fails when
// none exists. Creation flows go through here: only the balance read path
// synthesizes the default allotment, a leave request needs an established
// balance.
func (l *Ledger) RequiredBalance(ctx context.Context, personID uuid.UUID) (*Balance, error) {
	b, err := l.repo.FindForUpdate(ctx, personID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, balanceerrors.ErrBalanceNotFound
		}
		return nil, err
	}
	return b, nil
}

// Reserve adds days to pending. Called when a vacation request is created.
func (l *Ledger) Reserve(ctx context.Context, personID uuid.UUID, days int) error {
	b, err := l.BalanceForUpdate(ctx, personID)
	if err != nil {
		return err
	}
	b.PendingDays += days
	return l.repo.Save(ctx, b)
}

// CreditUsed adds days to used. Called on sick-leave creation and as part
// of vacation approval.
func (l *Ledger) CreditUsed(ctx context.Context, personID uuid.UUID, days int) error {
	b, err := l.BalanceForUpdate(ctx, personID)
	if err != nil {
		return err
	}
	b.UsedDays += days
	return l.repo.Save(ctx, b)
}

// Release removes days from pending. Called on vacation rejection.
func (l *Ledger) Release(ctx context.Context, personID uuid.UUID, days int) error {
	b, err := l.BalanceForUpdate(ctx, personID)
	if err != nil {
		return err
	}
	b.PendingDays = floorZero(b.PendingDays - days)
	return l.repo.Save(ctx, b)
}

// ApproveTransition moves days from pending to used in one write, so an
// approval is never observable as neither pending nor used.
func (l *Ledger) ApproveTransition(ctx context.Context, personID uuid.UUID, days int) error {
	b, err := l.BalanceForUpdate(ctx, personID)
	if err != nil {
		return err
	}
	b.PendingDays = floorZero(b.PendingDays - days)
	b.UsedDays += days
	return l.repo.Save(ctx, b)
}

func floorZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
