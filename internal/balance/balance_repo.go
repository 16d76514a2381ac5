package balance

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindForUpdate(ctx context.Context, personID uuid.UUID) (*Balance, error)
	FindAll(ctx context.Context) ([]Balance, error)
	Create(ctx context.Context, b *Balance) error
	Save(ctx context.Context, b *Balance) error
}

// repository runs its mutating statements through raw SQL so they honor the
// caller's transaction; only the untransacted listing goes through gorm.
type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	sqlDB, _ := db.DB()
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx}
}

// FindForUpdate locks the person's row for the duration of the enclosing
// transaction; concurrent ledger operations for the same person serialize
// here. Returns sql.ErrNoRows when no balance exists yet.
func (r *repository) FindForUpdate(ctx context.Context, personID uuid.UUID) (*Balance, error) {
	query := `
SELECT person_id, total_days, used_days, pending_days, carried_over_days, last_updated
FROM balances
WHERE person_id = $1
FOR UPDATE
`
	var b Balance
	err := r.conn().QueryRowContext(ctx, query, personID).Scan(
		&b.PersonID,
		&b.TotalDays,
		&b.UsedDays,
		&b.PendingDays,
		&b.CarriedOverDays,
		&b.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Balance, error) {
	var balances []Balance
	err := r.db.WithContext(ctx).
		Order("person_id ASC").
		Find(&balances).Error
	return balances, err
}

func (r *repository) Create(ctx context.Context, b *Balance) error {
	query := `
INSERT INTO balances (person_id, total_days, used_days, pending_days, carried_over_days, last_updated)
VALUES ($1, $2, $3, $4, $5, now())
`
	_, err := r.conn().ExecContext(ctx, query,
		b.PersonID, b.TotalDays, b.UsedDays, b.PendingDays, b.CarriedOverDays,
	)
	return err
}

func (r *repository) Save(ctx context.Context, b *Balance) error {
	query := `
UPDATE balances
SET
	total_days = $2,
	used_days = $3,
	pending_days = $4,
	carried_over_days = $5,
	last_updated = now()
WHERE person_id = $1
`
	_, err := r.conn().ExecContext(ctx, query,
		b.PersonID, b.TotalDays, b.UsedDays, b.PendingDays, b.CarriedOverDays,
	)
	return err
}

func (r *repository) conn() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
