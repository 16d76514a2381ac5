package request

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=request_repo.go -destination=mock/request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Request) error
	FindByID(ctx context.Context, id int64) (*Request, error)
	FindAll(ctx context.Context, personID *uuid.UUID, status string) ([]Request, error)
	// UpdateDecision commits the decision only if the stored status still
	// equals fromStatus. Returns false when another decision won the race.
	UpdateDecision(ctx context.Context, r *Request, fromStatus string) (bool, error)
}

// repository mirrors the balance repository split: raw SQL through the
// caller's transaction for the lifecycle-critical writes, gorm for list
// reads.
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

func (r *repository) Create(ctx context.Context, req *Request) error {
	query := `
INSERT INTO leave_requests (
	id, person_id, type, start_date, end_date, requested_days, reason, status,
	manager_decided_by, manager_decided_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
`
	_, err := r.conn().ExecContext(ctx, query,
		req.ID, req.PersonID, req.Type, req.StartDate, req.EndDate,
		req.RequestedDays, req.Reason, req.Status,
		req.ManagerDecidedBy, req.ManagerDecidedAt,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Request, error) {
	query := `
SELECT
	id, person_id, type, start_date, end_date, requested_days, reason, status,
	manager_decided_by, manager_decided_at, admin_decided_by, admin_decided_at,
	rejected_by, rejected_at, rejection_reason, created_at, updated_at
FROM leave_requests
WHERE id = $1
`
	var req Request
	err := r.conn().QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.PersonID, &req.Type, &req.StartDate, &req.EndDate,
		&req.RequestedDays, &req.Reason, &req.Status,
		&req.ManagerDecidedBy, &req.ManagerDecidedAt,
		&req.AdminDecidedBy, &req.AdminDecidedAt,
		&req.RejectedBy, &req.RejectedAt, &req.RejectionReason,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) FindAll(ctx context.Context, personID *uuid.UUID, status string) ([]Request, error) {
	db := r.db.WithContext(ctx).Model(&Request{})
	if personID != nil {
		db = db.Where("person_id = ?", *personID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var requests []Request
	err := db.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) UpdateDecision(ctx context.Context, req *Request, fromStatus string) (bool, error) {
	query := `
UPDATE leave_requests
SET
	status = $3,
	manager_decided_by = $4,
	manager_decided_at = $5,
	admin_decided_by = $6,
	admin_decided_at = $7,
	rejected_by = $8,
	rejected_at = $9,
	rejection_reason = $10,
	updated_at = now()
WHERE id = $1 AND status = $2
`
	res, err := r.conn().ExecContext(ctx, query,
		req.ID, fromStatus,
		req.Status,
		req.ManagerDecidedBy, req.ManagerDecidedAt,
		req.AdminDecidedBy, req.AdminDecidedAt,
		req.RejectedBy, req.RejectedAt, req.RejectionReason,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
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
