package request

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeVacation  = "vacation"
	TypeSickLeave = "sick-leave"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Request is a single leave submission. RequestedDays is frozen at
// creation time; decisions always reverse that stored value, never a
// recomputation from the dates. Manager and admin decisions live in
// separate slots so both remain distinguishable in history, though one
// decision is enough to leave pending.
type Request struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	PersonID      uuid.UUID `gorm:"column:person_id;type:uuid;not null;index:idx_leave_requests_person_status"`
	Type          string    `gorm:"column:type;type:varchar(20);not null"`
	StartDate     time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate       time.Time `gorm:"column:end_date;type:date;not null"`
	RequestedDays int       `gorm:"column:requested_days;type:int;not null"`
	Reason        string    `gorm:"column:reason;type:text"`
	Status        string    `gorm:"column:status;type:varchar(20);not null;default:'pending';index:idx_leave_requests_person_status"`

	ManagerDecidedBy *uuid.UUID `gorm:"column:manager_decided_by;type:uuid"`
	ManagerDecidedAt *time.Time `gorm:"column:manager_decided_at"`
	AdminDecidedBy   *uuid.UUID `gorm:"column:admin_decided_by;type:uuid"`
	AdminDecidedAt   *time.Time `gorm:"column:admin_decided_at"`
	RejectedBy       *uuid.UUID `gorm:"column:rejected_by;type:uuid"`
	RejectedAt       *time.Time `gorm:"column:rejected_at"`
	RejectionReason  *string    `gorm:"column:rejection_reason;type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Request) TableName() string {
	return "leave_requests"
}

// Decided reports whether the request has reached a terminal status.
func (r Request) Decided() bool {
	return r.Status != StatusPending
}
