package balance

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTotalDays is the annual allotment given to a person whose balance
// is created lazily on first access.
const DefaultTotalDays = 25

// Balance is the per-person leave ledger. Counters are whole business
// days; remaining is always derived, never stored.
type Balance struct {
	PersonID        uuid.UUID `gorm:"column:person_id;type:uuid;primaryKey"`
	TotalDays       int       `gorm:"column:total_days;type:int;not null;default:25"`
	UsedDays        int       `gorm:"column:used_days;type:int;not null;default:0"`
	PendingDays     int       `gorm:"column:pending_days;type:int;not null;default:0"`
	CarriedOverDays int       `gorm:"column:carried_over_days;type:int;not null;default:0"`
	LastUpdated     time.Time `gorm:"column:last_updated;not null"`
}

func (Balance) TableName() string {
	return "balances"
}

// Remaining is the single definition of the derived balance. Every call
// site that needs remaining days goes through here so the formula cannot
// drift.
func Remaining(b Balance) int {
	return b.TotalDays + b.CarriedOverDays - b.UsedDays - b.PendingDays
}

// NewDefault returns the balance synthesized on first access.
func NewDefault(personID uuid.UUID) *Balance {
	return &Balance{
		PersonID:    personID,
		TotalDays:   DefaultTotalDays,
		LastUpdated: time.Now().UTC(),
	}
}
