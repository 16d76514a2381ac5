package timeentry

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeClockIn    = "clock_in"
	TypeClockOut   = "clock_out"
	TypeBreakStart = "break_start"
	TypeBreakEnd   = "break_end"
)

const DefaultLocation = "office"

type TimeEntry struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonID  uuid.UUID `gorm:"column:person_id;type:uuid;not null;index"`
	EntryType string    `gorm:"column:entry_type;type:varchar(20);not null"`
	Timestamp time.Time `gorm:"column:timestamp;type:timestamptz;not null;index"`
	Location  string    `gorm:"column:location;type:varchar(100);not null;default:'office'"`
	Notes     *string   `gorm:"column:notes;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}
