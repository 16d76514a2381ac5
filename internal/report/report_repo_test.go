package report

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"leavetrack/internal/balance"
)

func TestMapPersonYearRow(t *testing.T) {
	personID := uuid.New()

	t.Run("remaining follows the ledger formula", func(t *testing.T) {
		row := personYearRow{
			TotalDays:       25,
			UsedDays:        7,
			PendingDays:     3,
			CarriedOverDays: 2,
			RequestCount:    4,
			ApprovedCount:   2,
			PendingCount:    1,
			RejectedCount:   1,
			VacationDays:    5,
			SickLeaveDays:   2,
		}

		got := mapPersonYearRow(personID, 2026, row)
		assert.Equal(t, personID.String(), got.PersonID)
		assert.Equal(t, 2026, got.Year)
		assert.Equal(t, 17, got.RemainingDays)
		assert.Equal(t, balance.Remaining(balance.Balance{
			TotalDays:       row.TotalDays,
			UsedDays:        row.UsedDays,
			PendingDays:     row.PendingDays,
			CarriedOverDays: row.CarriedOverDays,
		}), got.RemainingDays)
		assert.Equal(t, 5, got.VacationDaysTaken)
		assert.Equal(t, 2, got.SickLeaveDaysTaken)
	})

	t.Run("overspent sick leave reports negative remaining", func(t *testing.T) {
		row := personYearRow{TotalDays: 25, UsedDays: 28}

		got := mapPersonYearRow(personID, 2026, row)
		assert.Equal(t, -3, got.RemainingDays)
	})
}
