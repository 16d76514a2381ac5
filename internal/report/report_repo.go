package report

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"leavetrack/internal/balance"
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	PersonYear(ctx context.Context, personID uuid.UUID, year int) (*PersonYearReport, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type personYearRow struct {
	TotalDays       int
	UsedDays        int
	PendingDays     int
	CarriedOverDays int
	RequestCount    int
	ApprovedCount   int
	RejectedCount   int
	PendingCount    int
	VacationDays    int
	SickLeaveDays   int
}

func mapPersonYearRow(personID uuid.UUID, year int, row personYearRow) *PersonYearReport {
	counters := balance.Balance{
		TotalDays:       row.TotalDays,
		UsedDays:        row.UsedDays,
		PendingDays:     row.PendingDays,
		CarriedOverDays: row.CarriedOverDays,
	}
	return &PersonYearReport{
		PersonID:           personID.String(),
		Year:               year,
		TotalDays:          row.TotalDays,
		UsedDays:           row.UsedDays,
		PendingDays:        row.PendingDays,
		CarriedOverDays:    row.CarriedOverDays,
		RemainingDays:      balance.Remaining(counters),
		RequestCount:       row.RequestCount,
		ApprovedCount:      row.ApprovedCount,
		RejectedCount:      row.RejectedCount,
		PendingCount:       row.PendingCount,
		VacationDaysTaken:  row.VacationDays,
		SickLeaveDaysTaken: row.SickLeaveDays,
	}
}

// PersonYear aggregates the person's requests for the year together with
// the live balance counters in a single round trip. A person with no
// balance row yet reports the default allotment, matching the lazy
// creation on first balance access.
func (r *repository) PersonYear(ctx context.Context, personID uuid.UUID, year int) (*PersonYearReport, error) {
	var row personYearRow

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(b.total_days, ?)         AS total_days,
			COALESCE(b.used_days, 0)          AS used_days,
			COALESCE(b.pending_days, 0)       AS pending_days,
			COALESCE(b.carried_over_days, 0)  AS carried_over_days,
			COUNT(r.id)                                                                        AS request_count,
			COUNT(r.id) FILTER (WHERE r.status = 'approved')                                   AS approved_count,
			COUNT(r.id) FILTER (WHERE r.status = 'rejected')                                   AS rejected_count,
			COUNT(r.id) FILTER (WHERE r.status = 'pending')                                    AS pending_count,
			COALESCE(SUM(r.requested_days) FILTER (
				WHERE r.status = 'approved' AND r.type = 'vacation'), 0)                       AS vacation_days,
			COALESCE(SUM(r.requested_days) FILTER (
				WHERE r.status = 'approved' AND r.type = 'sick-leave'), 0)                     AS sick_leave_days
		FROM (SELECT ?::uuid AS person_id) p
		LEFT JOIN balances b ON b.person_id = p.person_id
		LEFT JOIN leave_requests r
			ON r.person_id = p.person_id
			AND EXTRACT(YEAR FROM r.start_date) = ?
		GROUP BY b.total_days, b.used_days, b.pending_days, b.carried_over_days
	`, balance.DefaultTotalDays, personID, year).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return mapPersonYearRow(personID, year, row), nil
}
