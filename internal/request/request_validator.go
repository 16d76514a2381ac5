package request

import (
	"time"

	requesterrors "leavetrack/internal/request/errors"
	"leavetrack/internal/workday"
)

const (
	// Vacation must be requested at least this many calendar days ahead.
	vacationNoticeDays = 14
	// Sick leave may be backdated at most this many calendar days.
	sickLeaveBackdateDays = 3
	// Longest sick leave accepted, in business days.
	maxSickLeaveDays = 30
)

// ValidateVacation checks a candidate vacation request against the
// validation instant and the available balance. Pure: no clock reads, no
// I/O. Returns the frozen business-day count on success. Checks run in
// order and the first failure wins.
func ValidateVacation(now, start, end time.Time, availableDays int) (int, error) {
	if start.Before(now) {
		return 0, requesterrors.ErrStartDateNotFuture
	}
	if end.Before(start) {
		return 0, requesterrors.ErrEndBeforeStart
	}

	requestedDays := workday.Count(start, end)
	if requestedDays > availableDays {
		return requestedDays, requesterrors.InsufficientBalance(requestedDays, availableDays)
	}

	if start.Before(now.AddDate(0, 0, vacationNoticeDays)) {
		return requestedDays, requesterrors.ErrInsufficientNotice
	}

	return requestedDays, nil
}

// ValidateSickLeave checks a candidate sick-leave request. Sick leave is
// deliberately granted independent of remaining balance: it auto-approves
// and debits used days, and may drive the remaining balance negative.
// That is policy, not an oversight.
func ValidateSickLeave(now, start, end time.Time) (int, error) {
	if start.Before(now.AddDate(0, 0, -sickLeaveBackdateDays)) {
		return 0, requesterrors.ErrLateSubmission
	}
	if end.Before(start) {
		return 0, requesterrors.ErrEndBeforeStart
	}

	requestedDays := workday.Count(start, end)
	if requestedDays > maxSickLeaveDays {
		return requestedDays, requesterrors.ErrExceedsMaximum
	}

	return requestedDays, nil
}
