package report

// PersonYearReport summarizes one person's leave activity for a calendar
// year, alongside the current balance counters.
type PersonYearReport struct {
	PersonID string `json:"person_id"`
	Year     int    `json:"year"`

	TotalDays       int `json:"total_days"`
	UsedDays        int `json:"used_days"`
	PendingDays     int `json:"pending_days"`
	CarriedOverDays int `json:"carried_over_days"`
	RemainingDays   int `json:"remaining_days"`

	RequestCount  int `json:"request_count"`
	ApprovedCount int `json:"approved_count"`
	RejectedCount int `json:"rejected_count"`
	PendingCount  int `json:"pending_count"`

	VacationDaysTaken  int `json:"vacation_days_taken"`
	SickLeaveDaysTaken int `json:"sick_leave_days_taken"`
}
