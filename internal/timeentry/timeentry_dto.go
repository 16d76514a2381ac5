package timeentry

import "time"

type CreateTimeEntryRequest struct {
	EntryType string  `json:"entry_type" binding:"required,oneof=clock_in clock_out break_start break_end"`
	Timestamp string  `json:"timestamp" binding:"omitempty"`
	Location  string  `json:"location"`
	Notes     *string `json:"notes"`
}

type ListTimeEntriesFilter struct {
	PersonID string `form:"person_id" binding:"omitempty,uuid"`
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

type TimeEntryResponse struct {
	ID        string  `json:"id"`
	PersonID  string  `json:"person_id"`
	EntryType string  `json:"entry_type"`
	Timestamp string  `json:"timestamp"`
	Location  string  `json:"location"`
	Notes     *string `json:"notes,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func mapToResponse(e TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:        e.ID.String(),
		PersonID:  e.PersonID.String(),
		EntryType: e.EntryType,
		Timestamp: e.Timestamp.Format(time.RFC3339),
		Location:  e.Location,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(entries []TimeEntry) []TimeEntryResponse {
	resp := make([]TimeEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToResponse(e)
	}
	return resp
}
