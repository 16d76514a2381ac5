package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateRequest struct {
	Type      string `json:"type" binding:"required,oneof=vacation sick-leave"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

// DecideRequest carries the single decision that resolves a pending
// request. Approved is a pointer so an explicit false binds.
type DecideRequest struct {
	Approved *bool  `json:"approved" binding:"required"`
	Reason   string `json:"reason"`
}

type ListRequestsFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	PersonID string `form:"person_id" binding:"omitempty,uuid"`
}

type RequestResponse struct {
	ID            int64  `json:"id"`
	PersonID      string `json:"person_id"`
	Type          string `json:"type"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	RequestedDays int    `json:"requested_days"`
	Reason        string `json:"reason,omitempty"`
	Status        string `json:"status"`

	ManagerDecidedBy *string `json:"manager_decided_by,omitempty"`
	ManagerDecidedAt *string `json:"manager_decided_at,omitempty"`
	AdminDecidedBy   *string `json:"admin_decided_by,omitempty"`
	AdminDecidedAt   *string `json:"admin_decided_at,omitempty"`
	RejectedBy       *string `json:"rejected_by,omitempty"`
	RejectedAt       *string `json:"rejected_at,omitempty"`
	RejectionReason  *string `json:"rejection_reason,omitempty"`

	CreatedAt string `json:"created_at"`
}

func mapToResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:            r.ID,
		PersonID:      r.PersonID.String(),
		Type:          r.Type,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		RequestedDays: r.RequestedDays,
		Reason:        r.Reason,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
	resp.ManagerDecidedBy = uuidString(r.ManagerDecidedBy)
	resp.ManagerDecidedAt = timeString(r.ManagerDecidedAt)
	resp.AdminDecidedBy = uuidString(r.AdminDecidedBy)
	resp.AdminDecidedAt = timeString(r.AdminDecidedAt)
	resp.RejectedBy = uuidString(r.RejectedBy)
	resp.RejectedAt = timeString(r.RejectedAt)
	resp.RejectionReason = r.RejectionReason
	return resp
}

func mapToListResponse(requests []Request) []RequestResponse {
	resp := make([]RequestResponse, len(requests))
	for i, r := range requests {
		resp[i] = mapToResponse(r)
	}
	return resp
}

func uuidString(v *uuid.UUID) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}

func timeString(v *time.Time) *string {
	if v == nil {
		return nil
	}
	s := v.Format(time.RFC3339)
	return &s
}
