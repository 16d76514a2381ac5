package balance

import "time"

// SetBalanceRequest carries the administrative override. Omitted fields are
// left unchanged. Values are deliberately unbounded: administrators may set
// any integer, including ones that drive remaining days negative.
type SetBalanceRequest struct {
	TotalDays       *int `json:"total_days"`
	UsedDays        *int `json:"used_days"`
	PendingDays     *int `json:"pending_days"`
	CarriedOverDays *int `json:"carried_over_days"`
}

type BalanceResponse struct {
	PersonID        string `json:"person_id"`
	TotalDays       int    `json:"total_days"`
	UsedDays        int    `json:"used_days"`
	PendingDays     int    `json:"pending_days"`
	CarriedOverDays int    `json:"carried_over_days"`
	RemainingDays   int    `json:"remaining_days"`
	LastUpdated     string `json:"last_updated"`
}

func mapToResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		PersonID:        b.PersonID.String(),
		TotalDays:       b.TotalDays,
		UsedDays:        b.UsedDays,
		PendingDays:     b.PendingDays,
		CarriedOverDays: b.CarriedOverDays,
		RemainingDays:   Remaining(b),
		LastUpdated:     b.LastUpdated.Format(time.RFC3339),
	}
}

func mapToListResponse(balances []Balance) []BalanceResponse {
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp
}
