package events

import "time"

const AuditTrailTopic = "leave.audit.trail.v1"

// Audit action names, one per successful mutation.
const (
	ActionCreateRequest  = "CREATE_REQUEST"
	ActionApproveRequest = "APPROVE_REQUEST"
	ActionRejectRequest  = "REJECT_REQUEST"
	ActionUpdateBalance  = "UPDATE_BALANCE"
	ActionServerShutdown = "SERVER_SHUTDOWN"
)

type AuditTrailEvent struct {
	EventType  string    `json:"event_type"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	Details    string    `json:"details,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
