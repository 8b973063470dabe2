package audit

import "time"

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	ActorID   int64     `json:"actor_id,omitempty"`
	BuddyID   int64     `json:"buddy_id,omitempty"`
	BuddeeID  int64     `json:"buddee_id,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	Device    string    `json:"device,omitempty"`
}

const (
	EventPairCreated         = "pair_created"
	EventPairDeleted         = "pair_deleted"
	EventTouchpointCreated   = "touchpoint_created"
	EventTouchpointSubmitted = "touchpoint_submitted"
)
