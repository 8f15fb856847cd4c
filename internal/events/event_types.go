package events

import (
	"time"

	"github.com/manyinyire/Outleads-sub001/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeadCaptured       EventType = "lead_captured"
	EventLeadsAssigned      EventType = "leads_assigned"
	EventDispositionChanged EventType = "disposition_changed"
	EventCampaignClicked    EventType = "campaign_clicked"
	EventUserPending        EventType = "user_pending"
	EventUserApproved       EventType = "user_approved"
)

// Event represents a domain event emitted by services. ActorID is empty for
// events triggered by anonymous public traffic.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LeadCapturedPayload payload.
type LeadCapturedPayload struct {
	LeadID     string  `json:"lead_id"`
	CampaignID *string `json:"campaign_id,omitempty"`
	Phone      string  `json:"phone"`
}

// LeadsAssignedPayload payload.
type LeadsAssignedPayload struct {
	PoolID  string   `json:"pool_id"`
	AgentID string   `json:"agent_id"`
	LeadIDs []string `json:"lead_ids"`
}

// DispositionChangedPayload payload.
type DispositionChangedPayload struct {
	LeadID              string  `json:"lead_id"`
	FirstDispositionID  *string `json:"first_disposition_id,omitempty"`
	SecondDispositionID *string `json:"second_disposition_id,omitempty"`
	ThirdDispositionID  *string `json:"third_disposition_id,omitempty"`
}

// CampaignClickedPayload payload.
type CampaignClickedPayload struct {
	CampaignID string `json:"campaign_id"`
	UniqueLink string `json:"unique_link"`
}

// UserLifecyclePayload payload for user_pending and user_approved.
type UserLifecyclePayload struct {
	UserID string            `json:"user_id"`
	Email  string            `json:"email"`
	Role   domain.Role       `json:"role"`
	Status domain.UserStatus `json:"status"`
}
