package audit

import (
	"time"

	"kaziid/pkg/domain"
)

// Action names a session lifecycle event.
type Action string

const (
	ActionSignedUp        Action = "signed_up"
	ActionSignedIn        Action = "signed_in"
	ActionSignedOut       Action = "signed_out"
	ActionProfileUpdated  Action = "profile_updated"
	ActionSessionRestored Action = "session_restored"
)

// Event is emitted from domain logic to capture key session actions. Keep
// it transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp  time.Time         `json:"timestamp"`
	Action     Action            `json:"action"`
	IdentityID domain.IdentityID `json:"identity_id"`
	Email      string            `json:"email,omitempty"`
	Role       domain.Role       `json:"role,omitempty"`
	Domain     string            `json:"domain,omitempty"`
	Device     string            `json:"device,omitempty"`
	Reason     string            `json:"reason,omitempty"`
}
