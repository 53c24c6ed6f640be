package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USER_LOGIN").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by all publishers.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// UserLogin is emitted after a successful credential or federated sign-in.
func UserLogin(userID uuid.UUID, device string) Event {
	return BaseEvent{
		Type: "USER_LOGIN",
		Data: map[string]interface{}{
			"user_id": userID,
			"device":  device,
			"time":    time.Now().Format(time.RFC822),
		},
		OccurredAt: time.Now(),
	}
}

// UserLogout is emitted when a refresh token is revoked.
func UserLogout(userID uuid.UUID) Event {
	return BaseEvent{
		Type: "USER_LOGOUT",
		Data: map[string]interface{}{
			"user_id": userID,
		},
		OccurredAt: time.Now(),
	}
}

// ProjectSaved is emitted after a snapshot is durably stored.
func ProjectSaved(projectID string, userID uuid.UUID, title string) Event {
	return BaseEvent{
		Type: "PROJECT_SAVED",
		Data: map[string]interface{}{
			"project_id": projectID,
			"user_id":    userID,
			"title":      title,
		},
		OccurredAt: time.Now(),
	}
}
