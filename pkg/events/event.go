package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "chat.turn.completed").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent embeds common fields for concrete events.
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

const ChatTurnCompletedType = "chat.turn.completed"

// NewChatTurnCompleted is emitted after an assistant turn is persisted,
// so downstream consumers (analytics, notifications) can react.
func NewChatTurnCompleted(sessionId, documentId, messageId uuid.UUID, method string) Event {
	return BaseEvent{
		Type: ChatTurnCompletedType,
		Data: map[string]interface{}{
			"session_id":  sessionId.String(),
			"document_id": documentId.String(),
			"message_id":  messageId.String(),
			"method":      method,
		},
		OccurredAt: time.Now(),
	}
}
