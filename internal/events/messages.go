package events

import (
	"encoding/json"
	"time"

	"timeout/internal/core"
)

// Message is the wire envelope for one broadcast event.
type Message struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id,omitempty"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage wraps a core event in the wire envelope.
func NewMessage(event core.Event) Message {
	return Message{
		Type:      event.Type,
		UserID:    event.UserID,
		Data:      event.Data,
		Timestamp: time.Now().UTC(),
	}
}

// JSON encodes the message for the wire.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}
