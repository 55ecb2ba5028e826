package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeClick     MessageType = "click"
	MessageTypeRestart   MessageType = "restart"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewError builds an error message ready to write. payload is any JSON-able
// error body.
func NewError(payload interface{}) Message {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte(`{"error":"internal error"}`)
	}
	return Message{Type: MessageTypeError, Payload: raw}
}
