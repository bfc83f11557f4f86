package notification

import "time"

// MessageType classifies a notification for rendering.
type MessageType string

const (
	MessageTypeInfo    MessageType = "info"
	MessageTypeWarning MessageType = "warning"
	MessageTypeError   MessageType = "error"
)

// Message is a channel-independent notification.
type Message struct {
	Type      MessageType
	Title     string
	Text      string
	Fields    map[string]string
	Timestamp time.Time
}
