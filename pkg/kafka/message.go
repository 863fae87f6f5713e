package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Header keys carried on every published message.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

// Message is a keyed event ready for publishing. Key selects the
// partition so all events for one booking stay ordered.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// NewEventMessage builds a message with a JSON-encoded payload and the
// standard headers populated.
func NewEventMessage(key, eventType, source string, payload any) (*Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Message{
		Key:       key,
		Value:     value,
		Timestamp: now,
		Headers: map[string]string{
			HeaderEventID:   uuid.NewString(),
			HeaderEventType: eventType,
			HeaderSource:    source,
			HeaderTimestamp: now.Format(time.RFC3339),
		},
	}, nil
}
