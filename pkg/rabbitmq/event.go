package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is the JSON envelope of every domain event.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Entity     string      `json:"entity"`
	EntityID   uint        `json:"entity_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data,omitempty"`
}

// NewEvent builds an event of type "<entity>.<action>".
func NewEvent(entity, action string, entityID uint, data interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       entity + "." + action,
		Entity:     entity,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Encode marshals the event for publishing.
func (e Event) Encode() ([]byte, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event %s: %w", e.Type, err)
	}
	return body, nil
}

// DecodeEvent parses a delivery body. Data is left as generic JSON.
func DecodeEvent(body []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(body, &e); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if e.ID == "" || e.Type == "" {
		return Event{}, fmt.Errorf("%w: missing id or type", ErrMalformedEvent)
	}
	return e, nil
}
