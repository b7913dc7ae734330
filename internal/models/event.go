package models

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID        uuid.UUID      `json:"id"`
	Type      string         `json:"type"`
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

func NewEvent(eventType string, data map[string]any) *Event {
	if data == nil {
		data = map[string]any{}
	}
	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// GetString returns a string field from the event data or the fallback.
func (e *Event) GetString(key string, fallback string) string {
	if v, ok := e.Data[key].(string); ok && len(v) > 0 {
		return v
	}
	return fallback
}
