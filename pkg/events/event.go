package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types published on the lifecycle stream.
const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationPaid      = "reservation.paid"
	TypeReservationCancelled = "reservation.cancelled"
	TypeSpotAdded            = "spot.added"
	TypeSpotRemoved          = "spot.removed"
	TypeSpotFreed            = "spot.freed"
	TypeZoneAdded            = "zone.added"
	TypeZoneRemoved          = "zone.removed"
)

// Header keys carried on every published message.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

// Event is one lifecycle fact about a spot, zone or reservation.
// Key selects the Kafka partition; events about the same spot share a
// key so consumers observe them in commit order.
type Event struct {
	ID      string
	Type    string
	Source  string
	Key     string
	At      time.Time
	Payload any
}

func New(eventType, key string, payload any) Event {
	return Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Source:  "parq",
		Key:     key,
		At:      time.Now(),
		Payload: payload,
	}
}

func (e Event) encode() ([]byte, error) {
	return json.Marshal(struct {
		ID      string    `json:"id"`
		Type    string    `json:"type"`
		Source  string    `json:"source"`
		At      time.Time `json:"at"`
		Payload any       `json:"payload"`
	}{e.ID, e.Type, e.Source, e.At, e.Payload})
}
