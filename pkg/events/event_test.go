package events

import (
	"context"
	"encoding/json"
	"testing"

	"parq/pkg/logger"
)

func TestNew(t *testing.T) {
	e := New(TypeReservationCreated, "5", map[string]any{"spot_id": 5})

	if e.ID == "" {
		t.Error("expected a generated event id")
	}
	if e.Source != "parq" {
		t.Errorf("unexpected source: %q", e.Source)
	}
	if e.Key != "5" {
		t.Errorf("unexpected key: %q", e.Key)
	}
	if e.At.IsZero() {
		t.Error("expected a timestamp")
	}

	other := New(TypeReservationCreated, "5", nil)
	if other.ID == e.ID {
		t.Error("event ids must be unique")
	}
}

func TestEncode(t *testing.T) {
	e := New(TypeSpotFreed, "5", map[string]any{"spot_id": 5})

	data, err := e.encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var decoded struct {
		ID      string         `json:"id"`
		Type    string         `json:"type"`
		Source  string         `json:"source"`
		Payload map[string]any `json:"payload"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.ID != e.ID || decoded.Type != TypeSpotFreed || decoded.Source != "parq" {
		t.Errorf("unexpected envelope: %+v", decoded)
	}
	if decoded.Payload["spot_id"] != float64(5) {
		t.Errorf("unexpected payload: %+v", decoded.Payload)
	}
}

func TestNopPublisher(t *testing.T) {
	p := NopPublisher{}

	if err := p.Publish(context.Background(), New(TypeZoneAdded, "Mall", nil)); err != nil {
		t.Errorf("Publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestKafkaPublisher_PublishAfterClose(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	p := NewKafkaPublisher([]string{"localhost:9092"}, "parq.events", log)

	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}

	if err := p.Publish(context.Background(), New(TypeZoneAdded, "Mall", nil)); err != ErrPublisherClosed {
		t.Errorf("expected ErrPublisherClosed, got %v", err)
	}
}
