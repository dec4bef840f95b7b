package kafka

import (
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/alexanderjulianmartinez/tablekit/internal/cdc"
	"github.com/alexanderjulianmartinez/tablekit/internal/config"
)

func TestEncodeMessage(t *testing.T) {
	ev := cdc.NewInsert("tools", map[string]any{"toolname": "mytool", "user": nil})
	msg, err := encodeMessage(ev)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(msg.Key) != "tools" {
		t.Fatalf("expected key tools, got %s", msg.Key)
	}
	if len(msg.Headers) != 2 || msg.Headers[0].Key != "event-id" || string(msg.Headers[0].Value) != ev.ID {
		t.Fatalf("unexpected headers: %+v", msg.Headers)
	}

	var decoded cdc.Event
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.ID != ev.ID || decoded.Op != cdc.OpInsert || decoded.Table != "tools" {
		t.Fatalf("unexpected event: %+v", decoded)
	}
	if decoded.Row["toolname"] != "mytool" {
		t.Fatalf("unexpected row: %v", decoded.Row)
	}
	if v, ok := decoded.Row["user"]; !ok || v != nil {
		t.Fatalf("expected explicit null user, got %v", decoded.Row)
	}
}

func TestNew_Validation(t *testing.T) {
	logger := slog.Default()
	if _, err := New(config.EventsConfig{Brokers: []string{" "}, Topic: "rows"}, logger); err == nil {
		t.Fatalf("expected error for blank brokers")
	}
	if _, err := New(config.EventsConfig{Brokers: []string{"localhost:9092"}}, logger); err == nil {
		t.Fatalf("expected error for missing topic")
	}
	p, err := New(config.EventsConfig{Brokers: []string{"localhost:9092"}, Topic: "rows"}, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "kafka" {
		t.Fatalf("unexpected name %s", p.Name())
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
