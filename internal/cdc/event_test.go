package cdc

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestNewInsert(t *testing.T) {
	ev := NewInsert("tools", map[string]any{"toolname": "mytool"})
	if ev.Op != OpInsert || ev.Table != "tools" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if _, err := uuid.Parse(ev.ID); err != nil {
		t.Fatalf("expected uuid id, got %q: %v", ev.ID, err)
	}
	if ev.Time.IsZero() || ev.Time.Location().String() != "UTC" {
		t.Fatalf("expected UTC timestamp, got %v", ev.Time)
	}
	if other := NewInsert("tools", nil); other.ID == ev.ID {
		t.Fatalf("expected distinct ids")
	}
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	if err := p.Publish(context.Background(), NewInsert("t", nil)); err != nil {
		t.Fatalf("nop publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("nop close: %v", err)
	}
}
