// Package cdc describes row change events emitted after committed inserts.
package cdc

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const OpInsert = "insert"

type Event struct {
	ID    string         `json:"id"`
	Op    string         `json:"op"`
	Table string         `json:"table"`
	Row   map[string]any `json:"row"`
	Time  time.Time      `json:"time"`
}

// NewInsert builds an insert event for row with a fresh id.
func NewInsert(table string, row map[string]any) Event {
	return Event{
		ID:    uuid.NewString(),
		Op:    OpInsert,
		Table: table,
		Row:   row,
		Time:  time.Now().UTC(),
	}
}

type Publisher interface {
	Name() string
	Publish(ctx context.Context, events ...Event) error
	Close() error
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Name() string { return "nop" }
func (Nop) Publish(ctx context.Context, _ ...Event) error { return nil }
func (Nop) Close() error { return nil }
