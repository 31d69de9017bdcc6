// Package store persists the closed-window history: the serialized
// provenance records that let "reopen last closed window" work across
// restarts with no other session memory.
package store

import (
	"context"
	"encoding/json"
	"time"
)

// ClosedWindow is one history entry: enough to re-materialize the window by
// deserializing Record and replaying it.
type ClosedWindow struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// Record is the serialized provenance of the window's artifact.
	Record   json.RawMessage `json:"record"`
	ClosedAt time.Time       `json:"closed_at"`
}

// ListOpts filters ListClosed results.
type ListOpts struct {
	// Since restricts results to windows closed at or after this time.
	Since time.Time
	// Limit caps the number of results; 0 means no cap.
	Limit int
}

// Store is the persistence interface for the closed-window history.
type Store interface {
	// RecordClosed persists one closed window. A missing ID is filled
	// with a fresh UUID, a zero ClosedAt with the current time.
	RecordClosed(ctx context.Context, w ClosedWindow) error

	// ListClosed returns history entries, newest first.
	ListClosed(ctx context.Context, opts ListOpts) ([]ClosedWindow, error)

	// TakeLatest removes and returns the most recently closed window,
	// or nil when the history is empty.
	TakeLatest(ctx context.Context) (*ClosedWindow, error)

	// Clear removes all history entries and reports how many.
	Clear(ctx context.Context) (int64, error)

	Close() error
}
