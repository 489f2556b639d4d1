// Package store provides durable persistence for the session snapshot.
// Exactly one snapshot slot exists: saving overwrites the previous snapshot
// and loading returns the most recent one. The slot abstraction allows
// different backends (bbolt, in-memory) to be used interchangeably.
package store

import (
	"context"

	"github.com/prepdeck/prepdeck/internal/quiz"
)

// SnapshotStore persists the single session snapshot slot.
//
// Save failures are soft by contract: callers log them and keep the
// in-memory record authoritative until the next successful save. Load must
// surface malformed or version-mismatched data as ErrSnapshotInvalid so the
// recovery path can discard it instead of propagating a parse failure.
type SnapshotStore interface {
	// Save writes the snapshot, replacing any previous one.
	Save(ctx context.Context, snapshot *quiz.Snapshot) error

	// Load returns the last saved snapshot.
	// Returns errors.ErrSnapshotNotFound when the slot is empty and
	// errors.ErrSnapshotInvalid when the stored bytes cannot be used.
	Load(ctx context.Context) (*quiz.Snapshot, error)

	// Clear empties the snapshot slot. Clearing an empty slot is a no-op.
	Clear(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
