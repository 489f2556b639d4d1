package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/prepdeck/prepdeck/internal/errors"
	"github.com/prepdeck/prepdeck/internal/quiz"
)

// MemoryStore is an in-memory SnapshotStore for tests and ephemeral hosts.
// It serializes through JSON like the durable backends so round-trip
// behavior matches.
type MemoryStore struct {
	mu      sync.Mutex
	payload []byte

	// FailSaves makes Save return an error, for exercising the
	// soft-failure contract in tests.
	FailSaves bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save stores the snapshot, replacing any previous one.
func (m *MemoryStore) Save(ctx context.Context, snapshot *quiz.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snapshot == nil || snapshot.Session == nil {
		return fmt.Errorf("snapshot is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSaves {
		return fmt.Errorf("save disabled")
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	m.payload = payload
	return nil
}

// Load returns the last saved snapshot.
func (m *MemoryStore) Load(ctx context.Context) (*quiz.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.payload == nil {
		return nil, errors.ErrSnapshotNotFound
	}
	return decodeSnapshot(m.payload)
}

// Clear empties the snapshot slot.
func (m *MemoryStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = nil
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error { return nil }

// SetRaw overwrites the stored payload with arbitrary bytes. Tests use this
// to simulate corrupted or stale snapshots.
func (m *MemoryStore) SetRaw(payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = payload
}
