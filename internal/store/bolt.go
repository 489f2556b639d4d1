package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/prepdeck/prepdeck/internal/errors"
	"github.com/prepdeck/prepdeck/internal/quiz"
)

const (
	sessionBucket = "session"
	// snapshotKey is the fixed key for the single snapshot slot.
	snapshotKey = "current"
)

// BoltStore provides a BoltDB-backed snapshot store.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBolt opens a BoltDB-backed store at the provided path, creating the
// file and bucket as needed.
func OpenBolt(path string) (*BoltStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &BoltStore{db: db}
	if err := store.ensureBucket(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save persists the snapshot under the fixed slot key.
func (s *BoltStore) Save(ctx context.Context, snapshot *quiz.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if snapshot == nil || snapshot.Session == nil {
		return fmt.Errorf("snapshot is required")
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket is missing")
		}
		return bucket.Put([]byte(snapshotKey), payload)
	})
}

// Load fetches the last saved snapshot.
func (s *BoltStore) Load(ctx context.Context) (*quiz.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	var payload []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket is missing")
		}
		if raw := bucket.Get([]byte(snapshotKey)); raw != nil {
			payload = make([]byte, len(raw))
			copy(payload, raw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, errors.ErrSnapshotNotFound
	}

	return decodeSnapshot(payload)
}

// Clear removes the snapshot slot.
func (s *BoltStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket is missing")
		}
		return bucket.Delete([]byte(snapshotKey))
	})
}

func (s *BoltStore) ensureBucket() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		if err != nil {
			return fmt.Errorf("create session bucket: %w", err)
		}
		return nil
	})
}

// decodeSnapshot parses and validates stored snapshot bytes. Malformed or
// version-mismatched data maps to ErrSnapshotInvalid so recovery can treat
// it as "nothing to restore."
func decodeSnapshot(payload []byte) (*quiz.Snapshot, error) {
	var snapshot quiz.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrSnapshotInvalid, err)
	}
	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrSnapshotInvalid, err)
	}
	return &snapshot, nil
}
