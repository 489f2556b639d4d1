package quiz

import (
	"fmt"
	"time"
)

// SnapshotSchemaVersion is the current on-disk snapshot layout version.
// Loaders must discard snapshots written with any other version rather
// than guess at forward or backward compatibility.
const SnapshotSchemaVersion = 1

// Snapshot is the durable form of a session. One snapshot slot exists per
// store; saving overwrites the previous snapshot unconditionally.
type Snapshot struct {
	SchemaVersion int       `json:"schema_version"`
	SavedAt       time.Time `json:"saved_at"`
	Session       *Session  `json:"session"`
}

// NewSnapshot wraps a copy of the session for persistence.
func NewSnapshot(s *Session, savedAt time.Time) *Snapshot {
	return &Snapshot{
		SchemaVersion: SnapshotSchemaVersion,
		SavedAt:       savedAt.UTC().Truncate(time.Second),
		Session:       s.Clone(),
	}
}

// Validate checks that a loaded snapshot is usable: current schema version
// and a structurally sound session record.
func (sn *Snapshot) Validate() error {
	if sn.SchemaVersion != SnapshotSchemaVersion {
		return fmt.Errorf("snapshot schema version %d, want %d", sn.SchemaVersion, SnapshotSchemaVersion)
	}
	if sn.Session == nil {
		return fmt.Errorf("snapshot has no session")
	}
	return sn.Session.Validate()
}
