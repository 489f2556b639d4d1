package quiz

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSnapshot_RoundTripTimestamps(t *testing.T) {
	s := newTestSession(t)
	savedAt := time.Date(2026, 3, 14, 9, 1, 2, 987654321, time.UTC)

	snapshot := NewSnapshot(s, savedAt)

	payload, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Snapshot
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if err := decoded.Validate(); err != nil {
		t.Fatalf("Decoded snapshot should validate: %v", err)
	}

	if !decoded.SavedAt.Equal(savedAt.Truncate(time.Second)) {
		t.Errorf("SavedAt does not round-trip to the second: %v", decoded.SavedAt)
	}
	if !decoded.Session.StartedAt.Equal(s.StartedAt) {
		t.Errorf("StartedAt does not round-trip: %v != %v", decoded.Session.StartedAt, s.StartedAt)
	}
	if !decoded.Session.Stats.LastActivity.Equal(s.Stats.LastActivity) {
		t.Errorf("LastActivity does not round-trip: %v != %v", decoded.Session.Stats.LastActivity, s.Stats.LastActivity)
	}
}

func TestSnapshot_CopiesSession(t *testing.T) {
	s := newTestSession(t)
	snapshot := NewSnapshot(s, fixedNow())

	s.CurrentIndex = 2
	if snapshot.Session.CurrentIndex != 0 {
		t.Error("Snapshot should hold a copy, not the live record")
	}
}

func TestSnapshot_ValidateRejectsUnknownVersion(t *testing.T) {
	snapshot := NewSnapshot(newTestSession(t), fixedNow())
	snapshot.SchemaVersion = 99

	if err := snapshot.Validate(); err == nil {
		t.Error("Unknown schema version should fail validation")
	}
}

func TestSnapshot_ValidateRejectsMissingSession(t *testing.T) {
	snapshot := &Snapshot{SchemaVersion: SnapshotSchemaVersion}
	if err := snapshot.Validate(); err == nil {
		t.Error("Snapshot without a session should fail validation")
	}
}
