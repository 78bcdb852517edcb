package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestRequestIDString tests request ID string conversion
func TestRequestIDString(t *testing.T) {
	id := RequestID("req-123")
	if id.String() != "req-123" {
		t.Errorf("Expected String() to return 'req-123', got '%s'", id.String())
	}
	if NewRequestID().String() == "" {
		t.Error("NewRequestID should not be empty")
	}
}
