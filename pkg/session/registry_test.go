package session

import (
	"testing"

	"github.com/google/uuid"
)

func TestRevokeReachesEveryAttachedTracker(t *testing.T) {
	registry := NewRegistry()
	userID := uuid.New()

	gateA := &recordingGate{}
	gateB := &recordingGate{}
	trA := NewTracker(gateA)
	trB := NewTracker(gateB)
	trA.Apply(&Identity{UserID: userID})
	trB.Apply(&Identity{UserID: userID})
	registry.Attach(userID, trA)
	registry.Attach(userID, trB)

	registry.Revoke(userID)

	for i, tr := range []*Tracker{trA, trB} {
		if tr.Current().State != StateUnauthenticated {
			t.Errorf("tracker %d state = %v, want %v", i, tr.Current().State, StateUnauthenticated)
		}
	}
	for i, gate := range []*recordingGate{gateA, gateB} {
		if len(gate.paths) != 1 || gate.paths[0] != AuthPath || !gate.replaces[0] {
			t.Errorf("gate %d redirects = %v/%v, want single replace to %q", i, gate.paths, gate.replaces, AuthPath)
		}
	}
}

func TestRevokeSkipsOtherUsers(t *testing.T) {
	registry := NewRegistry()
	gate := &recordingGate{}
	tr := NewTracker(gate)
	owner := uuid.New()
	tr.Apply(&Identity{UserID: owner})
	registry.Attach(owner, tr)

	registry.Revoke(uuid.New())

	if tr.Current().State != StateAuthenticated {
		t.Errorf("unrelated tracker moved to %v", tr.Current().State)
	}
	if len(gate.paths) != 0 {
		t.Errorf("gate fired for an unrelated revocation: %v", gate.paths)
	}
}

func TestDetachedTrackerIsNotRevoked(t *testing.T) {
	registry := NewRegistry()
	gate := &recordingGate{}
	tr := NewTracker(gate)
	userID := uuid.New()
	tr.Apply(&Identity{UserID: userID})

	registry.Attach(userID, tr)
	registry.Detach(userID, tr)
	registry.Revoke(userID)

	if tr.Current().State != StateAuthenticated {
		t.Errorf("detached tracker moved to %v", tr.Current().State)
	}
}
