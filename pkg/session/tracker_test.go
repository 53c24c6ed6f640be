package session

import (
	"testing"

	"github.com/google/uuid"
)

type recordingGate struct {
	paths    []string
	replaces []bool
}

func (g *recordingGate) Redirect(path string, replace bool) {
	g.paths = append(g.paths, path)
	g.replaces = append(g.replaces, replace)
}

func TestTrackerStartsUnknown(t *testing.T) {
	tr := NewTracker(&recordingGate{})
	snap := tr.Current()
	if snap.State != StateUnknown {
		t.Errorf("initial state = %v, want %v", snap.State, StateUnknown)
	}
	if snap.Identity != nil {
		t.Error("initial identity should be nil")
	}
}

func TestTrackerNotificationSequence(t *testing.T) {
	gate := &recordingGate{}
	tr := NewTracker(gate)

	var observed []Snapshot
	cancel := tr.Subscribe(func(s Snapshot) { observed = append(observed, s) })
	defer cancel()

	identityA := &Identity{UserID: uuid.New(), Email: "a@example.com"}

	tr.Apply(nil)
	tr.Apply(identityA)
	tr.Apply(nil)

	wantStates := []State{StateUnauthenticated, StateAuthenticated, StateUnauthenticated}
	if len(observed) != len(wantStates) {
		t.Fatalf("observed %d transitions, want %d", len(observed), len(wantStates))
	}
	for i, want := range wantStates {
		if observed[i].State != want {
			t.Errorf("transition %d = %v, want %v", i, observed[i].State, want)
		}
	}
	if observed[1].Identity == nil || observed[1].Identity.Email != "a@example.com" {
		t.Error("authenticated snapshot did not carry the notified identity")
	}
	if observed[2].Identity != nil {
		t.Error("unauthenticated snapshot still carries an identity")
	}

	// The gate fires exactly on the Unauthenticated entries, replacing
	// history each time.
	if len(gate.paths) != 2 {
		t.Fatalf("gate invoked %d times, want 2", len(gate.paths))
	}
	for i, p := range gate.paths {
		if p != AuthPath {
			t.Errorf("redirect %d path = %q, want %q", i, p, AuthPath)
		}
		if !gate.replaces[i] {
			t.Errorf("redirect %d did not replace history", i)
		}
	}
}

func TestTrackerAuthenticatedDoesNotRedirect(t *testing.T) {
	gate := &recordingGate{}
	tr := NewTracker(gate)

	tr.Apply(&Identity{UserID: uuid.New()})

	if len(gate.paths) != 0 {
		t.Errorf("gate invoked on Authenticated entry: %v", gate.paths)
	}
}

func TestTrackerSubscribeCancel(t *testing.T) {
	tr := NewTracker(nil)

	calls := 0
	cancel := tr.Subscribe(func(Snapshot) { calls++ })

	tr.Apply(nil)
	cancel()
	tr.Apply(&Identity{UserID: uuid.New()})

	if calls != 1 {
		t.Errorf("watcher called %d times after cancel, want 1", calls)
	}
}

func TestTrackerClose(t *testing.T) {
	gate := &recordingGate{}
	tr := NewTracker(gate)

	tr.Apply(&Identity{UserID: uuid.New()})
	tr.Close()
	tr.Apply(nil)

	if tr.Current().State != StateAuthenticated {
		t.Error("closed tracker still transitioned")
	}
	if len(gate.paths) != 0 {
		t.Error("closed tracker invoked the gate")
	}
}
