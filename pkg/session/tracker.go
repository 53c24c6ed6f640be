package session

import (
	"sync"

	"github.com/google/uuid"
)

// State is the current authentication determination for one attached
// client. There is exactly one current state at any time.
type State int

const (
	// StateUnknown is the initial state, before the first provider
	// notification arrives.
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Identity is the opaque identity reference carried by an authenticated
// session.
type Identity struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

// AuthPath is where an unauthenticated client is sent.
const AuthPath = "/auth"

// Gate reacts to session transitions by moving the visible view. The
// redirect on session loss replaces history so a protected view cannot
// be reached by back-navigation. Entering Authenticated never forces a
// redirect.
type Gate interface {
	Redirect(path string, replace bool)
}

// Snapshot is one observed session state.
type Snapshot struct {
	State    State
	Identity *Identity
}

// Tracker owns the session state for one attached client. The state
// changes only through Apply, driven by provider notifications; UI code
// reads through Current or a subscription and never writes directly.
type Tracker struct {
	mu       sync.Mutex
	state    State
	identity *Identity
	gate     Gate
	watchers map[int]func(Snapshot)
	nextID   int
	closed   bool
}

func NewTracker(gate Gate) *Tracker {
	return &Tracker{
		state:    StateUnknown,
		gate:     gate,
		watchers: make(map[int]func(Snapshot)),
	}
}

// Apply consumes one provider notification. A non-nil identity moves the
// tracker to Authenticated; nil moves it to Unauthenticated. There is no
// restriction on direction and no terminal state. Every entry into
// Unauthenticated goes through the gate.
func (t *Tracker) Apply(identity *Identity) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}

	if identity != nil {
		t.state = StateAuthenticated
		t.identity = identity
	} else {
		t.state = StateUnauthenticated
		t.identity = nil
	}

	snap := Snapshot{State: t.state, Identity: t.identity}
	fns := make([]func(Snapshot), 0, len(t.watchers))
	for _, fn := range t.watchers {
		fns = append(fns, fn)
	}
	gate := t.gate
	t.mu.Unlock()

	// Callbacks run outside the lock; a watcher may call back into the
	// tracker.
	for _, fn := range fns {
		fn(snap)
	}
	if snap.State == StateUnauthenticated && gate != nil {
		gate.Redirect(AuthPath, true)
	}
}

// Current returns the present state and identity.
func (t *Tracker) Current() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{State: t.state, Identity: t.identity}
}

// Subscribe registers a watcher invoked on every notification. The
// returned cancel releases it.
func (t *Tracker) Subscribe(fn func(Snapshot)) (cancel func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++
	t.watchers[id] = fn

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.watchers, id)
	}
}

// Close releases all watchers and stops further transitions. Called when
// the owning connection tears down.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.watchers = make(map[int]func(Snapshot))
}
