package session

import (
	"sync"

	"github.com/google/uuid"
)

// Registry indexes the live trackers attached for each user, so a
// session revocation can reach every one of the user's connections.
type Registry struct {
	mu       sync.Mutex
	trackers map[uuid.UUID]map[*Tracker]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		trackers: make(map[uuid.UUID]map[*Tracker]struct{}),
	}
}

// Attach registers a tracker under the user it serves.
func (r *Registry) Attach(userID uuid.UUID, t *Tracker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.trackers[userID]
	if !ok {
		set = make(map[*Tracker]struct{})
		r.trackers[userID] = set
	}
	set[t] = struct{}{}
}

// Detach removes a tracker; called when its connection winds down.
func (r *Registry) Detach(userID uuid.UUID, t *Tracker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.trackers[userID]
	if !ok {
		return
	}
	delete(set, t)
	if len(set) == 0 {
		delete(r.trackers, userID)
	}
}

// Revoke delivers a nil notification to every tracker attached for the
// user. Each moves to Unauthenticated and fires its gate, which is how
// a logout reaches connections that were opened while signed in.
func (r *Registry) Revoke(userID uuid.UUID) {
	r.mu.Lock()
	attached := make([]*Tracker, 0, len(r.trackers[userID]))
	for t := range r.trackers[userID] {
		attached = append(attached, t)
	}
	r.mu.Unlock()

	for _, t := range attached {
		t.Apply(nil)
	}
}
