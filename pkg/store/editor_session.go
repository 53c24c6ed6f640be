package store

import (
	"sync"
	"sync/atomic"
	"time"

	"code-playground-be/pkg/composer"
	"code-playground-be/pkg/preview"

	"github.com/google/uuid"
)

// EditorSession is the live, per-client editing state: the three source
// buffers, the display title, and the preview of their composite. It is
// ephemeral view state held in memory; only explicitly saved snapshots
// reach the project store.
type EditorSession struct {
	ID     string    `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	// Buffers is written by the edit loop and read by save goroutines;
	// access goes through Edit and Snapshot.
	Buffers   composer.SourceBuffers `json:"buffers"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`

	// Renderer holds the last composed document for this session.
	Renderer *preview.Renderer `json:"-"`

	mu  sync.Mutex
	rev atomic.Uint64
}

// NewEditorSession opens an empty session for a user.
func NewEditorSession(userID uuid.UUID) *EditorSession {
	now := time.Now()
	return &EditorSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		Buffers:   composer.NewSourceBuffers(),
		CreatedAt: now,
		UpdatedAt: now,
		Renderer:  preview.NewRenderer(),
	}
}

// NextRevision issues the revision number for the next render. Revisions
// are strictly increasing per session, which is what lets the renderer
// drop out-of-order writes.
func (s *EditorSession) NextRevision() uint64 {
	return s.rev.Add(1)
}

// Edit mutates the buffers under the session lock and returns a copy of
// the result, so the caller can compose from a consistent view.
func (s *EditorSession) Edit(fn func(*composer.SourceBuffers)) composer.SourceBuffers {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.Buffers)
	s.UpdatedAt = time.Now()
	return s.Buffers
}

// Snapshot returns a copy of the buffers taken under the session lock.
// A save works from this copy, so edits arriving while the store write
// is in flight never leak into the snapshot.
func (s *EditorSession) Snapshot() composer.SourceBuffers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Buffers
}
