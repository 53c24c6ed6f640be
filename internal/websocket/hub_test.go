package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func (h *Hub) connCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func waitForConns(t *testing.T, hub *Hub, userID uuid.UUID, want int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for hub.connCount(userID) != want {
		select {
		case <-deadline:
			t.Fatalf("connection count never reached %d (have %d)", want, hub.connCount(userID))
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSendDropsStalledClientExactlyOnce(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	userID := uuid.New()
	// No reader and no buffer: the first frame already stalls.
	stalled := &Client{Hub: hub, UserID: userID, Send: make(chan []byte)}
	healthy := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 4)}
	hub.register <- stalled
	hub.register <- healthy
	waitForConns(t, hub, userID, 2)

	hub.Send(userID, []byte("one"))
	waitForConns(t, hub, userID, 1)

	// The stalled client is gone and its channel closed by Run. Further
	// sends and a repeated handoff must not close it a second time.
	hub.Send(userID, []byte("two"))
	hub.unregister <- stalled
	hub.Send(userID, []byte("three"))

	require.Equal(t, 1, hub.connCount(userID))
	assert.Equal(t, []byte("one"), <-healthy.Send)
	assert.Equal(t, []byte("two"), <-healthy.Send)
	assert.Equal(t, []byte("three"), <-healthy.Send)

	_, open := <-stalled.Send
	assert.False(t, open, "stalled client's channel should be closed")
}

func TestSendSurvivesTwoStalledClientsInOnePass(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	userID := uuid.New()
	hub.register <- &Client{Hub: hub, UserID: userID, Send: make(chan []byte)}
	hub.register <- &Client{Hub: hub, UserID: userID, Send: make(chan []byte)}
	waitForConns(t, hub, userID, 2)

	done := make(chan struct{})
	go func() {
		hub.Send(userID, []byte("frame"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Send deadlocked dropping two stalled clients")
	}
	waitForConns(t, hub, userID, 0)
}
