package notice

import (
	"sync"
	"testing"
	"time"
)

func TestRaiseAndAutoClear(t *testing.T) {
	var mu sync.Mutex
	var changes []*Notice
	b := NewBoard(func(n *Notice) {
		mu.Lock()
		changes = append(changes, n)
		mu.Unlock()
	})
	defer b.Close()

	b.Raise(StatusError, "Invalid Id: User Not Found", 30*time.Millisecond)

	if n := b.Current(); n == nil || n.Message != "Invalid Id: User Not Found" {
		t.Fatalf("Current() = %+v, want the raised notice", n)
	}

	time.Sleep(80 * time.Millisecond)

	if b.Current() != nil {
		t.Error("notice did not auto-clear after its window")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(changes) != 2 || changes[0] == nil || changes[1] != nil {
		t.Errorf("onChange sequence = %v, want [notice, nil]", changes)
	}
}

func TestNewerNoticeSurvivesStaleTimer(t *testing.T) {
	b := NewBoard(nil)
	defer b.Close()

	// First notice with a short window; its timer will fire while the
	// second, longer-lived notice is showing.
	b.Raise(StatusError, "first", 20*time.Millisecond)
	b.Raise(StatusSuccess, "second", 200*time.Millisecond)

	time.Sleep(60 * time.Millisecond)

	n := b.Current()
	if n == nil {
		t.Fatal("stale dismissal cleared the newer notice")
	}
	if n.Message != "second" {
		t.Errorf("visible notice = %q, want %q", n.Message, "second")
	}
}

func TestRaiseRestartsWindow(t *testing.T) {
	b := NewBoard(nil)
	defer b.Close()

	b.Raise(StatusError, "a", 50*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	b.Raise(StatusError, "b", 50*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	// 60ms after the first raise, but the second raise restarted the
	// clock, so the board is still showing "b".
	if n := b.Current(); n == nil || n.Message != "b" {
		t.Errorf("Current() = %+v, want notice %q", n, "b")
	}

	time.Sleep(50 * time.Millisecond)
	if b.Current() != nil {
		t.Error("second notice did not clear after its own window")
	}
}

func TestCloseStopsPendingDismissal(t *testing.T) {
	fired := false
	b := NewBoard(func(n *Notice) {
		if n == nil {
			fired = true
		}
	})

	b.Raise(StatusSuccess, "Project Saved..", 20*time.Millisecond)
	b.Close()
	time.Sleep(50 * time.Millisecond)

	if fired {
		t.Error("dismissal fired after Close")
	}
	if b.Current() != nil {
		t.Error("closed board still shows a notice")
	}
}

func TestRaiseAfterCloseIsNoop(t *testing.T) {
	b := NewBoard(nil)
	b.Close()
	b.Raise(StatusSuccess, "x", time.Second)
	if b.Current() != nil {
		t.Error("closed board accepted a notice")
	}
}
