package notice

import (
	"sync"
	"time"
)

// Display windows. The same transient-notice mechanism serves both
// credential errors and save confirmations; only the window differs.
const (
	AuthErrorWindow   = 4 * time.Second
	SaveConfirmWindow = 2 * time.Second
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Notice is a transient, self-clearing message shown to the user.
type Notice struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Until   time.Time `json:"display_until"`
}

// Board owns at most one visible notice and the single dismissal ticket
// scheduled for it. Raising a new notice bumps a generation counter and
// cancels the previous ticket, so a stale timer can never clear a newer
// notice — there is no window where two timers race for the same flag.
type Board struct {
	mu       sync.Mutex
	gen      uint64
	current  *Notice
	timer    *time.Timer
	onChange func(*Notice)
	closed   bool
}

// NewBoard creates a board. onChange, if non-nil, is invoked with the
// new notice on every raise and with nil on every clear.
func NewBoard(onChange func(*Notice)) *Board {
	return &Board{onChange: onChange}
}

// Raise shows a notice and schedules its dismissal after window. Any
// previously scheduled dismissal is invalidated; the new notice restarts
// the clock.
func (b *Board) Raise(status, message string, window time.Duration) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}

	b.gen++
	gen := b.gen

	if b.timer != nil {
		b.timer.Stop()
	}

	n := &Notice{
		Status:  status,
		Message: message,
		Until:   time.Now().Add(window),
	}
	b.current = n
	b.timer = time.AfterFunc(window, func() { b.expire(gen) })

	fn := b.onChange
	b.mu.Unlock()

	if fn != nil {
		fn(n)
	}
}

// expire clears the notice only if it is still the one the ticket was
// issued for.
func (b *Board) expire(gen uint64) {
	b.mu.Lock()
	if b.closed || gen != b.gen || b.current == nil {
		b.mu.Unlock()
		return
	}
	b.current = nil
	fn := b.onChange
	b.mu.Unlock()

	if fn != nil {
		fn(nil)
	}
}

// Current returns the visible notice, or nil.
func (b *Board) Current() *Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Close cancels any pending dismissal and stops the board.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.current = nil
}
