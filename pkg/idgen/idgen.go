package idgen

import (
	"strconv"
	"sync"
	"time"
)

// Generator issues snapshot identifiers derived from the wall clock in
// milliseconds. The last issued value is remembered so that two saves
// landing in the same millisecond still get distinct, strictly
// increasing ids.
type Generator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock is for tests that need a controlled time source.
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next returns the next identifier as a base-10 millisecond timestamp.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	return strconv.FormatInt(ms, 10)
}
