package idgen

import (
	"strconv"
	"testing"
	"time"
)

func TestNextIsStrictlyIncreasing(t *testing.T) {
	g := New()

	prev := int64(0)
	for i := 0; i < 1000; i++ {
		id := g.Next()
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			t.Fatalf("id %q is not numeric: %v", id, err)
		}
		if n <= prev {
			t.Fatalf("id %d not greater than previous %d", n, prev)
		}
		prev = n
	}
}

func TestNextDisambiguatesSameMillisecond(t *testing.T) {
	frozen := time.UnixMilli(1700000000000)
	g := NewWithClock(func() time.Time { return frozen })

	a := g.Next()
	b := g.Next()
	c := g.Next()

	if a != "1700000000000" {
		t.Errorf("first id = %s, want 1700000000000", a)
	}
	if b != "1700000000001" || c != "1700000000002" {
		t.Errorf("same-millisecond ids = %s, %s; want consecutive increments", b, c)
	}
}

func TestNextTracksClock(t *testing.T) {
	now := time.UnixMilli(1000)
	g := NewWithClock(func() time.Time { return now })

	first := g.Next()
	now = time.UnixMilli(5000)
	second := g.Next()

	if first != "1000" || second != "5000" {
		t.Errorf("ids = %s, %s; want 1000, 5000", first, second)
	}
}

func TestNextConcurrentUniqueness(t *testing.T) {
	g := New()
	const n = 200

	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		go func() { ids <- g.Next() }()
	}

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		id := <-ids
		if seen[id] {
			t.Fatalf("duplicate id issued: %s", id)
		}
		seen[id] = true
	}
}
