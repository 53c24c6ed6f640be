package preview

import "sync"

// Renderer keeps the latest composite document rendered for one editor
// session. Each render carries a revision number taken from the session's
// edit counter; a render whose revision is older than the current one
// lost the race to a newer edit and is dropped, so the preview can never
// go stale by an out-of-order write.
//
// The renderer never evaluates the document. Isolation from the host
// application is enforced where the document is served (sandboxing
// headers on the preview endpoint).
type Renderer struct {
	mu  sync.RWMutex
	doc string
	rev uint64
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render replaces the current document unless rev is older than the
// revision already held. Reports whether the document was accepted.
func (r *Renderer) Render(doc string, rev uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rev < r.rev {
		return false
	}
	r.doc = doc
	r.rev = rev
	return true
}

// Current returns the last accepted document and its revision.
func (r *Renderer) Current() (string, uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.doc, r.rev
}
