package preview

import (
	"sync"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
)

// Tokens hands out per-entity request tokens. Only the response to the
// latest request for an entity may be applied.
type Tokens struct {
	mu   sync.Mutex
	last map[domain.EntityID]uint64
}

func NewTokens() *Tokens {
	return &Tokens{last: make(map[domain.EntityID]uint64)}
}

// Next issues a token for a new request about id.
func (t *Tokens) Next(id domain.EntityID) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last[id]++
	return t.last[id]
}

// Current reports whether token is still the latest for id.
func (t *Tokens) Current(id domain.EntityID, token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return token != 0 && t.last[id] == token
}

// Check returns ErrStaleResponse when a newer request superseded token.
func (t *Tokens) Check(id domain.EntityID, token uint64) error {
	if !t.Current(id, token) {
		return domain.ErrStaleResponse
	}
	return nil
}

// Forget drops id, so any response still in flight for it is stale.
func (t *Tokens) Forget(id domain.EntityID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.last, id)
}
