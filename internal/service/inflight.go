package service

import "sync"

// inflightGuard tracks per-target mutations so a duplicate submission of the
// same action is rejected while a request is outstanding. Unrelated
// mutations are not serialized.
type inflightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{active: make(map[string]struct{})}
}

// begin marks the key as in flight; false means a mutation for the same key
// is already outstanding.
func (g *inflightGuard) begin(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return false
	}
	g.active[key] = struct{}{}
	return true
}

func (g *inflightGuard) end(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, key)
}
