package realtime

import "sync"

// Registry is the single source of truth for who is currently listening.
// It is an owned instance injected into the stream handler and the
// dispatcher, not a package-level singleton, so tests can run independent
// registries side by side.
//
// Entries are keyed by the connection's composite key
// "<canonicalUserId>-<acceptance timestamp>"; the same user with two open
// tabs holds two entries.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*Conn
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*Conn)}
}

func (r *Registry) Register(c *Conn) {
	r.mu.Lock()
	r.conns[c.Key] = c
	r.mu.Unlock()
	liveConnections.Set(float64(r.Len()))
}

// Unregister removes a connection by key. Idempotent: unregistering a key
// that was already reaped is a no-op.
func (r *Registry) Unregister(key string) {
	r.mu.Lock()
	delete(r.conns, key)
	r.mu.Unlock()
	liveConnections.Set(float64(r.Len()))
}

// Snapshot returns a stable copy of the current connections. Fan-out and
// heartbeat failures may unregister entries while a caller iterates; the
// copy makes that safe.
func (r *Registry) Snapshot() []*Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Conn, 0, len(r.conns))
	for _, c := range r.conns {
		out = append(out, c)
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
