package realtime

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// fakeSink records everything written to it and can be told to fail.
type fakeSink struct {
	mu     sync.Mutex
	writes [][]byte
	fail   bool
}

func (s *fakeSink) WriteEvent(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return fmt.Errorf("sink closed")
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.writes = append(s.writes, cp)
	return nil
}

func (s *fakeSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.writes)
}

func (s *fakeSink) setFail(v bool) {
	s.mu.Lock()
	s.fail = v
	s.mu.Unlock()
}

func newTestConn(userID, zone string) (*Conn, *fakeSink) {
	sink := &fakeSink{}
	_, cancel := context.WithCancel(context.Background())
	return NewConn(userID, zone, sink, cancel), sink
}

func TestRegistryRegisterUnregister(t *testing.T) {
	reg := NewRegistry()
	conn, _ := newTestConn("alice", "Textile")

	reg.Register(conn)
	require.Equal(t, 1, reg.Len())

	reg.Unregister(conn.Key)
	require.Equal(t, 0, reg.Len())

	// Idempotent: unregistering again is a no-op.
	reg.Unregister(conn.Key)
	require.Equal(t, 0, reg.Len())
}

func TestRegistrySnapshotIsStable(t *testing.T) {
	reg := NewRegistry()
	a, _ := newTestConn("alice", "")
	b, _ := newTestConn("bob", "")
	reg.Register(a)
	reg.Register(b)

	snap := reg.Snapshot()
	require.Len(t, snap, 2)

	// Mutating the registry mid-iteration must not disturb the snapshot.
	for _, c := range snap {
		reg.Unregister(c.Key)
	}
	assert.Len(t, snap, 2)
	assert.Equal(t, 0, reg.Len())
}

// The registry must end up holding exactly the registered-minus-unregistered
// set for any operation sequence.
func TestRegistryIntegrityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := NewRegistry()
		model := make(map[string]struct{})
		byKey := make(map[string]*Conn)

		ops := rapid.IntRange(1, 100).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				user := rapid.StringMatching(`[a-z]{1,6}`).Draw(t, "user")
				conn, _ := newTestConn(user, "")
				reg.Register(conn)
				model[conn.Key] = struct{}{}
				byKey[conn.Key] = conn
			case 1:
				if len(byKey) == 0 {
					continue
				}
				keys := make([]string, 0, len(byKey))
				for k := range byKey {
					keys = append(keys, k)
				}
				key := rapid.SampledFrom(keys).Draw(t, "key")
				reg.Unregister(key)
				delete(model, key)
			case 2:
				// Concurrent-style fan-out iteration must not disturb membership.
				for range reg.Snapshot() {
				}
			}
		}

		if reg.Len() != len(model) {
			t.Fatalf("registry has %d entries, model has %d", reg.Len(), len(model))
		}
		for _, c := range reg.Snapshot() {
			if _, ok := model[c.Key]; !ok {
				t.Fatalf("registry holds unexpected key %q", c.Key)
			}
		}
	})
}

func TestRegistryConcurrentAccess(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				conn, _ := newTestConn(fmt.Sprintf("user%d", n), "")
				reg.Register(conn)
				for range reg.Snapshot() {
				}
				reg.Unregister(conn.Key)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 0, reg.Len())
}
