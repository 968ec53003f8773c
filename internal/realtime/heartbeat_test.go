package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeartbeatWritesPeriodically(t *testing.T) {
	reg := NewRegistry()
	sink := &fakeSink{}
	ctx, cancel := context.WithCancel(context.Background())
	conn := NewConn("alice", "", sink, cancel)
	reg.Register(conn)

	startHeartbeat(ctx, reg, conn, 10*time.Millisecond)

	require.Eventually(t, func() bool { return sink.count() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	var ev wireEvent
	sink.mu.Lock()
	require.NoError(t, json.Unmarshal(sink.writes[0], &ev))
	sink.mu.Unlock()
	assert.Equal(t, EventHeartbeat, ev.Type)
	assert.NotEmpty(t, ev.Timestamp)
	assert.Equal(t, 1, reg.Len())
}

// A failed heartbeat write removes the connection from the registry and a
// subsequent dispatch targeting that user reaches zero connections.
func TestHeartbeatFailureReapsConnection(t *testing.T) {
	reg := NewRegistry()
	d := NewDispatcher(reg)
	sink := &fakeSink{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	conn := NewConn("alice", "", sink, cancel)
	reg.Register(conn)

	startHeartbeat(ctx, reg, conn, 10*time.Millisecond)

	// Let the first tick succeed, then break the sink; the second tick
	// reaps the connection.
	require.Eventually(t, func() bool { return sink.count() >= 1 }, time.Second, 5*time.Millisecond)
	sink.setFail(true)
	require.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, 5*time.Millisecond)

	delivered := d.Send(Event{Type: EventTag, TargetUsers: []string{"alice"}, Message: "hi"})
	assert.Equal(t, 0, delivered)
}

// Cancelling the connection context stops the heartbeat without reaping a
// healthy registration (the endpoint's teardown does the unregister).
func TestHeartbeatStopsOnCancel(t *testing.T) {
	reg := NewRegistry()
	sink := &fakeSink{}
	ctx, cancel := context.WithCancel(context.Background())
	conn := NewConn("alice", "", sink, cancel)
	reg.Register(conn)

	startHeartbeat(ctx, reg, conn, 10*time.Millisecond)
	require.Eventually(t, func() bool { return sink.count() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()

	n := sink.count()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, sink.count(), n+1) // at most one in-flight tick after cancel
}
