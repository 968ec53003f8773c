package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

var errConnClosed = errors.New("connection closed")

// EventSink writes one serialized event to the client. Implementations do
// not need to be safe for concurrent use; Conn serializes writes so that
// heartbeats and dispatched events on one connection are strictly ordered.
type EventSink interface {
	WriteEvent(data []byte) error
}

// Conn is one live client subscription. It exclusively owns its sink and a
// cancel func covering the connection's lifetime; Close releases both and
// is safe to call from any goroutine, any number of times.
type Conn struct {
	Key      string
	UserID   string // canonical
	UserZone string // client-declared at connect time, not re-validated

	sink   EventSink
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewConn builds a connection with the composite key
// "<userID>-<acceptance timestamp>". Nanosecond resolution keeps two tabs
// of the same user opened back to back from colliding.
// The caller passes the already-canonicalized userID and the cancel func
// of the connection-scoped context.
func NewConn(userID, userZone string, sink EventSink, cancel context.CancelFunc) *Conn {
	return &Conn{
		Key:      fmt.Sprintf("%s-%d", userID, time.Now().UnixNano()),
		UserID:   userID,
		UserZone: userZone,
		sink:     sink,
		cancel:   cancel,
	}
}

// Send writes one serialized payload to the sink. Returns errConnClosed
// once the connection has been reaped, so a dispatcher holding a stale
// snapshot never writes to a dead sink twice.
func (c *Conn) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errConnClosed
	}
	return c.sink.WriteEvent(payload)
}

func (c *Conn) sendEvent(ev wireEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return c.Send(b)
}

// Close marks the connection dead and cancels its context. Idempotent.
func (c *Conn) Close() {
	c.mu.Lock()
	already := c.closed
	c.closed = true
	c.mu.Unlock()
	if !already && c.cancel != nil {
		c.cancel()
	}
}

// httpSink frames events as SSE messages over a ResponseWriter and flushes
// each one so intermediaries deliver immediately.
type httpSink struct {
	w http.ResponseWriter
	f http.Flusher
}

func (s *httpSink) WriteEvent(data []byte) error {
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	s.f.Flush()
	return nil
}
