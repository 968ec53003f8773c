package realtime

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamHandlerRejectsMissingUserID(t *testing.T) {
	reg := NewRegistry()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/stream", nil)
	rec := httptest.NewRecorder()

	StreamHandler(reg, time.Second)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, reg.Len())
}

// readSSEEvent reads one "data: ..." frame from the stream.
func readSSEEvent(t *testing.T, r *bufio.Reader) wireEvent {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if strings.HasPrefix(line, "data: ") {
			var ev wireEvent
			require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
			// consume the trailing blank line
			_, err = r.ReadString('\n')
			require.NoError(t, err)
			return ev
		}
	}
}

// A connecting client is registered, greeted with a connected event, then
// receives heartbeats; closing the request tears the registration down.
func TestStreamHandlerLifecycle(t *testing.T) {
	reg := NewRegistry()
	srv := httptest.NewServer(StreamHandler(reg, 20*time.Millisecond))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "?userId=alice&userZone=Textile")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")
	assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))

	reader := bufio.NewReader(resp.Body)
	first := readSSEEvent(t, reader)
	assert.Equal(t, EventConnected, first.Type)
	assert.Equal(t, "Connected to notifications", first.Message)
	assert.NotEmpty(t, first.Timestamp)

	require.Eventually(t, func() bool { return reg.Len() == 1 }, time.Second, 5*time.Millisecond)
	snap := reg.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "alice", snap[0].UserID)
	assert.Equal(t, "Textile", snap[0].UserZone)

	second := readSSEEvent(t, reader)
	assert.Equal(t, EventHeartbeat, second.Type)

	// Client disconnect must deregister promptly, without waiting for a
	// failed heartbeat.
	resp.Body.Close()
	require.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, 5*time.Millisecond)
}

// Dispatched events reach the connected client over the wire, interleaved
// with heartbeats, and transport events never carry targeting fields.
func TestStreamHandlerReceivesDispatchedEvent(t *testing.T) {
	reg := NewRegistry()
	d := NewDispatcher(reg)
	srv := httptest.NewServer(StreamHandler(reg, time.Minute))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "?userId=alice")
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	_ = readSSEEvent(t, reader) // connected

	require.Eventually(t, func() bool { return reg.Len() == 1 }, time.Second, 5*time.Millisecond)
	delivered := d.Send(Event{Type: EventTag, TargetUsers: []string{"alice"}, Message: "ping"})
	assert.Equal(t, 1, delivered)

	ev := readSSEEvent(t, reader)
	assert.Equal(t, EventTag, ev.Type)
	assert.Equal(t, "ping", ev.Message)
	assert.NotEmpty(t, ev.ID)
}

// The super-admin identity is canonicalized at connect time, so a stream
// opened as "Super Admin" receives events targeted at "SuperAdmin".
func TestStreamHandlerCanonicalizesUserID(t *testing.T) {
	reg := NewRegistry()
	srv := httptest.NewServer(StreamHandler(reg, time.Minute))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "?userId=Super%20Admin")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Eventually(t, func() bool { return reg.Len() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "SuperAdmin", reg.Snapshot()[0].UserID)
}

func TestDecodeParam(t *testing.T) {
	// Already-decoded values pass through untouched.
	assert.Equal(t, "Mohamed Alami", decodeParam("Mohamed Alami"))
	// Values that arrive still percent-encoded are decoded once.
	assert.Equal(t, "Mohamed Alami", decodeParam("Mohamed%20Alami"))
	// A literal '%' with invalid encoding is left alone.
	assert.Equal(t, "100%", decodeParam("100%"))
}
