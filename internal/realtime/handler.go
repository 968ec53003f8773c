package realtime

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/identity"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/pkg/log"
)

// StreamHandler binds one incoming request to one long-lived SSE stream:
// register, send "connected", start the heartbeat, then block until the
// client goes away. Teardown (cancel heartbeat, unregister, close) runs on
// every exit path.
//
// GET /api/v1/notifications/stream?userId=<string>&userZone=<string>
func StreamHandler(reg *Registry, heartbeatInterval time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := decodeParam(r.URL.Query().Get("userId"))
		if userID == "" {
			http.Error(w, "userId is required", http.StatusBadRequest)
			return
		}
		userZone := decodeParam(r.URL.Query().Get("userZone"))

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("X-Accel-Buffering", "no")

		ctx, cancel := context.WithCancel(r.Context())
		conn := NewConn(identity.Canonical(userID), userZone, &httpSink{w: w, f: flusher}, cancel)
		reg.Register(conn)
		defer func() {
			reg.Unregister(conn.Key)
			conn.Close()
		}()

		log.Logger.Info().
			Str("conn_key", conn.Key).
			Str("user_id", conn.UserID).
			Str("user_zone", conn.UserZone).
			Msg("notification stream connected")

		connected := wireEvent{
			Type:      EventConnected,
			Message:   "Connected to notifications",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		if err := conn.sendEvent(connected); err != nil {
			return
		}

		startHeartbeat(ctx, reg, conn, heartbeatInterval)

		// Hold the stream open until the client disconnects or the
		// connection is reaped.
		<-ctx.Done()
		log.Logger.Info().
			Str("conn_key", conn.Key).
			Str("user_id", conn.UserID).
			Msg("notification stream closed")
	}
}

// decodeParam percent-decodes a query value once, and only when it still
// contains a '%'. The HTTP layer already decodes query parameters; some
// callers send pre-encoded values, which would otherwise arrive
// double-encoded. Decoding unconditionally would corrupt literal values.
func decodeParam(v string) string {
	if !strings.Contains(v, "%") {
		return v
	}
	dec, err := url.QueryUnescape(v)
	if err != nil {
		return v
	}
	return dec
}
