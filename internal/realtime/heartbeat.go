package realtime

import (
	"context"
	"time"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/pkg/log"
)

// DefaultHeartbeatInterval keeps idle connections alive through proxies.
const DefaultHeartbeatInterval = 30 * time.Second

// startHeartbeat runs one goroutine that writes a heartbeat event to the
// connection at a fixed interval. A failed write is the primary
// dead-connection signal: the connection is unregistered and closed, and
// the goroutine exits. Cancellation of ctx (client disconnect) stops the
// ticker before the next tick. Write failures are logged, never propagated.
func startHeartbeat(ctx context.Context, reg *Registry, c *Conn, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				ev := wireEvent{Type: EventHeartbeat, Timestamp: time.Now().UTC().Format(time.RFC3339)}
				if err := c.sendEvent(ev); err != nil {
					log.Logger.Debug().Err(err).
						Str("conn_key", c.Key).
						Str("user_id", c.UserID).
						Msg("heartbeat write failed, reaping connection")
					reg.Unregister(c.Key)
					c.Close()
					connectionsReaped.Inc()
					return
				}
			}
		}
	}()
}
