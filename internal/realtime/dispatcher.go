package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/identity"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/pkg/log"
)

// Dispatcher fans one event out to the live connections matching its
// targeting rule. Delivery is best-effort and fire-and-forget: the caller
// never sees a failure, and one broken connection never aborts the loop.
type Dispatcher struct {
	reg *Registry
}

func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{reg: reg}
}

// Send assigns the event id and timestamp, serializes the wire payload
// once, and writes it to every matching connection in a stable snapshot of
// the registry. A write failure reaps that connection and the loop
// continues. Returns the number of connections delivered to.
//
// Matching: exact canonical userId match against TargetUsers; any event
// carrying a TargetZone goes to every live connection regardless of the
// connection's own zone; zone filtering is the event creator's job, done
// before calling Send. An event with neither field matches nobody.
func (d *Dispatcher) Send(ev Event) int {
	wire := wireEvent{
		Type:      ev.Type,
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Message:   ev.Message,
		Data:      ev.Data,
	}
	payload, err := json.Marshal(wire)
	if err != nil {
		log.Logger.Error().Err(err).Str("type", ev.Type).Msg("failed to serialize notification event")
		return 0
	}

	targets := make(map[string]struct{}, len(ev.TargetUsers))
	for _, u := range ev.TargetUsers {
		targets[identity.Canonical(u)] = struct{}{}
	}

	delivered := 0
	for _, c := range d.reg.Snapshot() {
		_, userMatch := targets[c.UserID]
		if !userMatch && ev.TargetZone == "" {
			continue
		}
		if err := c.Send(payload); err != nil {
			log.Logger.Debug().Err(err).
				Str("conn_key", c.Key).
				Str("user_id", c.UserID).
				Msg("dispatch write failed, reaping connection")
			d.reg.Unregister(c.Key)
			c.Close()
			connectionsReaped.Inc()
			continue
		}
		delivered++
	}
	eventsDispatched.WithLabelValues(ev.Type).Inc()
	eventsDelivered.Add(float64(delivered))
	return delivered
}
