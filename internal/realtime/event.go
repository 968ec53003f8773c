package realtime

// Event types understood by the clients. "connected" and "heartbeat" are
// transport-level and per-connection; they are never fanned out.
const (
	EventConnected    = "connected"
	EventHeartbeat    = "heartbeat"
	EventTag          = "tag"
	EventProfileAdded = "profile_added"
	EventRouteUpdate  = "route_update"
	EventStatusChange = "status_change"
)

// Event is one outbound notification before targeting resolution. The
// targeting fields are consumed server-side and never written to the wire.
type Event struct {
	Type        string         `json:"type"`
	TargetUsers []string       `json:"targetUsers,omitempty"`
	TargetZone  string         `json:"targetZone,omitempty"`
	Message     string         `json:"message"`
	Data        map[string]any `json:"data,omitempty"`
}

// wireEvent is the shape serialized into an SSE data frame:
// { type, id, timestamp, message?, data? }.
type wireEvent struct {
	Type      string         `json:"type"`
	ID        string         `json:"id,omitempty"`
	Timestamp string         `json:"timestamp"`
	Message   string         `json:"message,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}
