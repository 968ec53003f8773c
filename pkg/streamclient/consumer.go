package streamclient

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/pkg/log"
)

// MaxStored caps the local notification list; the oldest entries are
// evicted first.
const MaxStored = 200

// State is the consumer's connection state.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return "disconnected"
	}
}

// Notifier surfaces one notification to the platform (desktop toast,
// system tray). A nil notifier, or one gated off by denied permission,
// disables the side effect only; list and counter behavior is unchanged.
type Notifier func(n StoredNotification)

// Consumer maintains one logical subscription per user session: it filters
// transport events, keeps the capped, deduplicated notification list with
// an unread counter, persists both across restarts, and exposes the local
// read-state mutations. All mutations are synchronous and local; durable
// read state lives server-side behind a separate API.
type Consumer struct {
	userID   string
	userZone string
	store    *Store
	prefs    *PreferenceManager
	notify   Notifier

	mu            sync.Mutex
	state         State
	notifications []StoredNotification
	unread        int
	seen          map[string]struct{}

	cancel context.CancelFunc
}

// ConsumerOption configures a Consumer.
type ConsumerOption func(*Consumer)

// WithNotifier installs the desktop-notification callback. Callers that
// were denied platform permission simply pass nil (or omit the option).
func WithNotifier(n Notifier) ConsumerOption {
	return func(c *Consumer) { c.notify = n }
}

// WithZone declares the user's zone on the stream URL. The server does not
// re-validate it.
func WithZone(zone string) ConsumerOption {
	return func(c *Consumer) { c.userZone = zone }
}

// NewConsumer loads the user's persisted notifications and preferences and
// returns a consumer in the Disconnected state.
func NewConsumer(userID, stateDir string, opts ...ConsumerOption) *Consumer {
	c := &Consumer{
		userID: userID,
		store:  NewStore(stateDir),
		prefs:  NewPreferenceManager(stateDir, userID),
		seen:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	list, err := c.store.Load(userID)
	if err != nil {
		log.Logger.Warn().Err(err).Str("user_id", userID).Msg("failed to load persisted notifications")
	}
	c.notifications = list
	for _, n := range list {
		if n.ID != "" {
			c.seen[n.ID] = struct{}{}
		}
		if !n.Read {
			c.unread++
		}
	}
	return c
}

// Start opens the stream against baseURL and consumes it until Close is
// called or ctx is cancelled. It returns immediately; consumption runs in
// the background.
func (c *Consumer) Start(ctx context.Context, baseURL string) {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	c.state = StateConnecting
	ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	q := url.Values{}
	q.Set("userId", c.userID)
	if c.userZone != "" {
		q.Set("userZone", c.userZone)
	}
	stream := &Stream{
		URL: baseURL + "/api/v1/notifications/stream?" + q.Encode(),
		OnOpen: func() {
			c.setState(StateConnected)
		},
		OnError: func(error) {
			c.setState(StateDisconnected)
		},
	}
	go func() {
		stream.Run(ctx, c.Ingest)
		// Run only returns on cancellation; reflect the terminal state.
		c.mu.Lock()
		if c.state != StateClosed {
			c.state = StateDisconnected
		}
		c.mu.Unlock()
	}()
	if c.prefs.Batching() && c.notify != nil {
		go c.batchLoop(ctx)
	}
}

// Close tears the subscription down. Safe to call from any state,
// including before Start or twice; the consumer ends Closed either way.
func (c *Consumer) Close() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.state = StateClosed
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (c *Consumer) setState(s State) {
	c.mu.Lock()
	if c.state != StateClosed {
		c.state = s
	}
	c.mu.Unlock()
}

// State returns the current connection state.
func (c *Consumer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Ingest processes one raw payload from the stream. Transport-level events
// (connected, heartbeat) are discarded without side effects; a malformed
// payload is dropped and logged, never fatal to the stream. Application
// events are deduplicated by id, prepended to the capped list, counted
// unread, persisted, and optionally surfaced via the notifier.
func (c *Consumer) Ingest(raw []byte) {
	var ev struct {
		Type      string         `json:"type"`
		ID        string         `json:"id"`
		Timestamp string         `json:"timestamp"`
		Message   string         `json:"message"`
		Data      map[string]any `json:"data"`
	}
	if err := json.Unmarshal(raw, &ev); err != nil {
		log.Logger.Warn().Err(err).Msg("dropping malformed notification payload")
		return
	}
	if ev.Type == "heartbeat" || ev.Type == "connected" {
		return
	}

	n := StoredNotification{
		ID:        ev.ID,
		Type:      ev.Type,
		Message:   ev.Message,
		Data:      ev.Data,
		Timestamp: ev.Timestamp,
	}

	c.mu.Lock()
	if n.ID != "" {
		if _, dup := c.seen[n.ID]; dup {
			c.mu.Unlock()
			return
		}
		c.seen[n.ID] = struct{}{}
	}
	c.notifications = append([]StoredNotification{n}, c.notifications...)
	if len(c.notifications) > MaxStored {
		for _, old := range c.notifications[MaxStored:] {
			if !old.Read {
				c.unread--
			}
			delete(c.seen, old.ID)
		}
		c.notifications = c.notifications[:MaxStored]
	}
	c.unread++
	c.persistLocked()
	c.mu.Unlock()

	if c.notify != nil && c.prefs.Allow(n.Type, time.Now()) {
		if c.prefs.Batching() {
			c.prefs.Enqueue(n)
		} else {
			c.notify(n)
		}
	}
}

// batchLoop flushes accumulated notifications at the configured interval,
// surfacing each batch as individual notifier calls.
func (c *Consumer) batchLoop(ctx context.Context) {
	t := time.NewTicker(c.prefs.BatchInterval())
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			for _, n := range c.prefs.DrainBatch() {
				c.notify(n)
			}
		}
	}
}

// Notifications returns a copy of the current list, newest first.
func (c *Consumer) Notifications() []StoredNotification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]StoredNotification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

// Unread returns the current unread count.
func (c *Consumer) Unread() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unread
}

// MarkAsRead flips one record to read. The counter only moves when the
// record actually changed state, so repeated calls are harmless.
func (c *Consumer) MarkAsRead(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notifications {
		if c.notifications[i].ID == id {
			if !c.notifications[i].Read {
				c.notifications[i].Read = true
				c.unread--
			}
			break
		}
	}
	c.persistLocked()
}

// MarkAllAsRead flips every record and zeroes the counter. Idempotent.
func (c *Consumer) MarkAllAsRead() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notifications {
		c.notifications[i].Read = true
	}
	c.unread = 0
	c.persistLocked()
}

// ClearNotifications empties the list, zeroes the counter, and removes the
// persisted entry.
func (c *Consumer) ClearNotifications() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = nil
	c.unread = 0
	c.seen = make(map[string]struct{})
	if err := c.store.Clear(c.userID); err != nil {
		log.Logger.Warn().Err(err).Str("user_id", c.userID).Msg("failed to clear persisted notifications")
	}
}

// Preferences exposes the preference manager for UI wiring.
func (c *Consumer) Preferences() *PreferenceManager {
	return c.prefs
}

func (c *Consumer) persistLocked() {
	if err := c.store.Save(c.userID, c.notifications); err != nil {
		log.Logger.Warn().Err(err).Str("user_id", c.userID).Msg("failed to persist notifications")
	}
}
