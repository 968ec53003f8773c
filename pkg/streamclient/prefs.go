package streamclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CategoryPref controls one event category.
type CategoryPref struct {
	Enabled  bool   `json:"enabled"`
	Priority string `json:"priority"` // low, normal, high
}

// Preferences govern whether a delivered event becomes a desktop
// notification, and whether notifications are batched. They do not affect
// the in-app list or the unread counter.
type Preferences struct {
	Categories    map[string]CategoryPref `json:"categories"`
	QuietStart    string                  `json:"quietStart"` // "HH:MM", empty disables quiet hours
	QuietEnd      string                  `json:"quietEnd"`
	BatchEnabled  bool                    `json:"batchEnabled"`
	BatchInterval time.Duration           `json:"batchInterval"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Categories: map[string]CategoryPref{
			"tag":           {Enabled: true, Priority: "high"},
			"profile_added": {Enabled: true, Priority: "normal"},
			"route_update":  {Enabled: true, Priority: "normal"},
			"status_change": {Enabled: true, Priority: "low"},
		},
		BatchInterval: 5 * time.Minute,
	}
}

// PreferenceManager owns the preference state for one user session. It is
// the single place preference reads/writes go through; the consumer holds
// exactly one.
type PreferenceManager struct {
	dir    string
	userID string

	mu    sync.Mutex
	prefs Preferences

	batch []StoredNotification
}

// NewPreferenceManager loads the persisted preferences for the user, or the
// defaults when none exist.
func NewPreferenceManager(dir, userID string) *PreferenceManager {
	m := &PreferenceManager{dir: dir, userID: userID, prefs: DefaultPreferences()}
	b, err := os.ReadFile(m.path())
	if err == nil {
		var p Preferences
		if json.Unmarshal(b, &p) == nil && p.Categories != nil {
			m.prefs = p
		}
	}
	return m
}

func (m *PreferenceManager) path() string {
	return filepath.Join(m.dir, "notification_prefs_"+sanitizeID(m.userID)+".json")
}

func (m *PreferenceManager) Get() Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs
}

func (m *PreferenceManager) Update(p Preferences) error {
	m.mu.Lock()
	m.prefs = p
	m.mu.Unlock()
	return m.save()
}

func (m *PreferenceManager) save() error {
	m.mu.Lock()
	b, err := json.Marshal(m.prefs)
	m.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(m.path(), b, 0644); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// Allow reports whether an event of the given category may surface a
// desktop notification at the given time. Unknown categories default to
// allowed; quiet hours silence everything.
func (m *PreferenceManager) Allow(category string, at time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pref, ok := m.prefs.Categories[category]; ok && !pref.Enabled {
		return false
	}
	return !inQuietWindow(m.prefs.QuietStart, m.prefs.QuietEnd, at)
}

// Batching reports whether delivery should be accumulated instead of
// surfaced immediately.
func (m *PreferenceManager) Batching() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs.BatchEnabled
}

func (m *PreferenceManager) BatchInterval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.prefs.BatchInterval <= 0 {
		return 5 * time.Minute
	}
	return m.prefs.BatchInterval
}

// Enqueue adds a notification to the pending batch.
func (m *PreferenceManager) Enqueue(n StoredNotification) {
	m.mu.Lock()
	m.batch = append(m.batch, n)
	m.mu.Unlock()
}

// DrainBatch returns and clears the pending batch.
func (m *PreferenceManager) DrainBatch() []StoredNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.batch
	m.batch = nil
	return out
}

// inQuietWindow checks whether t's local clock time falls inside the
// [start, end) window. Windows may cross midnight ("22:00" to "07:00").
func inQuietWindow(start, end string, t time.Time) bool {
	if start == "" || end == "" {
		return false
	}
	s, err1 := parseClock(start)
	e, err2 := parseClock(end)
	if err1 != nil || err2 != nil {
		return false
	}
	cur := t.Hour()*60 + t.Minute()
	if s <= e {
		return cur >= s && cur < e
	}
	return cur >= s || cur < e
}

func parseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, errors.New("invalid clock value")
	}
	return t.Hour()*60 + t.Minute(), nil
}
