package streamclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StoredNotification is the persisted, user-visible record derived from a
// received event plus the local read flag.
type StoredNotification struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp string         `json:"timestamp"`
	Read      bool           `json:"read"`
}

// Store persists the notification list between sessions, one JSON document
// per user under "notifications_<userId>.json". Switching identity simply
// orphans the previous user's file.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(userID string) string {
	return filepath.Join(s.dir, "notifications_"+sanitizeID(userID)+".json")
}

// Load returns the persisted list for a user, or an empty list when none
// has been written yet.
func (s *Store) Load(userID string) ([]StoredNotification, error) {
	b, err := os.ReadFile(s.path(userID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("load notifications: %w", err)
	}
	var list []StoredNotification
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	return list, nil
}

func (s *Store) Save(userID string, list []StoredNotification) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode notifications: %w", err)
	}
	if err := os.WriteFile(s.path(userID), b, 0644); err != nil {
		return fmt.Errorf("save notifications: %w", err)
	}
	return nil
}

// Clear removes the user's persisted entry. Missing files are fine.
func (s *Store) Clear(userID string) error {
	err := os.Remove(s.path(userID))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear notifications: %w", err)
	}
	return nil
}

// sanitizeID keeps user identities from escaping the state directory.
func sanitizeID(id string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", "..", "_", " ", "_")
	return r.Replace(id)
}
