package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/realtime"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/repository"
)

type recordingSink struct {
	mu     sync.Mutex
	writes int
}

func (s *recordingSink) WriteEvent([]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func setupNotificationService(t *testing.T) (*NotificationService, *gorm.DB, *realtime.Registry) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Notification{}))

	reg := realtime.NewRegistry()
	svc := NewNotificationService(repository.NewNotificationRepo(db), realtime.NewDispatcher(reg))
	return svc, db, reg
}

// A user-targeted dispatch writes one durable row per canonical target and
// delivers live to whoever is connected.
func TestDispatchPersistsPerTargetUser(t *testing.T) {
	svc, db, reg := setupNotificationService(t)

	sink := &recordingSink{}
	conn := realtime.NewConn("alice", "", sink, func() {})
	reg.Register(conn)

	delivered := svc.Dispatch(context.Background(), realtime.Event{
		Type:        realtime.EventTag,
		TargetUsers: []string{"alice", "Super Admin"},
		Message:     "review needed",
	})

	assert.Equal(t, 1, delivered) // only alice is connected
	assert.Equal(t, 1, sink.count())

	var rows []models.Notification
	require.NoError(t, db.Order("user_id").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "SuperAdmin", rows[0].UserID) // canonical spelling
	assert.Equal(t, "alice", rows[1].UserID)
	assert.False(t, rows[0].Read)
}

// Zone broadcasts are live-only: every connection hears them, nothing is
// persisted.
func TestDispatchZoneBroadcastIsLiveOnly(t *testing.T) {
	svc, db, reg := setupNotificationService(t)

	sink := &recordingSink{}
	reg.Register(realtime.NewConn("bob", "Assembly", sink, func() {}))

	delivered := svc.Dispatch(context.Background(), realtime.Event{
		Type:       realtime.EventProfileAdded,
		TargetZone: "Textile",
		Message:    "new profile in Textile",
	})

	assert.Equal(t, 1, delivered)
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

// Dispatch succeeds (and still persists) when nobody is connected.
func TestDispatchWithNoConnections(t *testing.T) {
	svc, db, _ := setupNotificationService(t)

	delivered := svc.Dispatch(context.Background(), realtime.Event{
		Type:        realtime.EventStatusChange,
		TargetUsers: []string{"alice"},
		Message:     "status changed",
	})

	assert.Equal(t, 0, delivered)
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
