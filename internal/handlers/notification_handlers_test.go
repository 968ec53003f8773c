package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/realtime"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/repository"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/services"
)

// setupNotificationAPI wires an in-memory store behind the notification
// endpoints, the same shape the server wires in main.
func setupNotificationAPI(t *testing.T) (*mux.Router, *gorm.DB, *services.NotificationService) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Notification{}))

	svc := services.NewNotificationService(
		repository.NewNotificationRepo(db),
		realtime.NewDispatcher(realtime.NewRegistry()),
	)
	h := NewNotificationHandler(svc)

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/notifications", h.Query).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/notifications", h.Mutate).Methods(http.MethodPost)
	return router, db, svc
}

func seedNotification(t *testing.T, db *gorm.DB, userID, msg string, read bool) uuid.UUID {
	t.Helper()
	n := models.Notification{ID: uuid.New(), UserID: userID, Type: "tag", Message: msg, Read: read}
	require.NoError(t, db.Create(&n).Error)
	return n.ID
}

func TestNotificationQueryRequiresUserID(t *testing.T) {
	router, _, _ := setupNotificationAPI(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "userId is required")
}

func TestNotificationUnreadCount(t *testing.T) {
	router, db, _ := setupNotificationAPI(t)
	seedNotification(t, db, "alice", "a", false)
	seedNotification(t, db, "alice", "b", true)
	seedNotification(t, db, "bob", "c", false)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/notifications?userId=alice&action=unreadCount", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"unreadCount":1}`, rr.Body.String())
}

func TestNotificationListFiltersUnread(t *testing.T) {
	router, db, _ := setupNotificationAPI(t)
	seedNotification(t, db, "alice", "old-read", true)
	seedNotification(t, db, "alice", "new-unread", false)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/notifications?userId=alice&unread=true", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "new-unread")
	assert.NotContains(t, rr.Body.String(), "old-read")

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/notifications?userId=alice", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "old-read")
}

func TestNotificationMarkAsRead(t *testing.T) {
	router, db, _ := setupNotificationAPI(t)
	id := seedNotification(t, db, "alice", "a", false)

	t.Run("invalid id is rejected", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/notifications?userId=alice&action=markAsRead&id=nope", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("marks the row", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/notifications?userId=alice&action=markAsRead&id="+id.String(), nil))
		assert.Equal(t, http.StatusNoContent, rr.Code)

		var n models.Notification
		require.NoError(t, db.First(&n, "id = ?", id).Error)
		assert.True(t, n.Read)
	})

	t.Run("other users cannot flip it", func(t *testing.T) {
		otherID := seedNotification(t, db, "alice", "b", false)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/notifications?userId=bob&action=markAsRead&id="+otherID.String(), nil))
		assert.Equal(t, http.StatusNoContent, rr.Code)

		var n models.Notification
		require.NoError(t, db.First(&n, "id = ?", otherID).Error)
		assert.False(t, n.Read)
	})
}

func TestNotificationMarkAllAsRead(t *testing.T) {
	router, db, _ := setupNotificationAPI(t)
	seedNotification(t, db, "alice", "a", false)
	seedNotification(t, db, "alice", "b", false)
	seedNotification(t, db, "bob", "c", false)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/notifications?userId=alice&action=markAllAsRead", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	var unreadAlice, unreadBob int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ? AND read = FALSE", "alice").Count(&unreadAlice).Error)
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ? AND read = FALSE", "bob").Count(&unreadBob).Error)
	assert.Zero(t, unreadAlice)
	assert.Equal(t, int64(1), unreadBob)

	// Repeating the call is harmless.
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/notifications?userId=alice&action=markAllAsRead", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestNotificationUnknownActionRejected(t *testing.T) {
	router, _, _ := setupNotificationAPI(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/notifications?userId=alice&action=explode", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unknown action")
}

// Rows are stored under the canonical identity, and queries for the legacy
// spelling find them.
func TestNotificationQueryCanonicalizesUserID(t *testing.T) {
	router, db, _ := setupNotificationAPI(t)
	seedNotification(t, db, "SuperAdmin", "for the admin", false)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/notifications?userId=Super%20Admin&action=unreadCount", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"unreadCount":1}`, rr.Body.String())
}
