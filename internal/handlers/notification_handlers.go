package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/services"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/pkg/log"
)

// NotificationHandler serves the durable notification store: list,
// unread count, and read-state mutations. Read state set here is the
// system of record; the live stream consumer keeps only an optimistic
// local cache.
type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(svc *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

// Query handles GET /api/v1/notifications?userId=&action=unreadCount and
// plain GET list with unread= and limit= filters.
func (h *NotificationHandler) Query(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	if r.URL.Query().Get("action") == "unreadCount" {
		count, err := h.Service.UnreadCount(r.Context(), userID)
		if err != nil {
			log.Logger.Error().Err(err).Msg("unread count failed")
			writeError(w, http.StatusInternalServerError, "server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"unreadCount": count})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	onlyUnread, _ := strconv.ParseBool(r.URL.Query().Get("unread"))

	list, err := h.Service.List(r.Context(), userID, onlyUnread, limit)
	if err != nil {
		log.Logger.Error().Err(err).Msg("notifications list failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Mutate handles POST /api/v1/notifications?userId=&action=markAsRead|markAllAsRead.
// markAsRead additionally requires id= (the notification id).
func (h *NotificationHandler) Mutate(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	switch r.URL.Query().Get("action") {
	case "markAsRead":
		notifID, err := uuid.Parse(r.URL.Query().Get("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid notification id")
			return
		}
		if err := h.Service.MarkRead(r.Context(), userID, notifID); err != nil {
			log.Logger.Error().Err(err).Msg("mark read failed")
			writeError(w, http.StatusInternalServerError, "server error")
			return
		}
	case "markAllAsRead":
		if err := h.Service.MarkAllRead(r.Context(), userID); err != nil {
			log.Logger.Error().Err(err).Msg("mark all read failed")
			writeError(w, http.StatusInternalServerError, "server error")
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
