package handlers

import (
	"net/http"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/dto"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/middlewares"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/services"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/pkg/log"
)

type NotificationPreferencesHandler struct {
	Service *services.NotificationPreferencesService
}

func NewNotificationPreferencesHandler(svc *services.NotificationPreferencesService) *NotificationPreferencesHandler {
	return &NotificationPreferencesHandler{Service: svc}
}

// GET /api/v1/notifications/preferences
func (h *NotificationPreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middlewares.GetClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	prefs, err := h.Service.Get(r.Context(), claims.UserID)
	if err != nil {
		log.Logger.Error().Err(err).Msg("get preferences failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// PUT /api/v1/notifications/preferences
func (h *NotificationPreferencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := middlewares.GetClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	var req dto.UpdatePreferencesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	prefs, err := h.Service.Get(r.Context(), claims.UserID)
	if err != nil {
		log.Logger.Error().Err(err).Msg("get preferences failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if req.MentionAlerts != nil {
		prefs.MentionAlerts = *req.MentionAlerts
	}
	if req.ProfileAlerts != nil {
		prefs.ProfileAlerts = *req.ProfileAlerts
	}
	if req.RouteAlerts != nil {
		prefs.RouteAlerts = *req.RouteAlerts
	}
	if req.EmailOnTag != nil {
		prefs.EmailOnTag = *req.EmailOnTag
	}
	if err := h.Service.Update(r.Context(), prefs); err != nil {
		log.Logger.Error().Err(err).Msg("update preferences failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}
