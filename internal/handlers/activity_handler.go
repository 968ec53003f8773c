package handlers

import (
	"net/http"
	"strconv"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/services"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/pkg/log"
)

type ActivityHandler struct {
	Service *services.ActivityService
}

func NewActivityHandler(svc *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: svc}
}

// GET /api/v1/admin/activity?actor=&target=&limit=&offset=
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	offset, _ := strconv.Atoi(q.Get("offset"))
	entries, err := h.Service.List(r.Context(), q.Get("actor"), q.Get("target"), limit, offset)
	if err != nil {
		log.Logger.Error().Err(err).Msg("list activity failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
