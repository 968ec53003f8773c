package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/dto"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/services"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/pkg/log"
)

type CommentHandler struct {
	Service *services.CommentService
}

func NewCommentHandler(svc *services.CommentService) *CommentHandler {
	return &CommentHandler{Service: svc}
}

// POST /api/v1/profiles/{id}/comments
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}
	var req dto.AddCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	comment, err := h.Service.Add(r.Context(), profileID, actorFrom(r), req.Text)
	if err != nil {
		log.Logger.Error().Err(err).Msg("add comment failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// GET /api/v1/profiles/{id}/comments
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}
	comments, err := h.Service.ListByProfile(r.Context(), profileID)
	if err != nil {
		log.Logger.Error().Err(err).Msg("list comments failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, comments)
}
