package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/dto"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/services"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/pkg/log"
)

type TransportHandler struct {
	Service *services.TransportService
}

func NewTransportHandler(svc *services.TransportService) *TransportHandler {
	return &TransportHandler{Service: svc}
}

// POST /api/v1/transport/routes
func (h *TransportHandler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRouteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	route, err := h.Service.CreateRoute(r.Context(), actorFrom(r), req)
	if err != nil {
		log.Logger.Error().Err(err).Msg("create route failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusCreated, route)
}

// GET /api/v1/transport/routes?zone=
func (h *TransportHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.Service.ListRoutes(r.Context(), r.URL.Query().Get("zone"))
	if err != nil {
		log.Logger.Error().Err(err).Msg("list routes failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, routes)
}

// GET /api/v1/transport/routes/{id}
func (h *TransportHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	route, err := h.Service.GetRoute(r.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "route not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, route)
}

// DELETE /api/v1/transport/routes/{id}
func (h *TransportHandler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Service.DeleteRoute(r.Context(), actorFrom(r), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "route not found")
			return
		}
		log.Logger.Error().Err(err).Msg("delete route failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/transport/routes/{id}/stops/{stopId}/riders
func (h *TransportHandler) AssignRider(w http.ResponseWriter, r *http.Request) {
	h.mutateRider(w, r, true)
}

// DELETE /api/v1/transport/routes/{id}/stops/{stopId}/riders
func (h *TransportHandler) UnassignRider(w http.ResponseWriter, r *http.Request) {
	h.mutateRider(w, r, false)
}

func (h *TransportHandler) mutateRider(w http.ResponseWriter, r *http.Request, assign bool) {
	vars := mux.Vars(r)
	routeID, err := uuid.Parse(vars["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid route id")
		return
	}
	stopID, err := uuid.Parse(vars["stopId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid stop id")
		return
	}
	var req dto.AssignRiderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if assign {
		err = h.Service.AssignRider(r.Context(), actorFrom(r), routeID, stopID, req.UserID)
	} else {
		err = h.Service.UnassignRider(r.Context(), actorFrom(r), routeID, stopID, req.UserID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "route or stop not found")
			return
		}
		if errors.Is(err, services.ErrStopNotOnRoute) {
			writeError(w, http.StatusNotFound, "stop not on this route")
			return
		}
		log.Logger.Error().Err(err).Msg("rider assignment failed")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
