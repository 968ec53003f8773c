package handlers

import (
	"net/http"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/dto"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/realtime"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/services"
)

// SendNotificationHandler is the dispatch entry point. It always returns
// success with the live delivery count; zero matches is not an error, and
// an event with no targeting fields is accepted and delivered to nobody.
//
// POST /api/v1/notifications/send
func SendNotificationHandler(svc *services.NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.SendNotificationRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}
		delivered := svc.Dispatch(r.Context(), realtime.Event{
			Type:        req.Type,
			TargetUsers: req.TargetUsers,
			TargetZone:  req.TargetZone,
			Message:     req.Message,
			Data:        req.Data,
		})
		writeJSON(w, http.StatusOK, map[string]int{"delivered": delivered})
	}
}
