package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/dto"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/identity"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/realtime"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/repository"
)

// ErrStopNotOnRoute is returned when the addressed pickup point exists but
// belongs to a different route.
var ErrStopNotOnRoute = errors.New("stop does not belong to route")

type TransportService struct {
	repo     *repository.TransportRepository
	activity *ActivityService
	notifier *NotificationService
}

func NewTransportService(repo *repository.TransportRepository, activity *ActivityService, notifier *NotificationService) *TransportService {
	return &TransportService{repo: repo, activity: activity, notifier: notifier}
}

func (s *TransportService) CreateRoute(ctx context.Context, actor string, req dto.CreateRouteRequest) (*models.TransportRoute, error) {
	route := &models.TransportRoute{
		ID:   uuid.New(),
		Name: req.Name,
		Zone: req.Zone,
	}
	for _, stop := range req.Stops {
		route.Stops = append(route.Stops, models.PickupPoint{
			ID:       uuid.New(),
			RouteID:  route.ID,
			Name:     stop.Name,
			Position: stop.Position,
		})
	}
	if err := s.repo.CreateRoute(route); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("route", req.Name).Msg("Failed to create route")
		return nil, fmt.Errorf("create route: %w", err)
	}
	_ = s.activity.Append(ctx, actor, "route_created", route.Name, map[string]any{"zone": route.Zone})
	return route, nil
}

func (s *TransportService) GetRoute(ctx context.Context, id uuid.UUID) (*models.TransportRoute, error) {
	return s.repo.FindRoute(id)
}

func (s *TransportService) ListRoutes(ctx context.Context, zone string) ([]models.TransportRoute, error) {
	return s.repo.ListRoutes(zone)
}

func (s *TransportService) DeleteRoute(ctx context.Context, actor string, id uuid.UUID) error {
	route, err := s.repo.FindRoute(id)
	if err != nil {
		return fmt.Errorf("find route: %w", err)
	}
	if err := s.repo.DeleteRoute(id); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("route_id", id.String()).Msg("Failed to delete route")
		return fmt.Errorf("delete route: %w", err)
	}
	_ = s.activity.Append(ctx, actor, "route_deleted", route.Name, nil)
	return nil
}

// AssignRider adds a user to a pickup point and announces the change to
// the route's zone. Assigning an already-assigned rider is a no-op.
func (s *TransportService) AssignRider(ctx context.Context, actor string, routeID, stopID uuid.UUID, userID string) error {
	return s.mutateRiders(ctx, actor, routeID, stopID, userID, true)
}

// UnassignRider removes a user from a pickup point.
func (s *TransportService) UnassignRider(ctx context.Context, actor string, routeID, stopID uuid.UUID, userID string) error {
	return s.mutateRiders(ctx, actor, routeID, stopID, userID, false)
}

func (s *TransportService) mutateRiders(ctx context.Context, actor string, routeID, stopID uuid.UUID, userID string, assign bool) error {
	route, err := s.repo.FindRoute(routeID)
	if err != nil {
		return fmt.Errorf("find route: %w", err)
	}
	stop, err := s.repo.FindStop(stopID)
	if err != nil {
		return fmt.Errorf("find stop: %w", err)
	}
	if stop.RouteID != routeID {
		return fmt.Errorf("stop %s on route %s: %w", stopID, routeID, ErrStopNotOnRoute)
	}

	userID = identity.Canonical(userID)
	riders := make([]string, 0, len(stop.Riders)+1)
	present := false
	for _, r := range stop.Riders {
		if r == userID {
			present = true
			if !assign {
				continue
			}
		}
		riders = append(riders, r)
	}
	if assign {
		if present {
			return nil
		}
		riders = append(riders, userID)
	} else if !present {
		return nil
	}
	stop.Riders = riders
	if err := s.repo.UpdateStop(stop); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("stop_id", stopID.String()).Msg("Failed to update pickup point")
		return fmt.Errorf("update stop: %w", err)
	}

	action, verb := "rider_assigned", "assigned to"
	if !assign {
		action, verb = "rider_unassigned", "removed from"
	}
	_ = s.activity.Append(ctx, actor, action, userID,
		map[string]any{"route": route.Name, "stop": stop.Name})
	s.notifier.Dispatch(ctx, realtime.Event{
		Type:       realtime.EventRouteUpdate,
		TargetZone: route.Zone,
		Message:    fmt.Sprintf("%s was %s %s at %s", userID, verb, route.Name, stop.Name),
		Data:       map[string]any{"routeId": route.ID.String(), "stopId": stop.ID.String(), "userId": userID},
	})
	return nil
}
