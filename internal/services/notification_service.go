package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/identity"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/realtime"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/repository"
)

// NotificationService joins the durable notification store to the live
// dispatcher. The store is the system of record for read state; the live
// stream is best-effort and may deliver to zero connections.
type NotificationService struct {
	repo       *repository.NotificationRepo
	dispatcher *realtime.Dispatcher
}

func NewNotificationService(repo *repository.NotificationRepo, dispatcher *realtime.Dispatcher) *NotificationService {
	return &NotificationService{repo: repo, dispatcher: dispatcher}
}

// Dispatch fans an event out to live connections and, for user-targeted
// events, appends one durable row per resolved target. Zone broadcasts are
// live-only. Persistence failures are logged, never surfaced; dispatch has
// no failure mode visible to callers. Returns the live delivery count.
func (s *NotificationService) Dispatch(ctx context.Context, ev realtime.Event) int {
	for _, target := range identity.CanonicalAll(ev.TargetUsers) {
		var data []byte
		if ev.Data != nil {
			data, _ = json.Marshal(ev.Data)
		}
		n := &models.Notification{
			ID:      uuid.New(),
			UserID:  target,
			Type:    ev.Type,
			Message: ev.Message,
			Data:    data,
		}
		if err := s.repo.Create(n); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("user_id", target).Msg("Failed to persist notification")
		}
	}
	return s.dispatcher.Send(ev)
}

func (s *NotificationService) List(ctx context.Context, userID string, unread bool, limit int) ([]models.Notification, error) {
	list, err := s.repo.List(identity.Canonical(userID), unread, limit)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user_id", userID).Msg("Failed to list notifications")
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return list, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.repo.UnreadCount(identity.Canonical(userID))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user_id", userID).Msg("Failed to count unread notifications")
		return 0, fmt.Errorf("unread count: %w", err)
	}
	return count, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID string, id uuid.UUID) error {
	if err := s.repo.MarkRead(identity.Canonical(userID), id); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user_id", userID).Str("notif_id", id.String()).Msg("Failed to mark notification as read")
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.repo.MarkAllRead(identity.Canonical(userID)); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user_id", userID).Msg("Failed to mark all notifications as read")
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
