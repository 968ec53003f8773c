package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/repository"
)

type ActivityService struct {
	repo *repository.ActivityRepository
}

func NewActivityService(repo *repository.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// Append records one activity entry. Failures are logged but returned so
// callers can decide whether the operation itself should fail; most treat
// the log as best-effort.
func (s *ActivityService) Append(ctx context.Context, actor, action, target string, details map[string]any) error {
	var payload datatypes.JSON
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("encode activity details: %w", err)
		}
		payload = b
	}
	entry := &models.ActivityLog{
		ID:      uuid.New(),
		Actor:   actor,
		Action:  action,
		Target:  target,
		Details: payload,
	}
	if err := s.repo.Append(entry); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("actor", actor).Str("action", action).Msg("Failed to append activity log")
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

func (s *ActivityService) List(ctx context.Context, actor, target string, limit, offset int) ([]models.ActivityLog, error) {
	entries, err := s.repo.List(actor, target, limit, offset)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to list activity log")
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return entries, nil
}
