package services

import (
	"context"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/identity"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/repository"
)

type NotificationPreferencesService struct {
	repo *repository.NotificationPreferencesRepo
}

func NewNotificationPreferencesService(repo *repository.NotificationPreferencesRepo) *NotificationPreferencesService {
	return &NotificationPreferencesService{repo: repo}
}

func (s *NotificationPreferencesService) Get(ctx context.Context, userID string) (*models.NotificationPreferences, error) {
	return s.repo.Get(identity.Canonical(userID))
}

func (s *NotificationPreferencesService) Update(ctx context.Context, preferences *models.NotificationPreferences) error {
	preferences.UserID = identity.Canonical(preferences.UserID)
	return s.repo.Update(preferences)
}
