package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"
)

type NotificationPreferencesRepo struct {
	db *gorm.DB
}

func NewNotificationPreferencesRepo(db *gorm.DB) *NotificationPreferencesRepo {
	return &NotificationPreferencesRepo{db: db}
}

// Get returns the stored preferences, or the defaults when the user has
// never saved any.
func (r *NotificationPreferencesRepo) Get(userID string) (*models.NotificationPreferences, error) {
	var preferences models.NotificationPreferences
	if err := r.db.First(&preferences, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.NotificationPreferences{
				UserID:        userID,
				MentionAlerts: true,
				ProfileAlerts: true,
				RouteAlerts:   true,
			}, nil
		}
		return nil, err
	}
	return &preferences, nil
}

func (r *NotificationPreferencesRepo) Update(preferences *models.NotificationPreferences) error {
	return r.db.Save(preferences).Error
}
