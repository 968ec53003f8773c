package repository

import (
	"gorm.io/gorm"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"

	"github.com/google/uuid"
)

type NotificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// Create inserts a new notification record. UserID must already be canonical.
func (r *NotificationRepo) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

// List retrieves notifications for a user, newest first, with optional
// filtering by unread status.
func (r *NotificationRepo) List(userID string, onlyUnread bool, limit int) ([]models.Notification, error) {
	query := r.db.Where("user_id = ?", userID)
	if onlyUnread {
		query = query.Where("read = FALSE")
	}
	var notifications []models.Notification
	err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

// UnreadCount returns the number of unread notifications for a user.
func (r *NotificationRepo) UnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.
		Model(&models.Notification{}).
		Where("user_id = ? AND read = FALSE", userID).
		Count(&count).Error
	return count, err
}

// MarkRead sets a specific notification's status to read.
func (r *NotificationRepo) MarkRead(userID string, notifID uuid.UUID) error {
	return r.db.
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notifID, userID).
		Update("read", true).Error
}

// MarkAllRead sets all unread notifications for a user as read.
func (r *NotificationRepo) MarkAllRead(userID string) error {
	return r.db.
		Model(&models.Notification{}).
		Where("user_id = ? AND read = FALSE", userID).
		Update("read", true).Error
}
