package repository

import (
	"gorm.io/gorm"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Append(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

// List returns activity entries newest first, optionally filtered by actor
// and/or target.
func (r *ActivityRepository) List(actor, target string, limit, offset int) ([]models.ActivityLog, error) {
	query := r.db.Model(&models.ActivityLog{})
	if actor != "" {
		query = query.Where("actor = ?", actor)
	}
	if target != "" {
		query = query.Where("target = ?", target)
	}
	var entries []models.ActivityLog
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, err
}
