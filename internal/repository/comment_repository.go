package repository

import (
	"gorm.io/gorm"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"

	"github.com/google/uuid"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(c *models.Comment) error {
	return r.db.Create(c).Error
}

func (r *CommentRepository) ListByProfile(profileID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Where("profile_id = ?", profileID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}
