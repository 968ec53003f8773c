package repository

import (
	"gorm.io/gorm"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"

	"github.com/google/uuid"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.UserAccount) error {
	return r.db.Create(user).Error
}

// FindByUserID looks an account up by its canonical identity.
func (r *UserRepository) FindByUserID(userID string) (*models.UserAccount, error) {
	var user models.UserAccount
	if err := r.db.First(&user, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(id uuid.UUID) (*models.UserAccount, error) {
	var user models.UserAccount
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns accounts filtered by role and/or zone, both optional.
func (r *UserRepository) List(role, zone string, limit, offset int) ([]models.UserAccount, error) {
	query := r.db.Model(&models.UserAccount{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if zone != "" {
		query = query.Where("zone = ?", zone)
	}
	var users []models.UserAccount
	err := query.Order("user_id ASC").Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

// ListUserIDs returns every canonical userId, for mention parsing.
func (r *UserRepository) ListUserIDs() ([]string, error) {
	var ids []string
	err := r.db.Model(&models.UserAccount{}).Pluck("user_id", &ids).Error
	return ids, err
}

func (r *UserRepository) Update(user *models.UserAccount) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.UserAccount{}, "id = ?", id).Error
}
