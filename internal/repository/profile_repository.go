package repository

import (
	"gorm.io/gorm"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"

	"github.com/google/uuid"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(p *models.EmployeeProfile) error {
	return r.db.Create(p).Error
}

func (r *ProfileRepository) FindByID(id uuid.UUID) (*models.EmployeeProfile, error) {
	var profile models.EmployeeProfile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// List returns profiles filtered by zone, department, and status, each
// optional, plus a case-insensitive name search.
func (r *ProfileRepository) List(zone, department, status, search string, limit, offset int) ([]models.EmployeeProfile, error) {
	query := r.db.Model(&models.EmployeeProfile{})
	if zone != "" {
		query = query.Where("zone = ?", zone)
	}
	if department != "" {
		query = query.Where("department = ?", department)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		query = query.Where("full_name ILIKE ?", "%"+search+"%")
	}
	var profiles []models.EmployeeProfile
	err := query.Order("full_name ASC").Limit(limit).Offset(offset).Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepository) Update(p *models.EmployeeProfile) error {
	return r.db.Save(p).Error
}

func (r *ProfileRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.EmployeeProfile{}, "id = ?", id).Error
}
