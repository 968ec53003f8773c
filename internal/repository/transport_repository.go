package repository

import (
	"gorm.io/gorm"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"

	"github.com/google/uuid"
)

type TransportRepository struct {
	db *gorm.DB
}

func NewTransportRepository(db *gorm.DB) *TransportRepository {
	return &TransportRepository{db: db}
}

func (r *TransportRepository) CreateRoute(route *models.TransportRoute) error {
	return r.db.Create(route).Error
}

func (r *TransportRepository) FindRoute(id uuid.UUID) (*models.TransportRoute, error) {
	var route models.TransportRoute
	if err := r.db.Preload("Stops", func(db *gorm.DB) *gorm.DB {
		return db.Order("pickup_points.position ASC")
	}).First(&route, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *TransportRepository) ListRoutes(zone string) ([]models.TransportRoute, error) {
	query := r.db.Preload("Stops", func(db *gorm.DB) *gorm.DB {
		return db.Order("pickup_points.position ASC")
	})
	if zone != "" {
		query = query.Where("zone = ?", zone)
	}
	var routes []models.TransportRoute
	err := query.Order("name ASC").Find(&routes).Error
	return routes, err
}

func (r *TransportRepository) UpdateRoute(route *models.TransportRoute) error {
	return r.db.Save(route).Error
}

func (r *TransportRepository) DeleteRoute(id uuid.UUID) error {
	return r.db.Delete(&models.TransportRoute{}, "id = ?", id).Error
}

func (r *TransportRepository) FindStop(id uuid.UUID) (*models.PickupPoint, error) {
	var stop models.PickupPoint
	if err := r.db.First(&stop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &stop, nil
}

func (r *TransportRepository) UpdateStop(stop *models.PickupPoint) error {
	return r.db.Save(stop).Error
}
