package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/realtime"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/repository"
)

func setupTransportService(t *testing.T) (*TransportService, *repository.TransportRepository) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.TransportRoute{},
		&models.PickupPoint{},
		&models.ActivityLog{},
		&models.Notification{},
	))

	repo := repository.NewTransportRepository(db)
	activity := NewActivityService(repository.NewActivityRepository(db))
	notifier := NewNotificationService(repository.NewNotificationRepo(db), realtime.NewDispatcher(realtime.NewRegistry()))
	return NewTransportService(repo, activity, notifier), repo
}

func seedRoute(t *testing.T, repo *repository.TransportRepository, name, zone string) *models.TransportRoute {
	route := &models.TransportRoute{
		ID:   uuid.New(),
		Name: name,
		Zone: zone,
		Stops: []models.PickupPoint{
			{ID: uuid.New(), Name: name + " gate", Position: 1},
		},
	}
	require.NoError(t, repo.CreateRoute(route))
	return route
}

func TestAssignRiderAddsToStop(t *testing.T) {
	svc, repo := setupTransportService(t)
	route := seedRoute(t, repo, "Line A", "Textile")
	stopID := route.Stops[0].ID

	require.NoError(t, svc.AssignRider(context.Background(), "SuperAdmin", route.ID, stopID, "alice"))

	stop, err := repo.FindStop(stopID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, []string(stop.Riders))
}

// A stop id from a different route must surface as a not-found class error
// so the handler can answer with a client status instead of a 500.
func TestAssignRiderRejectsStopFromAnotherRoute(t *testing.T) {
	svc, repo := setupTransportService(t)
	routeA := seedRoute(t, repo, "Line A", "Textile")
	routeB := seedRoute(t, repo, "Line B", "Assembly")

	err := svc.AssignRider(context.Background(), "SuperAdmin", routeA.ID, routeB.Stops[0].ID, "alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStopNotOnRoute)

	// The foreign stop is untouched.
	stop, err := repo.FindStop(routeB.Stops[0].ID)
	require.NoError(t, err)
	assert.Empty(t, stop.Riders)
}

func TestUnassignRiderMissingRiderIsNoOp(t *testing.T) {
	svc, repo := setupTransportService(t)
	route := seedRoute(t, repo, "Line A", "Textile")

	require.NoError(t, svc.UnassignRider(context.Background(), "SuperAdmin", route.ID, route.Stops[0].ID, "ghost"))
}
