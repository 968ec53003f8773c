package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/dto"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/realtime"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/repository"
)

type ProfileService struct {
	repo     *repository.ProfileRepository
	activity *ActivityService
	notifier *NotificationService
}

func NewProfileService(repo *repository.ProfileRepository, activity *ActivityService, notifier *NotificationService) *ProfileService {
	return &ProfileService{repo: repo, activity: activity, notifier: notifier}
}

// Create persists a new profile, logs the activity, and announces it to
// the profile's zone over the live stream. Zone events are live-only and
// reach every connection; see realtime.Dispatcher.Send.
func (s *ProfileService) Create(ctx context.Context, actor string, req dto.CreateProfileRequest) (*models.EmployeeProfile, error) {
	profile := &models.EmployeeProfile{
		ID:         uuid.New(),
		FullName:   req.FullName,
		Position:   req.Position,
		Department: req.Department,
		Zone:       req.Zone,
		Address:    req.Address,
		Phone:      req.Phone,
		Status:     "pending",
		Tags:       req.Tags,
		Photo:      req.Photo,
		CreatedBy:  actor,
	}
	if err := s.repo.Create(profile); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("full_name", req.FullName).Msg("Failed to create profile")
		return nil, fmt.Errorf("create profile: %w", err)
	}
	_ = s.activity.Append(ctx, actor, "profile_created", profile.FullName, map[string]any{"zone": profile.Zone})
	s.notifier.Dispatch(ctx, realtime.Event{
		Type:       realtime.EventProfileAdded,
		TargetZone: profile.Zone,
		Message:    fmt.Sprintf("New profile added to %s: %s", profile.Zone, profile.FullName),
		Data:       map[string]any{"profileId": profile.ID.String(), "zone": profile.Zone},
	})
	return profile, nil
}

func (s *ProfileService) Get(ctx context.Context, id uuid.UUID) (*models.EmployeeProfile, error) {
	return s.repo.FindByID(id)
}

func (s *ProfileService) List(ctx context.Context, zone, department, status, search string, limit, offset int) ([]models.EmployeeProfile, error) {
	return s.repo.List(zone, department, status, search, limit, offset)
}

// Update applies the partial update; a status transition is logged as its
// own activity entry and announced as a status_change event.
func (s *ProfileService) Update(ctx context.Context, actor string, id uuid.UUID, req dto.UpdateProfileRequest) (*models.EmployeeProfile, error) {
	profile, err := s.repo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	prevStatus := profile.Status
	if req.Position != "" {
		profile.Position = req.Position
	}
	if req.Department != "" {
		profile.Department = req.Department
	}
	if req.Zone != "" {
		profile.Zone = req.Zone
	}
	if req.Address != "" {
		profile.Address = req.Address
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	if req.Status != "" {
		profile.Status = req.Status
	}
	if req.Tags != nil {
		profile.Tags = req.Tags
	}
	if req.Photo != "" {
		profile.Photo = req.Photo
	}
	if err := s.repo.Update(profile); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("profile_id", id.String()).Msg("Failed to update profile")
		return nil, fmt.Errorf("update profile: %w", err)
	}
	_ = s.activity.Append(ctx, actor, "profile_updated", profile.FullName, nil)
	if req.Status != "" && req.Status != prevStatus {
		_ = s.activity.Append(ctx, actor, "profile_status_changed", profile.FullName,
			map[string]any{"from": prevStatus, "to": profile.Status})
		s.notifier.Dispatch(ctx, realtime.Event{
			Type:       realtime.EventStatusChange,
			TargetZone: profile.Zone,
			Message:    fmt.Sprintf("%s is now %s", profile.FullName, profile.Status),
			Data:       map[string]any{"profileId": profile.ID.String(), "status": profile.Status},
		})
	}
	return profile, nil
}

func (s *ProfileService) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	profile, err := s.repo.FindByID(id)
	if err != nil {
		return fmt.Errorf("find profile: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("profile_id", id.String()).Msg("Failed to delete profile")
		return fmt.Errorf("delete profile: %w", err)
	}
	_ = s.activity.Append(ctx, actor, "profile_deleted", profile.FullName, nil)
	return nil
}
