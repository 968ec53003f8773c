package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/auth"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/dto"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/identity"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct {
	repo     *repository.UserRepository
	activity *ActivityService
	email    *EmailService
}

func NewUserService(repo *repository.UserRepository, activity *ActivityService, email *EmailService) *UserService {
	return &UserService{repo: repo, activity: activity, email: email}
}

// Authenticate checks the password for a canonical userId and returns the
// account. Suspended accounts cannot log in.
func (s *UserService) Authenticate(ctx context.Context, userID, password string) (*models.UserAccount, error) {
	user, err := s.repo.FindByUserID(identity.Canonical(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.Status != "active" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Create registers an account. When the request carries no password a
// temporary one is generated and mailed to the new user.
func (s *UserService) Create(ctx context.Context, actor string, req dto.CreateUserRequest) (*models.UserAccount, error) {
	password := req.Password
	generated := password == ""
	if generated {
		password = auth.GenerateSecureToken()[:16]
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.UserAccount{
		ID:           uuid.New(),
		UserID:       identity.Canonical(req.UserID),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         identity.Canonical(req.Role),
		Zone:         req.Zone,
		Photo:        req.Photo,
		Status:       "active",
	}
	if err := s.repo.Create(user); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user_id", user.UserID).Msg("Failed to create user")
		return nil, fmt.Errorf("create user: %w", err)
	}
	_ = s.activity.Append(ctx, actor, "user_created", user.UserID, map[string]any{"role": user.Role, "zone": user.Zone})
	if generated && s.email != nil {
		if err := s.email.SendCredentialsEmail(user.Email, user.UserID, password); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("user_id", user.UserID).Msg("Failed to send credentials email")
		}
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.UserAccount, error) {
	return s.repo.FindByID(id)
}

func (s *UserService) GetByUserID(ctx context.Context, userID string) (*models.UserAccount, error) {
	return s.repo.FindByUserID(identity.Canonical(userID))
}

func (s *UserService) List(ctx context.Context, role, zone string, limit, offset int) ([]models.UserAccount, error) {
	return s.repo.List(identity.Canonical(role), zone, limit, offset)
}

func (s *UserService) Update(ctx context.Context, actor string, id uuid.UUID, req dto.UpdateUserRequest) (*models.UserAccount, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = identity.Canonical(req.Role)
	}
	if req.Zone != "" {
		user.Zone = req.Zone
	}
	if req.Photo != "" {
		user.Photo = req.Photo
	}
	if req.Status != "" {
		user.Status = req.Status
	}
	if err := s.repo.Update(user); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user_id", user.UserID).Msg("Failed to update user")
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.activity.Append(ctx, actor, "user_updated", user.UserID, nil)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user_id", user.UserID).Msg("Failed to delete user")
		return fmt.Errorf("delete user: %w", err)
	}
	_ = s.activity.Append(ctx, actor, "user_deleted", user.UserID, nil)
	return nil
}
