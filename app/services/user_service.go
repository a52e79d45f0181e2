package services

import (
	"context"
	"errors"
	"fmt"

	"blogengine/app/models"
	"blogengine/app/repositories"

	"github.com/rs/zerolog"
)

// UserService handles registration of blog users
type UserService struct {
	userRepo repositories.UserRepository
	clock    *models.Clock
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, clock *models.Clock) *UserService {
	return &UserService{
		userRepo: userRepo,
		clock:    clock,
	}
}

// RegisterUser creates a user unless the name is already taken. The email is
// stored as given.
func (s *UserService) RegisterUser(ctx context.Context, userName, email string) (*models.User, error) {
	_, err := s.userRepo.GetByUserName(ctx, userName)
	if err == nil {
		return nil, fmt.Errorf("%w: '%s'", ErrDuplicateUser, userName)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user '%s': %w", userName, err)
	}

	user := &models.User{UserName: userName, Email: email}
	user.BeforeCreate(s.clock.Now())
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user '%s': %w", userName, err)
	}
	zerolog.Ctx(ctx).Debug().Str("user", userName).Msg("user registered")
	return user, nil
}
