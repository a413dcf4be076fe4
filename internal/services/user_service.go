package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
	"gorm.io/gorm"
)

// UserService handles user profile business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUser returns the profile of userID. Only the user themself may read it.
func (s *UserService) GetUser(ctx context.Context, callerID, userID uint64) (*models.User, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isOwner(user.ID, callerID) {
		return nil, fmt.Errorf("%w: not this user", ErrForbidden)
	}
	return user, nil
}

// UpdateProfileImage replaces the profile image URL of userID. A nil URL clears it.
func (s *UserService) UpdateProfileImage(ctx context.Context, callerID, userID uint64, imageURL *string) (*models.User, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isOwner(user.ID, callerID) {
		return nil, fmt.Errorf("%w: not this user", ErrForbidden)
	}

	user.ProfileImageURL = imageURL
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *UserService) findUser(ctx context.Context, userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(KindUser, userID)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
