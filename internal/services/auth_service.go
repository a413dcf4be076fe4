package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/todo-api/internal/auth"
	"github.com/yukikurage/todo-api/internal/constants"
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Nickname        string
	Password        string
	ConfirmPassword string
	Name            string
	ProfileImageURL *string
}

// Signup creates a new user. The display name defaults to the nickname.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	nickname := strings.TrimSpace(input.Nickname)
	if nickname == "" {
		return nil, ErrNicknameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	taken, err := s.userRepo.ExistsByNickname(ctx, nickname)
	if err != nil {
		return nil, fmt.Errorf("failed to check nickname: %w", err)
	}
	if taken {
		return nil, ErrNicknameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = nickname
	}

	user := &models.User{
		Nickname:        nickname,
		PasswordHash:    string(hashedPassword),
		Name:            name,
		ProfileImageURL: input.ProfileImageURL,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNicknameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// CheckNickname reports whether the nickname is still available.
func (s *AuthService) CheckNickname(ctx context.Context, nickname string) (bool, error) {
	taken, err := s.userRepo.ExistsByNickname(ctx, strings.TrimSpace(nickname))
	if err != nil {
		return false, fmt.Errorf("failed to check nickname: %w", err)
	}
	return !taken, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Nickname string
	Password string
}

// LoginResult is an authenticated user and its signed access token.
type LoginResult struct {
	User        *models.User
	AccessToken string
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByNickname(ctx, input.Nickname)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(KindUser, input.Nickname)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredential
	}

	token, err := s.tokens.Issue(user.ID, user.Nickname)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, AccessToken: token}, nil
}
