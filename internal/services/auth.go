package services

import (
	"errors"
	"fmt"

	"ticketbooth/internal/models"
	"ticketbooth/internal/utils"
)

// UserRepository interface for user data operations
type UserRepository interface {
	Create(req *models.UserRegisterRequest, passwordHash string) (*models.User, error)
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

// ErrInvalidCredentials is returned for unknown emails and wrong passwords
// alike, so login failures do not reveal which part was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles registration and credential checks. Session cookies
// themselves are managed by the middleware layer.
type AuthService struct {
	userRepo UserRepository
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates a new user account
func (s *AuthService) Register(req *models.UserRegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(req, hash)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies a user's credentials and returns the user
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID
func (s *AuthService) GetUser(id int) (*models.User, error) {
	return s.userRepo.GetByID(id)
}
