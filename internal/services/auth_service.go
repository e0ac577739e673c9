package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/contesthq/contest-backend/internal/config"
	"github.com/contesthq/contest-backend/internal/models"
	"github.com/contesthq/contest-backend/internal/repositories"
	"github.com/contesthq/contest-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// Authentication errors
var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService handles admin authentication
type AuthService interface {
	Register(ctx context.Context, email, password, role string) (*models.AdminUser, error)
	Login(ctx context.Context, email, password string) (string, *models.AdminUser, error)
}

// AuthServiceImpl registers admin users and issues JWTs on login
type AuthServiceImpl struct {
	userRepo repositories.AdminUserRepository
	cfg      *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(userRepo repositories.AdminUserRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Register creates a new admin user with a bcrypt-hashed password
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, role string) (*models.AdminUser, error) {
	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if role == "" {
		role = "admin"
	}
	user := &models.AdminUser{
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		slog.Error("Failed to create admin user", "error", err, "email", email)
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}
	slog.Info("Admin user registered", "email", email, "role", role)
	return user, nil
}

// Login verifies credentials and returns a signed JWT alongside the user
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, *models.AdminUser, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role, s.cfg)
	if err != nil {
		slog.Error("Failed to generate token", "error", err, "email", email)
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}
