// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/pkg/apperrors"
	"github.com/your-org/beauty-store/internal/pkg/auth"
)

// Service handles user business logic
type Service struct {
	repo            Repository
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
	logger          logrus.FieldLogger
	now             func() time.Time
}

// NewService creates a new user service
func NewService(repo Repository, passwords *auth.PasswordManager, tokens *auth.JWTManager, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:            repo,
		passwordManager: passwords,
		jwtManager:      tokens,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// Register creates a new user account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := NormalizeEmail(req.Email)

	// Check if user already exists
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.AlreadyExists("User already exists")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.Internal(fmt.Errorf("failed to look up user: %w", err))
	}

	if err := s.passwordManager.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.InvalidInput(capitalize(err.Error()))
	}

	user, err := s.create(ctx, strings.TrimSpace(req.Name), email, req.Password, RoleUser)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Info("User registered")
	return s.issue(user)
}

// Login authenticates a user
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, NormalizeEmail(req.Email))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.InvalidInput("Invalid credentials")
	}
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to look up user: %w", err))
	}

	if err := s.passwordManager.VerifyPassword(req.Password, user.Password); err != nil {
		return nil, apperrors.InvalidInput("Invalid credentials")
	}

	return s.issue(user)
}

// CreateAdmin stores an admin account. It is used by development seeding.
func (s *Service) CreateAdmin(ctx context.Context, name, email, password string) (*User, error) {
	return s.create(ctx, name, NormalizeEmail(email), password, RoleAdmin)
}

func (s *Service) create(ctx context.Context, name, email, password, role string) (*User, error) {
	hashedPassword, err := s.passwordManager.HashPassword(password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	now := s.now()
	user := &User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  hashedPassword,
		Role:      role,
		Wishlist:  []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, apperrors.AlreadyExists("User already exists")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to create user: %w", err))
	}
	return user, nil
}

func (s *Service) issue(user *User) (*AuthResponse, error) {
	token, err := s.jwtManager.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}
	return &AuthResponse{Token: token, User: user.Profile()}, nil
}

// GetProfile gets user profile by ID. A token for a deleted user is
// reported as invalid.
func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.Unauthorized("Token is not valid")
	}
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to retrieve user: %w", err))
	}
	if user.Wishlist == nil {
		user.Wishlist = []string{}
	}
	return user, nil
}

// ResolveRole returns the stored role of an existing account.
func (s *Service) ResolveRole(ctx context.Context, userID string) (string, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// GetWishlist returns the saved product ids.
func (s *Service) GetWishlist(ctx context.Context, userID string) ([]string, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Wishlist, nil
}

// AddToWishlist saves productID once and returns the updated list.
func (s *Service) AddToWishlist(ctx context.Context, userID, productID string) ([]string, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if slices.Contains(user.Wishlist, productID) {
		return user.Wishlist, nil
	}

	wishlist := append(user.Wishlist, productID)
	if err := s.repo.UpdateWishlist(ctx, userID, wishlist); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to update wishlist: %w", err))
	}
	return wishlist, nil
}

// RemoveFromWishlist drops productID and returns the updated list.
func (s *Service) RemoveFromWishlist(ctx context.Context, userID, productID string) ([]string, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	i := slices.Index(user.Wishlist, productID)
	if i < 0 {
		return user.Wishlist, nil
	}

	wishlist := slices.Delete(user.Wishlist, i, i+1)
	if err := s.repo.UpdateWishlist(ctx, userID, wishlist); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to update wishlist: %w", err))
	}
	return wishlist, nil
}

// Count returns the number of users.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
