package identity

import (
	"context"
	"errors"
	"time"

	"github.com/scart/backend/internal/domain/identity"
	"github.com/scart/backend/internal/domain/shared"
	"github.com/scart/backend/internal/infrastructure/auth"
)

// RegisterRequest contains input for account registration
type RegisterRequest struct {
	LoginID     string `json:"login_id" binding:"required,max=128"`
	DisplayName string `json:"display_name" binding:"required,max=128"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest contains login credentials
type LoginRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the API representation of a user
type UserResponse struct {
	ID          uint      `json:"id"`
	LoginID     string    `json:"login_id"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// AuthService handles registration and login.
//
// Accounts register inactive; they become active when an admin approves the
// customer the account requested. Login refuses inactive accounts.
type AuthService struct {
	users  identity.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.UserRepository, hasher *auth.PasswordHasher, tokens *auth.JWTService) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a new inactive user account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	exists, err := s.users.ExistsByLoginID(ctx, req.LoginID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_LOGIN_ID", "An account with this login ID already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(req.LoginID, req.DisplayName, hash)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	return toUserResponse(user), nil
}

// Login verifies credentials and issues an access token. Inactive accounts
// are refused even with a correct password.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByLoginID(ctx, req.LoginID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		return nil, shared.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, shared.ErrAccountInactive
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.LoginID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *toUserResponse(user),
	}, nil
}

func toUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		LoginID:     u.LoginID,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}
