package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"knoxtech-api/internal/auth"
	"knoxtech-api/internal/domain"
	"knoxtech-api/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are
	// incorrect. A store miss and a password mismatch both map here so the
	// two are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserService describes operator account operations. Accounts are provisioned
// by the startup bootstrap, never by self-service registration.
type UserService interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// Provision creates or updates an account with the given plaintext
	// password. Idempotent: repeating the same call leaves one row.
	Provision(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Provision(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errors.New("email is required")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	if !role.Valid() {
		role = domain.RoleUser
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Upsert(ctx, email, hash, role)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// sanitizeUser strips the password hash before the user leaves the service
// layer.
func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
