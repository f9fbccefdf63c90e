package repository

import (
	"context"

	"knoxtech-api/internal/domain"
)

// UserRepository defines persistence operations for operator accounts.
// Implementations lowercase emails at both write and read time so lookups
// never create silent duplicates.
type UserRepository interface {
	Init(ctx context.Context) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// Upsert creates the account or replaces its hash and role in place.
	// Idempotent; used by the startup provisioning path.
	Upsert(ctx context.Context, email, passwordHash string, role domain.Role) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
