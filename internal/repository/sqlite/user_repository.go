package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"knoxtech-api/internal/domain"
	"knoxtech-api/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'user',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

// normalizeEmail is applied on every write and lookup so the same address can
// never occupy two rows.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Upsert(ctx context.Context, email, passwordHash string, role domain.Role) (*domain.User, error) {
	now := time.Now().UTC()
	email = normalizeEmail(email)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (email, password_hash, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(email) DO UPDATE SET
	password_hash = excluded.password_hash,
	role = excluded.role,
	updated_at = excluded.updated_at`,
		email,
		passwordHash,
		string(role),
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	return r.GetByEmail(ctx, email)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, email, password_hash, role, created_at, updated_at
FROM users
WHERE email = ?`,
		normalizeEmail(email),
	)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, email, password_hash, role, created_at, updated_at
FROM users
WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE users
SET email = ?, password_hash = ?, role = ?, updated_at = ?
WHERE id = ?`,
		normalizeEmail(user.Email),
		user.PasswordHash,
		string(user.Role),
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	var role string
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.Role = domain.Role(role)
	if !user.Role.Valid() {
		user.Role = domain.RoleUser
	}
	return &user, nil
}
