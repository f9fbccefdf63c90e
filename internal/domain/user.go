package domain

import "time"

// Role gates access to protected routes.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents an operator account. Email is stored lowercased and is the
// lookup key; PasswordHash is never serialized in API responses.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
