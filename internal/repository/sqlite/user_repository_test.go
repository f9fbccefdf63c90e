package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"knoxtech-api/internal/domain"
	"knoxtech-api/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUserRepositoryUpsertIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	require.NoError(t, repo.Init(ctx))

	first, err := repo.Upsert(ctx, "Ops@KnoxTech.net", "hash-1", domain.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, "ops@knoxtech.net", first.Email)
	require.Equal(t, domain.RoleAdmin, first.Role)

	// Same address, different casing: must update the one row in place.
	second, err := repo.Upsert(ctx, "OPS@knoxtech.NET", "hash-2", domain.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "hash-2", second.PasswordHash)
}

func TestUserRepositoryGetByEmailNormalized(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	require.NoError(t, repo.Init(ctx))

	_, err := repo.Upsert(ctx, "a@x.com", "hash", domain.RoleUser)
	require.NoError(t, err)

	user, err := repo.GetByEmail(ctx, "  A@X.COM ")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)
	require.Equal(t, domain.RoleUser, user.Role)
}

func TestUserRepositoryMiss(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	require.NoError(t, repo.Init(ctx))

	_, err := repo.GetByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByID(ctx, 12345)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	require.NoError(t, repo.Init(ctx))

	user, err := repo.Upsert(ctx, "a@x.com", "hash", domain.RoleUser)
	require.NoError(t, err)

	user.Role = domain.RoleAdmin
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, got.Role)

	missing := &domain.User{ID: 9999, Email: "b@x.com", PasswordHash: "h", Role: domain.RoleUser}
	require.ErrorIs(t, repo.Update(ctx, missing), repository.ErrNotFound)
}
