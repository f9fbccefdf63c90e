package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"knoxtech-api/internal/auth"
	"knoxtech-api/internal/domain"
	"knoxtech-api/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository keyed by normalized email.
type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Init(context.Context) error { return nil }

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) Upsert(_ context.Context, email, passwordHash string, role domain.Role) (*domain.User, error) {
	key := strings.ToLower(strings.TrimSpace(email))
	if existing, ok := f.users[key]; ok {
		existing.PasswordHash = passwordHash
		existing.Role = role
		copied := *existing
		return &copied, nil
	}
	user := &domain.User{ID: f.nextID, Email: key, PasswordHash: passwordHash, Role: role}
	f.nextID++
	f.users[key] = user
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	for key, existing := range f.users {
		if existing.ID == user.ID {
			copied := *user
			f.users[key] = &copied
			return nil
		}
	}
	return repository.ErrNotFound
}

func TestUserServiceAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	_, err := svc.Provision(ctx, "a@x.com", "secret123", domain.RoleAdmin)
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "a@x.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)
	require.Equal(t, domain.RoleAdmin, user.Role)
	require.Empty(t, user.PasswordHash, "hash must not leave the service layer")

	// Wrong password and unknown account read identically.
	_, err = svc.Authenticate(ctx, "a@x.com", "secret124")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody@x.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserServiceProvisionIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	first, err := svc.Provision(ctx, "Ops@KnoxTech.net", "password-one", domain.RoleAdmin)
	require.NoError(t, err)
	second, err := svc.Provision(ctx, "ops@knoxtech.net", "password-two", domain.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Len(t, repo.users, 1)

	// Only the latest password verifies.
	_, err = svc.Authenticate(ctx, "ops@knoxtech.net", "password-one")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "ops@knoxtech.net", "password-two")
	require.NoError(t, err)
}

func TestUserServiceProvisionValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Provision(ctx, "", "secret123", domain.RoleUser)
	require.Error(t, err)
	_, err = svc.Provision(ctx, "a@x.com", "short", domain.RoleUser)
	require.Error(t, err)
}

func TestUserServiceStoresVerifiableHash(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	_, err := svc.Provision(ctx, "a@x.com", "secret123", domain.RoleUser)
	require.NoError(t, err)

	stored := repo.users["a@x.com"]
	require.NotEqual(t, "secret123", stored.PasswordHash)
	require.True(t, auth.VerifyPassword("secret123", stored.PasswordHash))
	require.False(t, auth.VerifyPassword("other", stored.PasswordHash))
}
