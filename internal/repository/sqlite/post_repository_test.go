package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"knoxtech-api/internal/domain"
	"knoxtech-api/internal/repository"
)

func newPostRepo(t *testing.T) repository.PostRepository {
	t.Helper()
	repo := NewPostRepository(openTestDB(t))
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestPostRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newPostRepo(t)

	post := &domain.Post{
		Slug:      "fiber-rollout",
		Title:     "Fiber rollout update",
		Body:      "We lit up three new neighborhoods this month.",
		Author:    "ops@knoxtech.net",
		Published: true,
	}
	id, err := repo.Create(ctx, post)
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := repo.GetBySlug(ctx, "fiber-rollout")
	require.NoError(t, err)
	require.Equal(t, post.Title, got.Title)
	require.True(t, got.Published)

	// Duplicate slug is rejected.
	_, err = repo.Create(ctx, &domain.Post{Slug: "fiber-rollout", Title: "dup"})
	require.Error(t, err)
}

func TestPostRepositoryListFiltersDrafts(t *testing.T) {
	ctx := context.Background()
	repo := newPostRepo(t)

	_, err := repo.Create(ctx, &domain.Post{Slug: "published", Title: "p", Published: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Post{Slug: "draft", Title: "d", Published: false})
	require.NoError(t, err)

	public, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, public, 1)
	require.Equal(t, "published", public[0].Slug)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestPostRepositoryUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newPostRepo(t)

	post := &domain.Post{Slug: "s", Title: "before"}
	_, err := repo.Create(ctx, post)
	require.NoError(t, err)

	post.Title = "after"
	post.Published = true
	require.NoError(t, repo.Update(ctx, post))

	got, err := repo.GetBySlug(ctx, "s")
	require.NoError(t, err)
	require.Equal(t, "after", got.Title)

	require.NoError(t, repo.Delete(ctx, post.ID))
	_, err = repo.GetBySlug(ctx, "s")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, post.ID), repository.ErrNotFound)
}
