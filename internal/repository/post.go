package repository

import (
	"context"

	"knoxtech-api/internal/domain"
)

// PostRepository defines persistence operations for blog posts.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) (int64, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	// List returns posts newest first; unpublished posts are only included
	// when includeDrafts is set.
	List(ctx context.Context, includeDrafts bool) ([]domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id int64) error
}
