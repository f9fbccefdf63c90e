package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"knoxtech-api/internal/domain"
	"knoxtech-api/internal/repository"
)

// ContentService manages blog posts. Public reads only see published posts;
// the back office sees drafts too.
type ContentService interface {
	ListPublished(ctx context.Context) ([]domain.Post, error)
	ListAll(ctx context.Context) ([]domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	Update(ctx context.Context, slug string, post *domain.Post) (*domain.Post, error)
	Delete(ctx context.Context, slug string) error
	SetCover(ctx context.Context, slug, location string) (*domain.Post, error)
}

type contentService struct {
	posts repository.PostRepository
}

func NewContentService(posts repository.PostRepository) ContentService {
	return &contentService{posts: posts}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title.
func Slugify(title string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

func (s *contentService) ListPublished(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List(ctx, false)
}

func (s *contentService) ListAll(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List(ctx, true)
}

func (s *contentService) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return s.posts.GetBySlug(ctx, slug)
}

func (s *contentService) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	post.Title = strings.TrimSpace(post.Title)
	if post.Title == "" {
		return nil, errors.New("title is required")
	}
	if post.Slug == "" {
		post.Slug = Slugify(post.Title)
	}
	if post.Slug == "" {
		return nil, errors.New("slug is required")
	}

	if _, err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *contentService) Update(ctx context.Context, slug string, post *domain.Post) (*domain.Post, error) {
	existing, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	existing.Title = post.Title
	existing.Excerpt = post.Excerpt
	existing.Body = post.Body
	existing.Author = post.Author
	existing.Published = post.Published
	if post.Slug != "" {
		existing.Slug = post.Slug
	}

	if err := s.posts.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *contentService) Delete(ctx context.Context, slug string) error {
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.posts.Delete(ctx, post.ID)
}

func (s *contentService) SetCover(ctx context.Context, slug, location string) (*domain.Post, error) {
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	post.CoverLocation = location
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
