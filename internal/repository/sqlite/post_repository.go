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

const createPostsTable = `
CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	slug TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	excerpt TEXT NOT NULL DEFAULT '',
	body TEXT NOT NULL DEFAULT '',
	author TEXT NOT NULL DEFAULT '',
	cover_location TEXT NOT NULL DEFAULT '',
	published INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) repository.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPostsTable); err != nil {
		return fmt.Errorf("create posts table: %w", err)
	}
	return nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (int64, error) {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO posts (slug, title, excerpt, body, author, cover_location, published, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.Slug,
		post.Title,
		post.Excerpt,
		post.Body,
		post.Author,
		post.CoverLocation,
		post.Published,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("post slug already exists: %w", err)
		}
		return 0, fmt.Errorf("insert post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("post last insert id: %w", err)
	}
	post.ID = id
	return id, nil
}

func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, slug, title, excerpt, body, author, cover_location, published, created_at, updated_at
FROM posts
WHERE slug = ?`,
		slug,
	)
	return scanPost(row)
}

func (r *PostRepository) List(ctx context.Context, includeDrafts bool) ([]domain.Post, error) {
	query := `
SELECT id, slug, title, excerpt, body, author, cover_location, published, created_at, updated_at
FROM posts`
	if !includeDrafts {
		query += `
WHERE published = 1`
	}
	query += `
ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	post.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE posts
SET slug = ?, title = ?, excerpt = ?, body = ?, author = ?, cover_location = ?, published = ?, updated_at = ?
WHERE id = ?`,
		post.Slug,
		post.Title,
		post.Excerpt,
		post.Body,
		post.Author,
		post.CoverLocation,
		post.Published,
		post.UpdatedAt,
		post.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanPost(row interface {
	Scan(dest ...any) error
}) (*domain.Post, error) {
	var post domain.Post
	if err := row.Scan(
		&post.ID,
		&post.Slug,
		&post.Title,
		&post.Excerpt,
		&post.Body,
		&post.Author,
		&post.CoverLocation,
		&post.Published,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}
	return &post, nil
}
