package repository

import (
	"context"

	"knoxtech-api/internal/domain"
)

// SiteRepository persists the settings singleton and the contact inbox.
type SiteRepository interface {
	Init(ctx context.Context) error

	// GetSettings returns the singleton row, creating defaults on first read.
	GetSettings(ctx context.Context) (*domain.Settings, error)
	SaveSettings(ctx context.Context, s *domain.Settings) error

	CreateMessage(ctx context.Context, msg *domain.ContactMessage) (int64, error)
	ListMessages(ctx context.Context) ([]domain.ContactMessage, error)
	DeleteMessage(ctx context.Context, id int64) error
}
