package service

import (
	"context"
	"errors"
	"strings"

	"knoxtech-api/internal/domain"
	"knoxtech-api/internal/repository"
)

// SiteService manages the settings singleton and the contact inbox.
type SiteService interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, s *domain.Settings) (*domain.Settings, error)

	SubmitMessage(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error)
	ListMessages(ctx context.Context) ([]domain.ContactMessage, error)
	DeleteMessage(ctx context.Context, id int64) error
}

type siteService struct {
	site repository.SiteRepository
}

func NewSiteService(site repository.SiteRepository) SiteService {
	return &siteService{site: site}
}

func (s *siteService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	return s.site.GetSettings(ctx)
}

func (s *siteService) UpdateSettings(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	settings.SiteName = strings.TrimSpace(settings.SiteName)
	if settings.SiteName == "" {
		return nil, errors.New("site name is required")
	}
	if err := s.site.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *siteService) SubmitMessage(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Body = strings.TrimSpace(msg.Body)
	if msg.Name == "" || msg.Email == "" || msg.Body == "" {
		return nil, errors.New("name, email and message are required")
	}
	if _, err := s.site.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *siteService) ListMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.site.ListMessages(ctx)
}

func (s *siteService) DeleteMessage(ctx context.Context, id int64) error {
	return s.site.DeleteMessage(ctx, id)
}
