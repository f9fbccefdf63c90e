package service

import (
	"context"
	"errors"
	"strings"

	"knoxtech-api/internal/domain"
	"knoxtech-api/internal/repository"
)

// CatalogService manages the public site catalog.
type CatalogService interface {
	ListPlans(ctx context.Context) ([]domain.Plan, error)
	CreatePlan(ctx context.Context, plan *domain.Plan) (*domain.Plan, error)
	UpdatePlan(ctx context.Context, plan *domain.Plan) error
	DeletePlan(ctx context.Context, id int64) error

	ListFAQs(ctx context.Context) ([]domain.FAQ, error)
	CreateFAQ(ctx context.Context, faq *domain.FAQ) (*domain.FAQ, error)
	UpdateFAQ(ctx context.Context, faq *domain.FAQ) error
	DeleteFAQ(ctx context.Context, id int64) error

	ListTechnicians(ctx context.Context) ([]domain.Technician, error)
	CreateTechnician(ctx context.Context, tech *domain.Technician) (*domain.Technician, error)
	UpdateTechnician(ctx context.Context, tech *domain.Technician) error
	DeleteTechnician(ctx context.Context, id int64) error
}

type catalogService struct {
	catalog repository.CatalogRepository
}

func NewCatalogService(catalog repository.CatalogRepository) CatalogService {
	return &catalogService{catalog: catalog}
}

func (s *catalogService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	return s.catalog.ListPlans(ctx)
}

func (s *catalogService) CreatePlan(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	plan.Name = strings.TrimSpace(plan.Name)
	if plan.Name == "" {
		return nil, errors.New("plan name is required")
	}
	if plan.SpeedMbps <= 0 {
		return nil, errors.New("plan speed must be positive")
	}
	if plan.PriceCents < 0 {
		return nil, errors.New("plan price must not be negative")
	}
	if _, err := s.catalog.CreatePlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *catalogService) UpdatePlan(ctx context.Context, plan *domain.Plan) error {
	if strings.TrimSpace(plan.Name) == "" {
		return errors.New("plan name is required")
	}
	return s.catalog.UpdatePlan(ctx, plan)
}

func (s *catalogService) DeletePlan(ctx context.Context, id int64) error {
	return s.catalog.DeletePlan(ctx, id)
}

func (s *catalogService) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	return s.catalog.ListFAQs(ctx)
}

func (s *catalogService) CreateFAQ(ctx context.Context, faq *domain.FAQ) (*domain.FAQ, error) {
	if strings.TrimSpace(faq.Question) == "" || strings.TrimSpace(faq.Answer) == "" {
		return nil, errors.New("question and answer are required")
	}
	if _, err := s.catalog.CreateFAQ(ctx, faq); err != nil {
		return nil, err
	}
	return faq, nil
}

func (s *catalogService) UpdateFAQ(ctx context.Context, faq *domain.FAQ) error {
	if strings.TrimSpace(faq.Question) == "" || strings.TrimSpace(faq.Answer) == "" {
		return errors.New("question and answer are required")
	}
	return s.catalog.UpdateFAQ(ctx, faq)
}

func (s *catalogService) DeleteFAQ(ctx context.Context, id int64) error {
	return s.catalog.DeleteFAQ(ctx, id)
}

func (s *catalogService) ListTechnicians(ctx context.Context) ([]domain.Technician, error) {
	return s.catalog.ListTechnicians(ctx)
}

func (s *catalogService) CreateTechnician(ctx context.Context, tech *domain.Technician) (*domain.Technician, error) {
	tech.Name = strings.TrimSpace(tech.Name)
	if tech.Name == "" {
		return nil, errors.New("technician name is required")
	}
	if _, err := s.catalog.CreateTechnician(ctx, tech); err != nil {
		return nil, err
	}
	return tech, nil
}

func (s *catalogService) UpdateTechnician(ctx context.Context, tech *domain.Technician) error {
	if strings.TrimSpace(tech.Name) == "" {
		return errors.New("technician name is required")
	}
	return s.catalog.UpdateTechnician(ctx, tech)
}

func (s *catalogService) DeleteTechnician(ctx context.Context, id int64) error {
	return s.catalog.DeleteTechnician(ctx, id)
}
