package repository

import (
	"context"

	"knoxtech-api/internal/domain"
)

// CatalogRepository persists the public site catalog: service plans, FAQs and
// the technician directory. Lists are ordered for display (sort order, then id).
type CatalogRepository interface {
	Init(ctx context.Context) error

	ListPlans(ctx context.Context) ([]domain.Plan, error)
	CreatePlan(ctx context.Context, plan *domain.Plan) (int64, error)
	UpdatePlan(ctx context.Context, plan *domain.Plan) error
	DeletePlan(ctx context.Context, id int64) error

	ListFAQs(ctx context.Context) ([]domain.FAQ, error)
	CreateFAQ(ctx context.Context, faq *domain.FAQ) (int64, error)
	UpdateFAQ(ctx context.Context, faq *domain.FAQ) error
	DeleteFAQ(ctx context.Context, id int64) error

	ListTechnicians(ctx context.Context) ([]domain.Technician, error)
	CreateTechnician(ctx context.Context, tech *domain.Technician) (int64, error)
	UpdateTechnician(ctx context.Context, tech *domain.Technician) error
	DeleteTechnician(ctx context.Context, id int64) error
}
