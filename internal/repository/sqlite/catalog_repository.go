package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"knoxtech-api/internal/domain"
	"knoxtech-api/internal/repository"
)

const createCatalogTables = `
CREATE TABLE IF NOT EXISTS plans (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	speed_mbps INTEGER NOT NULL,
	price_cents INTEGER NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	featured INTEGER NOT NULL DEFAULT 0,
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS faqs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS technicians (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	region TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	photo_url TEXT NOT NULL DEFAULT '',
	active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) repository.CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCatalogTables); err != nil {
		return fmt.Errorf("create catalog tables: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, speed_mbps, price_cents, description, featured, sort_order, created_at, updated_at
FROM plans
ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		var p domain.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.SpeedMbps, &p.PriceCents, &p.Description, &p.Featured, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plans: %w", err)
	}
	return plans, nil
}

func (r *CatalogRepository) CreatePlan(ctx context.Context, plan *domain.Plan) (int64, error) {
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	res, err := r.db.ExecContext(ctx, `
INSERT INTO plans (name, speed_mbps, price_cents, description, featured, sort_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		plan.Name, plan.SpeedMbps, plan.PriceCents, plan.Description, plan.Featured, plan.SortOrder, plan.CreatedAt, plan.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert plan: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("plan last insert id: %w", err)
	}
	plan.ID = id
	return id, nil
}

func (r *CatalogRepository) UpdatePlan(ctx context.Context, plan *domain.Plan) error {
	plan.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE plans
SET name = ?, speed_mbps = ?, price_cents = ?, description = ?, featured = ?, sort_order = ?, updated_at = ?
WHERE id = ?`,
		plan.Name, plan.SpeedMbps, plan.PriceCents, plan.Description, plan.Featured, plan.SortOrder, plan.UpdatedAt, plan.ID)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	return requireRow(res)
}

func (r *CatalogRepository) DeletePlan(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	return requireRow(res)
}

func (r *CatalogRepository) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, question, answer, sort_order, created_at, updated_at
FROM faqs
ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	defer rows.Close()

	var faqs []domain.FAQ
	for rows.Next() {
		var f domain.FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.SortOrder, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan faq: %w", err)
		}
		faqs = append(faqs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate faqs: %w", err)
	}
	return faqs, nil
}

func (r *CatalogRepository) CreateFAQ(ctx context.Context, faq *domain.FAQ) (int64, error) {
	now := time.Now().UTC()
	faq.CreatedAt = now
	faq.UpdatedAt = now
	res, err := r.db.ExecContext(ctx, `
INSERT INTO faqs (question, answer, sort_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		faq.Question, faq.Answer, faq.SortOrder, faq.CreatedAt, faq.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert faq: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("faq last insert id: %w", err)
	}
	faq.ID = id
	return id, nil
}

func (r *CatalogRepository) UpdateFAQ(ctx context.Context, faq *domain.FAQ) error {
	faq.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE faqs
SET question = ?, answer = ?, sort_order = ?, updated_at = ?
WHERE id = ?`,
		faq.Question, faq.Answer, faq.SortOrder, faq.UpdatedAt, faq.ID)
	if err != nil {
		return fmt.Errorf("update faq: %w", err)
	}
	return requireRow(res)
}

func (r *CatalogRepository) DeleteFAQ(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete faq: %w", err)
	}
	return requireRow(res)
}

func (r *CatalogRepository) ListTechnicians(ctx context.Context) ([]domain.Technician, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, title, region, phone, photo_url, active, created_at, updated_at
FROM technicians
ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}
	defer rows.Close()

	var techs []domain.Technician
	for rows.Next() {
		var tech domain.Technician
		if err := rows.Scan(&tech.ID, &tech.Name, &tech.Title, &tech.Region, &tech.Phone, &tech.PhotoURL, &tech.Active, &tech.CreatedAt, &tech.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan technician: %w", err)
		}
		techs = append(techs, tech)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate technicians: %w", err)
	}
	return techs, nil
}

func (r *CatalogRepository) CreateTechnician(ctx context.Context, tech *domain.Technician) (int64, error) {
	now := time.Now().UTC()
	tech.CreatedAt = now
	tech.UpdatedAt = now
	res, err := r.db.ExecContext(ctx, `
INSERT INTO technicians (name, title, region, phone, photo_url, active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tech.Name, tech.Title, tech.Region, tech.Phone, tech.PhotoURL, tech.Active, tech.CreatedAt, tech.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert technician: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("technician last insert id: %w", err)
	}
	tech.ID = id
	return id, nil
}

func (r *CatalogRepository) UpdateTechnician(ctx context.Context, tech *domain.Technician) error {
	tech.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE technicians
SET name = ?, title = ?, region = ?, phone = ?, photo_url = ?, active = ?, updated_at = ?
WHERE id = ?`,
		tech.Name, tech.Title, tech.Region, tech.Phone, tech.PhotoURL, tech.Active, tech.UpdatedAt, tech.ID)
	if err != nil {
		return fmt.Errorf("update technician: %w", err)
	}
	return requireRow(res)
}

func (r *CatalogRepository) DeleteTechnician(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM technicians WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete technician: %w", err)
	}
	return requireRow(res)
}

// requireRow converts a zero-row write into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
