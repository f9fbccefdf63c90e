package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"knoxtech-api/internal/domain"
	"knoxtech-api/internal/repository"
)

const createSiteTables = `
CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	site_name TEXT NOT NULL DEFAULT '',
	support_email TEXT NOT NULL DEFAULT '',
	support_phone TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	outage_banner TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS contact_messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	subject TEXT NOT NULL DEFAULT '',
	body TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

type SiteRepository struct {
	db *sql.DB
}

func NewSiteRepository(db *sql.DB) repository.SiteRepository {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSiteTables); err != nil {
		return fmt.Errorf("create site tables: %w", err)
	}
	return nil
}

func (r *SiteRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT site_name, support_email, support_phone, address, outage_banner, updated_at
FROM settings
WHERE id = 1`)

	var s domain.Settings
	err := row.Scan(&s.SiteName, &s.SupportEmail, &s.SupportPhone, &s.Address, &s.OutageBanner, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// First read seeds the singleton row.
		s = domain.Settings{SiteName: "Knoxville Technologies", UpdatedAt: time.Now().UTC()}
		if err := r.SaveSettings(ctx, &s); err != nil {
			return nil, err
		}
		return &s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan settings: %w", err)
	}
	return &s, nil
}

func (r *SiteRepository) SaveSettings(ctx context.Context, s *domain.Settings) error {
	s.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO settings (id, site_name, support_email, support_phone, address, outage_banner, updated_at)
VALUES (1, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	site_name = excluded.site_name,
	support_email = excluded.support_email,
	support_phone = excluded.support_phone,
	address = excluded.address,
	outage_banner = excluded.outage_banner,
	updated_at = excluded.updated_at`,
		s.SiteName,
		s.SupportEmail,
		s.SupportPhone,
		s.Address,
		s.OutageBanner,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (r *SiteRepository) CreateMessage(ctx context.Context, msg *domain.ContactMessage) (int64, error) {
	msg.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
INSERT INTO contact_messages (name, email, phone, subject, body, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		msg.Name,
		msg.Email,
		msg.Phone,
		msg.Subject,
		msg.Body,
		msg.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert contact message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("contact message last insert id: %w", err)
	}
	msg.ID = id
	return id, nil
}

func (r *SiteRepository) ListMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, email, phone, subject, body, created_at
FROM contact_messages
ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.ContactMessage
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact messages: %w", err)
	}
	return msgs, nil
}

func (r *SiteRepository) DeleteMessage(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}
	return requireRow(res)
}
