package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/woodora/woodora-backend/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Get(ctx context.Context) (*model.SiteSettings, error) {
	var s model.SiteSettings
	err := r.DB.GetContext(ctx, &s, `SELECT * FROM site_settings WHERE id = $1 LIMIT 1`, model.SiteSettingsID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) Upsert(ctx context.Context, s *model.SiteSettings) error {
	query := `
        INSERT INTO site_settings (
            id, store_open, free_shipping_threshold, shipping_fee,
            delivery_days_min, delivery_days_max, currency_symbol,
            business_name, business_address, business_phone, tax_percent,
            advance_payment_enabled, advance_percent, updated_at
        )
        VALUES (
            :id, :store_open, :free_shipping_threshold, :shipping_fee,
            :delivery_days_min, :delivery_days_max, :currency_symbol,
            :business_name, :business_address, :business_phone, :tax_percent,
            :advance_payment_enabled, :advance_percent, :updated_at
        )
        ON CONFLICT (id) DO UPDATE SET
            store_open = EXCLUDED.store_open,
            free_shipping_threshold = EXCLUDED.free_shipping_threshold,
            shipping_fee = EXCLUDED.shipping_fee,
            delivery_days_min = EXCLUDED.delivery_days_min,
            delivery_days_max = EXCLUDED.delivery_days_max,
            currency_symbol = EXCLUDED.currency_symbol,
            business_name = EXCLUDED.business_name,
            business_address = EXCLUDED.business_address,
            business_phone = EXCLUDED.business_phone,
            tax_percent = EXCLUDED.tax_percent,
            advance_payment_enabled = EXCLUDED.advance_payment_enabled,
            advance_percent = EXCLUDED.advance_percent,
            updated_at = EXCLUDED.updated_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, s)
	return err
}

func (r *PGRepository) ListImages(ctx context.Context) ([]model.SiteImage, error) {
	var images []model.SiteImage
	err := r.DB.SelectContext(ctx, &images, `SELECT * FROM site_images ORDER BY key ASC`)
	return images, err
}

func (r *PGRepository) UpsertImage(ctx context.Context, img *model.SiteImage) error {
	query := `
        INSERT INTO site_images (id, key, url, alt_text, created_at, updated_at)
        VALUES (:id, :key, :url, :alt_text, :created_at, :updated_at)
        ON CONFLICT (key) DO UPDATE SET
            url = EXCLUDED.url, alt_text = EXCLUDED.alt_text, updated_at = EXCLUDED.updated_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, img)
	return err
}

func (r *PGRepository) DeleteImage(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM site_images WHERE id = $1`, id)
	return err
}

func (r *PGRepository) ListNavLinks(ctx context.Context, activeOnly bool) ([]model.NavLink, error) {
	var links []model.NavLink
	query := `SELECT * FROM nav_links`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY sort_order ASC`
	err := r.DB.SelectContext(ctx, &links, query)
	return links, err
}

func (r *PGRepository) CreateNavLink(ctx context.Context, link *model.NavLink) error {
	query := `
        INSERT INTO nav_links (id, label, url, sort_order, is_active, created_at, updated_at)
        VALUES (:id, :label, :url, :sort_order, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, link)
	return err
}

func (r *PGRepository) UpdateNavLink(ctx context.Context, link *model.NavLink) error {
	query := `
        UPDATE nav_links
        SET label = :label, url = :url, sort_order = :sort_order,
            is_active = :is_active, updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, link)
	return err
}

func (r *PGRepository) DeleteNavLink(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM nav_links WHERE id = $1`, id)
	return err
}
