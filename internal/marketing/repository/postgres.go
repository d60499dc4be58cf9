package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/woodora/woodora-backend/internal/marketing"
	"github.com/woodora/woodora-backend/internal/model"
)

type marketingRepository struct {
	db *sqlx.DB
}

func NewMarketingRepository(db *sqlx.DB) marketing.Repository {
	return &marketingRepository{db: db}
}

func (r *marketingRepository) UpsertContact(ctx context.Context, contact *model.Contact) error {
	query := `INSERT INTO contacts (id, name, phone, created_at, updated_at)
			  VALUES (:id, :name, :phone, :created_at, :updated_at)
			  ON CONFLICT (phone) DO UPDATE
			  SET name = COALESCE(EXCLUDED.name, contacts.name), updated_at = EXCLUDED.updated_at`
	_, err := r.db.NamedExecContext(ctx, query, contact)
	return err
}

func (r *marketingRepository) FindContacts(ctx context.Context, page, pageSize int) ([]model.Contact, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM contacts`); err != nil {
		return nil, 0, err
	}

	contacts := []model.Contact{}
	err := r.db.SelectContext(ctx, &contacts,
		`SELECT * FROM contacts ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

func (r *marketingRepository) AllContacts(ctx context.Context) ([]model.Contact, error) {
	contacts := []model.Contact{}
	err := r.db.SelectContext(ctx, &contacts, `SELECT * FROM contacts ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *marketingRepository) DeleteContact(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return marketing.ErrNotFound
	}
	return nil
}

func (r *marketingRepository) UpsertSubscription(ctx context.Context, sub *model.Subscription) error {
	query := `INSERT INTO subscriptions (id, email, is_active, created_at, updated_at)
			  VALUES (:id, :email, :is_active, :created_at, :updated_at)
			  ON CONFLICT (email) DO UPDATE
			  SET is_active = true, updated_at = EXCLUDED.updated_at`
	_, err := r.db.NamedExecContext(ctx, query, sub)
	return err
}

func (r *marketingRepository) DeactivateSubscription(ctx context.Context, email string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET is_active = false, updated_at = NOW() WHERE email = $1`, email)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *marketingRepository) FindSubscriptions(ctx context.Context, activeOnly bool, page, pageSize int) ([]model.Subscription, int, error) {
	where := ""
	if activeOnly {
		where = " WHERE is_active = true"
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM subscriptions`+where); err != nil {
		return nil, 0, err
	}

	subs := []model.Subscription{}
	err := r.db.SelectContext(ctx, &subs,
		`SELECT * FROM subscriptions`+where+` ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}
