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

func (r *PGRepository) Create(ctx context.Context, c *model.Coupon) error {
	query := `
        INSERT INTO coupons (id, code, type, value, is_active, created_at, updated_at)
        VALUES (:id, :code, :type, :value, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.DB.GetContext(ctx, &coupon, `SELECT * FROM coupons WHERE upper(code) = upper($1) LIMIT 1`, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Coupon, error) {
	var coupons []model.Coupon
	err := r.DB.SelectContext(ctx, &coupons, `SELECT * FROM coupons ORDER BY created_at DESC`)
	return coupons, err
}

func (r *PGRepository) Update(ctx context.Context, c *model.Coupon) error {
	query := `
        UPDATE coupons
        SET code = :code, type = :type, value = :value, is_active = :is_active, updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	return err
}
