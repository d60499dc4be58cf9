package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/woodora/woodora-backend/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	query := `
        INSERT INTO orders (
            id, customer_name, customer_phone, customer_email, address, items,
            status, coupon_code, subtotal, discount, shipping, total,
            advance_amount, remaining_amount, gateway_order_id, payment_session_id,
            created_at, updated_at
        )
        VALUES (
            :id, :customer_name, :customer_phone, :customer_email, :address, :items,
            :status, :coupon_code, :subtotal, :discount, :shipping, :total,
            :advance_amount, :remaining_amount, :gateway_order_id, :payment_session_id,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, o)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.DB.GetContext(ctx, &order, `SELECT * FROM orders WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *PGRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Order, error) {
	var order model.Order
	err := r.DB.GetContext(ctx, &order, `SELECT * FROM orders WHERE gateway_order_id = $1 LIMIT 1`, gatewayOrderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *PGRepository) FindAll(ctx context.Context, status model.OrderStatus, page, pageSize int) ([]model.Order, int, error) {
	var orders []model.Order
	var count int

	where := ""
	args := []interface{}{}
	if status != "" {
		where = " WHERE status = $1"
		args = append(args, status)
	}

	if err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM orders"+where, args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM orders" + where + " ORDER BY created_at DESC"
	if pageSize > 0 {
		offset := (page - 1) * pageSize
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, offset)
	}

	if err := r.DB.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

func (r *PGRepository) SetGatewaySession(ctx context.Context, id, gatewayOrderID, paymentSessionID string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET gateway_order_id = $1, payment_session_id = $2, updated_at = NOW() WHERE id = $3`,
		gatewayOrderID, paymentSessionID, id,
	)
	return err
}

// UpdateStatusIfPending is the idempotency gate: the WHERE clause makes sure
// only one caller ever observes the PENDING -> status transition.
func (r *PGRepository) UpdateStatusIfPending(ctx context.Context, id string, status model.OrderStatus) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		status, id, model.OrderStatusPending,
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	return err
}
