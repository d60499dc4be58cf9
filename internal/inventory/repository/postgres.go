package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/woodora/woodora-backend/internal/inventory"
	"github.com/woodora/woodora-backend/internal/model"
)

type inventoryRepository struct {
	db *sqlx.DB
}

func NewInventoryRepository(db *sqlx.DB) inventory.Repository {
	return &inventoryRepository{db: db}
}

// AdjustStock updates products.inventory and appends the ledger row in one
// transaction. The row lock on the product serializes concurrent deductions.
func (r *inventoryRepository) AdjustStock(ctx context.Context, m *model.StockMovement) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var before int
	err = tx.GetContext(ctx, &before,
		`SELECT inventory FROM products WHERE id = $1 FOR UPDATE`, m.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, inventory.ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	after := before + m.QuantityChange
	if after < 0 {
		return 0, fmt.Errorf("%w: have %d, need %d", inventory.ErrInsufficient, before, -m.QuantityChange)
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE products SET inventory = $1, updated_at = NOW() WHERE id = $2`, after, m.ProductID); err != nil {
		return 0, err
	}

	m.QuantityBefore = before
	m.QuantityAfter = after
	query := `INSERT INTO stock_movements
				(id, product_id, movement_type, quantity_change, quantity_before, quantity_after,
				 reference_type, reference_id, notes, created_at)
			  VALUES
				(:id, :product_id, :movement_type, :quantity_change, :quantity_before, :quantity_after,
				 :reference_type, :reference_id, :notes, :created_at)`
	if _, err = tx.NamedExecContext(ctx, query, m); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return after, nil
}

func (r *inventoryRepository) FindMovements(ctx context.Context, productID string, page, pageSize int) ([]model.StockMovement, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM stock_movements WHERE product_id = $1`, productID)
	if err != nil {
		return nil, 0, err
	}

	movements := []model.StockMovement{}
	err = r.db.SelectContext(ctx, &movements,
		`SELECT * FROM stock_movements WHERE product_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		productID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	return movements, total, nil
}
