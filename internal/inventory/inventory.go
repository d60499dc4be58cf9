package inventory

import (
	"context"
	"errors"

	"github.com/woodora/woodora-backend/internal/model"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInsufficient  = errors.New("insufficient stock")
	ErrLockContended = errors.New("could not acquire stock lock")
)

const (
	MovementAdjustment = "adjustment"
	MovementSale       = "sale"
	MovementReturn     = "return"
)

type Repository interface {
	// AdjustStock applies delta to the product's count and writes the
	// ledger row in one transaction. Returns the new count.
	AdjustStock(ctx context.Context, m *model.StockMovement) (int, error)
	FindMovements(ctx context.Context, productID string, page, pageSize int) ([]model.StockMovement, int, error)
}

type UseCase interface {
	Adjust(ctx context.Context, productID string, delta int, movementType, notes string, refType, refID *string) (int, error)
	Movements(ctx context.Context, productID string, page, pageSize int) ([]model.StockMovement, int, error)

	// DeductForOrder is the event-consumer path; sale movements reference
	// the order that caused them.
	DeductForOrder(ctx context.Context, orderID, productID string, quantity int) error
}
