package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/woodora/woodora-backend/internal/inventory"
	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/pkg/cache"
	"github.com/woodora/woodora-backend/pkg/logger"
)

const (
	lockTTL      = 10 * time.Second
	lockAttempts = 3
	lockBackoff  = 200 * time.Millisecond
)

type inventoryUseCase struct {
	repo   inventory.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, cache *cache.RedisClient, logger logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{repo: repo, cache: cache, logger: logger}
}

func (uc *inventoryUseCase) Adjust(ctx context.Context, productID string, delta int, movementType, notes string, refType, refID *string) (int, error) {
	if productID == "" || delta == 0 {
		return 0, inventory.ErrInvalidInput
	}
	switch movementType {
	case inventory.MovementAdjustment, inventory.MovementSale, inventory.MovementReturn:
	default:
		return 0, inventory.ErrInvalidInput
	}

	release, err := uc.lock(ctx, productID)
	if err != nil {
		return 0, err
	}
	defer release()

	m := &model.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      productID,
		MovementType:   movementType,
		QuantityChange: delta,
		ReferenceType:  refType,
		ReferenceID:    refID,
		Notes:          notes,
		CreatedAt:      time.Now(),
	}
	return uc.repo.AdjustStock(ctx, m)
}

func (uc *inventoryUseCase) Movements(ctx context.Context, productID string, page, pageSize int) ([]model.StockMovement, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return uc.repo.FindMovements(ctx, productID, page, pageSize)
}

func (uc *inventoryUseCase) DeductForOrder(ctx context.Context, orderID, productID string, quantity int) error {
	if quantity <= 0 {
		return inventory.ErrInvalidInput
	}
	refType := "order"
	after, err := uc.Adjust(ctx, productID, -quantity, inventory.MovementSale, "", &refType, &orderID)
	if err != nil {
		return err
	}
	if after <= 5 {
		uc.logger.Warn("product stock running low",
			zap.String("product_id", productID), zap.Int("remaining", after))
	}
	return nil
}

// lock serializes stock writes per product across instances. The row lock in
// the repository is the correctness guarantee; this keeps concurrent admin
// and event writers from piling up on the database.
func (uc *inventoryUseCase) lock(ctx context.Context, productID string) (func(), error) {
	if uc.cache == nil {
		return func() {}, nil
	}

	key := "lock:stock:" + productID
	value := uuid.New().String()
	for attempt := 0; attempt < lockAttempts; attempt++ {
		acquired, err := uc.cache.AcquireLock(ctx, key, value, lockTTL)
		if err != nil {
			return nil, err
		}
		if acquired {
			return func() {
				if err := uc.cache.ReleaseLock(context.Background(), key, value); err != nil {
					uc.logger.Warn("failed to release stock lock", zap.String("key", key), zap.Error(err))
				}
			}, nil
		}
		time.Sleep(lockBackoff)
	}
	return nil, inventory.ErrLockContended
}
