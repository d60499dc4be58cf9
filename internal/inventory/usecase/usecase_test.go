package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodora/woodora-backend/internal/inventory"
	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type fakeInventoryRepo struct {
	stock     map[string]int
	movements []model.StockMovement
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{stock: map[string]int{}}
}

func (r *fakeInventoryRepo) AdjustStock(_ context.Context, m *model.StockMovement) (int, error) {
	before, ok := r.stock[m.ProductID]
	if !ok {
		return 0, inventory.ErrNotFound
	}
	after := before + m.QuantityChange
	if after < 0 {
		return 0, inventory.ErrInsufficient
	}
	r.stock[m.ProductID] = after
	m.QuantityBefore = before
	m.QuantityAfter = after
	r.movements = append(r.movements, *m)
	return after, nil
}

func (r *fakeInventoryRepo) FindMovements(_ context.Context, productID string, _, _ int) ([]model.StockMovement, int, error) {
	out := []model.StockMovement{}
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, len(out), nil
}

func newUseCase(repo inventory.Repository) inventory.UseCase {
	log := logger.NewZapLogger(&logger.ZapLoggerConfig{Level: "error", Encoding: "console"})
	return NewInventoryUseCase(repo, nil, log)
}

func TestAdjustRecordsMovement(t *testing.T) {
	repo := newFakeInventoryRepo()
	repo.stock["WC-010"] = 500
	uc := newUseCase(repo)

	after, err := uc.Adjust(context.Background(), "WC-010", 100, inventory.MovementAdjustment, "restock", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 600, after)

	movements, total, err := uc.Movements(context.Background(), "WC-010", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 500, movements[0].QuantityBefore)
	assert.Equal(t, 600, movements[0].QuantityAfter)
	assert.Equal(t, "restock", movements[0].Notes)
}

func TestAdjustValidation(t *testing.T) {
	uc := newUseCase(newFakeInventoryRepo())
	ctx := context.Background()

	_, err := uc.Adjust(ctx, "", 10, inventory.MovementAdjustment, "", nil, nil)
	assert.ErrorIs(t, err, inventory.ErrInvalidInput)

	_, err = uc.Adjust(ctx, "WC-010", 0, inventory.MovementAdjustment, "", nil, nil)
	assert.ErrorIs(t, err, inventory.ErrInvalidInput)

	_, err = uc.Adjust(ctx, "WC-010", 10, "transfer", "", nil, nil)
	assert.ErrorIs(t, err, inventory.ErrInvalidInput)
}

func TestDeductForOrder(t *testing.T) {
	repo := newFakeInventoryRepo()
	repo.stock["WC-010"] = 100
	uc := newUseCase(repo)

	require.NoError(t, uc.DeductForOrder(context.Background(), "ord-1", "WC-010", 25))
	assert.Equal(t, 75, repo.stock["WC-010"])

	require.Len(t, repo.movements, 1)
	m := repo.movements[0]
	assert.Equal(t, inventory.MovementSale, m.MovementType)
	assert.Equal(t, -25, m.QuantityChange)
	require.NotNil(t, m.ReferenceID)
	assert.Equal(t, "ord-1", *m.ReferenceID)
}

func TestDeductForOrderInsufficientStock(t *testing.T) {
	repo := newFakeInventoryRepo()
	repo.stock["WC-010"] = 10
	uc := newUseCase(repo)

	err := uc.DeductForOrder(context.Background(), "ord-1", "WC-010", 25)
	assert.ErrorIs(t, err, inventory.ErrInsufficient)
	assert.Equal(t, 10, repo.stock["WC-010"])
}
