package product

import (
	"context"

	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, sku string) error

	// Bulk operations run inside a single transaction: either every matched
	// row is updated or none is.
	BulkUpdatePrices(ctx context.Context, input *dto.BulkPriceInput) (int, error)
	BulkUpdateTags(ctx context.Context, input *dto.BulkTagsInput) (int, error)
}
