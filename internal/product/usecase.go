package product

import (
	"context"
	"errors"

	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/internal/pricing"
	"github.com/woodora/woodora-backend/internal/product/dto"
)

var (
	ErrSKUExists    = errors.New("sku already exists")
	ErrNotFound     = errors.New("product not found")
	ErrInvalidInput = errors.New("invalid input")
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, sku string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, sku string) error

	// QuoteProduct prices a bulk quantity of one product with the tier
	// discount and shipping rules applied.
	QuoteProduct(ctx context.Context, sku string, quantity int) (*dto.ProductQuote, error)

	BulkUpdatePrices(ctx context.Context, input *dto.BulkPriceInput) (int, error)
	BulkUpdateTags(ctx context.Context, input *dto.BulkTagsInput) (int, error)
}

// SettingsProvider is the cached site-settings read path; the product quote
// needs the free-shipping threshold.
type SettingsProvider interface {
	Get(ctx context.Context) (*model.SiteSettings, error)
}

// NormalizeQuantity defaults a missing or invalid custom-quantity input to
// the category minimum.
func NormalizeQuantity(quantity int, category string) int {
	min := pricing.MinQuantity(category)
	if quantity <= 0 {
		return min
	}
	return quantity
}
