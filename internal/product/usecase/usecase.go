package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/internal/pricing"
	"github.com/woodora/woodora-backend/internal/product"
	"github.com/woodora/woodora-backend/internal/product/dto"
	"github.com/woodora/woodora-backend/pkg/cache"
	"github.com/woodora/woodora-backend/pkg/logger"
	"github.com/woodora/woodora-backend/pkg/search"
)

const productIndex = "products"

type productUseCase struct {
	repo     product.Repository
	cache    *cache.RedisClient
	es       *search.Client
	settings product.SettingsProvider
	logger   logger.ZapLogger
}

// NewProductUseCase wires the catalog. cache and es may be nil; the usecase
// degrades to plain DB access.
func NewProductUseCase(repo product.Repository, c *cache.RedisClient, es *search.Client, settings product.SettingsProvider, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:     repo,
		cache:    c,
		es:       es,
		settings: settings,
		logger:   log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if input.SKU == "" || input.Name == "" || input.RegularPrice < 0 {
		return nil, product.ErrInvalidInput
	}

	existing, err := uc.repo.FindBySKU(ctx, input.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, product.ErrSKUExists
	}

	now := time.Now()
	p := &model.Product{
		BaseModel:        model.BaseModel{ID: input.SKU, CreatedAt: now, UpdatedAt: now},
		Name:             input.Name,
		Description:      input.Description,
		RegularPrice:     input.RegularPrice,
		SalePrice:        input.SalePrice,
		Category:         input.Category,
		Tags:             input.Tags,
		Inventory:        input.Inventory,
		Options:          toOptions(input.Options),
		ColorOptions:     input.ColorOptions,
		AllowImageUpload: input.AllowImageUpload,
		IsActive:         true,
	}
	if input.ImageURL != "" {
		p.ImageURL = &input.ImageURL
	}
	p.Length, p.Width, p.Height, p.Weight = input.Length, input.Width, input.Height, input.Weight

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, sku string) (*model.Product, error) {
	p, err := uc.repo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey := uc.listCacheKey(filters)

	if uc.cache != nil && cacheKey != "" {
		if val, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var cached struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Products, cached.Count, nil
			}
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		products, count, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return products, count, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if uc.cache != nil && cacheKey != "" {
		payload := struct {
			Products []model.Product
			Count    int
		}{products, count}
		if data, err := json.Marshal(payload); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return products, count, nil
}

func (uc *productUseCase) searchElastic(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"query_string": map[string]interface{}{
				"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
				"fields": []string{"name^3", "id", "tags", "description"},
			},
		},
	}
	if filters.PageSize > 0 {
		q["size"] = filters.PageSize
		q["from"] = (filters.Page - 1) * filters.PageSize
	}

	res, err := uc.es.Search(ctx, productIndex, q)
	if err != nil {
		return nil, 0, err
	}

	var products []model.Product
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err == nil {
			products = append(products, p)
		}
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindBySKU(ctx, input.SKU)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}

	p.Name = input.Name
	p.Description = input.Description
	p.RegularPrice = input.RegularPrice
	p.SalePrice = input.SalePrice
	p.Category = input.Category
	p.Tags = input.Tags
	p.Inventory = input.Inventory
	p.Options = toOptions(input.Options)
	p.ColorOptions = input.ColorOptions
	p.AllowImageUpload = input.AllowImageUpload
	p.IsActive = input.IsActive
	if input.ImageURL != "" {
		p.ImageURL = &input.ImageURL
	} else {
		p.ImageURL = nil
	}
	p.Length, p.Width, p.Height, p.Weight = input.Length, input.Width, input.Height, input.Weight
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, sku string) error {
	p, err := uc.repo.FindBySKU(ctx, sku)
	if err != nil {
		return err
	}
	if p == nil {
		return nil // already gone
	}

	if err := uc.repo.Delete(ctx, sku); err != nil {
		return err
	}

	go uc.invalidateListCache(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productIndex, sku); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.Error(err))
			}
		}()
	}

	return nil
}

func (uc *productUseCase) QuoteProduct(ctx context.Context, sku string, quantity int) (*dto.ProductQuote, error) {
	p, err := uc.GetProduct(ctx, sku)
	if err != nil {
		return nil, err
	}

	minQty := pricing.MinQuantity(p.Category)
	quantity = product.NormalizeQuantity(quantity, p.Category)
	if quantity < minQty {
		return nil, product.ErrInvalidInput
	}

	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	line := pricing.Line{ListPrice: p.ListPrice(), Quantity: quantity, MinQuantity: minQty}
	quote := pricing.BuildQuote([]pricing.Line{line}, settings.FreeShippingThreshold, settings.ShippingFee, "", 0)

	return &dto.ProductQuote{
		SKU:             p.ID,
		Quantity:        quantity,
		MinQuantity:     minQty,
		DiscountPercent: line.DiscountPercent(),
		UnitPrice:       line.UnitPrice(),
		Subtotal:        quote.Subtotal,
		Shipping:        quote.Shipping,
		Total:           quote.Total,
	}, nil
}

func (uc *productUseCase) BulkUpdatePrices(ctx context.Context, input *dto.BulkPriceInput) (int, error) {
	if input.Mode != "percent" && input.Mode != "flat" {
		return 0, product.ErrInvalidInput
	}
	n, err := uc.repo.BulkUpdatePrices(ctx, input)
	if err != nil {
		return 0, err
	}
	go uc.invalidateListCache(context.Background())
	return n, nil
}

func (uc *productUseCase) BulkUpdateTags(ctx context.Context, input *dto.BulkTagsInput) (int, error) {
	if len(input.SKUs) == 0 || (len(input.Add) == 0 && len(input.Remove) == 0) {
		return 0, product.ErrInvalidInput
	}
	n, err := uc.repo.BulkUpdateTags(ctx, input)
	if err != nil {
		return 0, err
	}
	go uc.invalidateListCache(context.Background())
	return n, nil
}

func (uc *productUseCase) listCacheKey(filters *dto.ProductFilters) string {
	data, err := json.Marshal(filters)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data))
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, "products:list:*").Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"id": { "type": "keyword" },
				"name": { "type": "text" },
				"description": { "type": "text" },
				"category": { "type": "text" },
				"tags": { "type": "keyword" },
				"regular_price": { "type": "double" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, productIndex, mapping)

	if err := uc.es.Index(ctx, productIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}

func toOptions(in []dto.OptionInput) model.OptionList {
	if len(in) == 0 {
		return nil
	}
	out := make(model.OptionList, 0, len(in))
	for _, o := range in {
		label := strings.TrimSpace(o.Label)
		if label == "" && o.Value == "" {
			continue
		}
		out = append(out, model.VariantOption{Label: label, Value: o.Value})
	}
	return out
}
