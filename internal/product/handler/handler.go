package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/woodora/woodora-backend/internal/product"
	"github.com/woodora/woodora-backend/internal/product/dto"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: log}
}

func (h *ProductHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/products", h.listProducts)
	r.GET("/products/:sku", h.getProduct)
	r.GET("/products/:sku/quote", h.quoteProduct)
}

func (h *ProductHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.POST("/products", h.createProduct)
	r.PUT("/products/:sku", h.updateProduct)
	r.DELETE("/products/:sku", h.deleteProduct)
	r.POST("/products/bulk-price", h.bulkPrice)
	r.POST("/products/bulk-tags", h.bulkTags)
}

type productReq struct {
	SKU              string            `json:"sku"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	RegularPrice     float64           `json:"regular_price"`
	SalePrice        *float64          `json:"sale_price"`
	Category         string            `json:"category"`
	Tags             []string          `json:"tags"`
	Inventory        int               `json:"inventory"`
	Options          []dto.OptionInput `json:"options"`
	ColorOptions     []string          `json:"color_options"`
	AllowImageUpload bool              `json:"allow_image_upload"`
	ImageURL         string            `json:"image_url"`
	Length           *float64          `json:"length_cm"`
	Width            *float64          `json:"width_cm"`
	Height           *float64          `json:"height_cm"`
	Weight           *float64          `json:"weight_g"`
	IsActive         *bool             `json:"is_active"`
}

func (h *ProductHandler) createProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	input := &dto.CreateProductInput{
		SKU:              req.SKU,
		Name:             req.Name,
		Description:      req.Description,
		RegularPrice:     req.RegularPrice,
		SalePrice:        req.SalePrice,
		Category:         req.Category,
		Tags:             req.Tags,
		Inventory:        req.Inventory,
		Options:          req.Options,
		ColorOptions:     req.ColorOptions,
		AllowImageUpload: req.AllowImageUpload,
		ImageURL:         req.ImageURL,
		Length:           req.Length,
		Width:            req.Width,
		Height:           req.Height,
		Weight:           req.Weight,
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		c.JSON(mapError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) getProduct(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("sku"))
	if err != nil {
		c.JSON(mapError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) listProducts(c *gin.Context) {
	filters := &dto.ProductFilters{
		Category:    c.Query("category"),
		Tag:         c.Query("tag"),
		SearchQuery: c.Query("q"),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
		Page:        intQuery(c, "page", 1),
		PageSize:    intQuery(c, "page_size", 24),
	}
	if v := c.Query("active"); v != "" {
		b := v == "true"
		filters.IsActive = &b
	}

	products, count, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products":  products,
		"total":     count,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

func (h *ProductHandler) quoteProduct(c *gin.Context) {
	quantity := intQuery(c, "quantity", 0)
	quote, err := h.uc.QuoteProduct(c.Request.Context(), c.Param("sku"), quantity)
	if err != nil {
		c.JSON(mapError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *ProductHandler) updateProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	input := &dto.UpdateProductInput{
		SKU:              c.Param("sku"),
		Name:             req.Name,
		Description:      req.Description,
		RegularPrice:     req.RegularPrice,
		SalePrice:        req.SalePrice,
		Category:         req.Category,
		Tags:             req.Tags,
		Inventory:        req.Inventory,
		Options:          req.Options,
		ColorOptions:     req.ColorOptions,
		AllowImageUpload: req.AllowImageUpload,
		ImageURL:         req.ImageURL,
		Length:           req.Length,
		Width:            req.Width,
		Height:           req.Height,
		Weight:           req.Weight,
		IsActive:         isActive,
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("failed to update product", zap.Error(err))
		c.JSON(mapError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) deleteProduct(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("sku")); err != nil {
		c.JSON(mapError(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type bulkPriceReq struct {
	Mode     string  `json:"mode"`
	Value    float64 `json:"value"`
	Category string  `json:"category"`
}

func (h *ProductHandler) bulkPrice(c *gin.Context) {
	var req bulkPriceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	n, err := h.uc.BulkUpdatePrices(c.Request.Context(), &dto.BulkPriceInput{
		Mode:     req.Mode,
		Value:    req.Value,
		Category: req.Category,
	})
	if err != nil {
		c.JSON(mapError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

type bulkTagsReq struct {
	SKUs   []string `json:"skus"`
	Add    []string `json:"add"`
	Remove []string `json:"remove"`
}

func (h *ProductHandler) bulkTags(c *gin.Context) {
	var req bulkTagsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	n, err := h.uc.BulkUpdateTags(c.Request.Context(), &dto.BulkTagsInput{
		SKUs:   req.SKUs,
		Add:    req.Add,
		Remove: req.Remove,
	})
	if err != nil {
		c.JSON(mapError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func mapError(err error) int {
	switch {
	case errors.Is(err, product.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, product.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, product.ErrSKUExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
