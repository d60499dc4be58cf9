package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/woodora/woodora-backend/internal/category"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{uc: uc, logger: log}
}

func (h *CategoryHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/categories", h.listCategories)
}

func (h *CategoryHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.POST("/categories", h.createCategory)
	r.PUT("/categories/:id", h.updateCategory)
	r.DELETE("/categories/:id", h.deleteCategory)
}

type categoryReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

func (h *CategoryHandler) listCategories(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	categories, err := h.uc.ListCategories(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) createCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	cat, err := h.uc.CreateCategory(c.Request.Context(), &category.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		c.JSON(mapError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) updateCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	cat, err := h.uc.UpdateCategory(c.Request.Context(), &category.UpdateInput{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
		IsActive:    isActive,
	})
	if err != nil {
		c.JSON(mapError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) deleteCategory(c *gin.Context) {
	if err := h.uc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func mapError(err error) int {
	switch {
	case errors.Is(err, category.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, category.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, category.ErrNameExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
