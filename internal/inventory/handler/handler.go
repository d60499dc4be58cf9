package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/woodora/woodora-backend/internal/inventory"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type InventoryHandler struct {
	useCase inventory.UseCase
	logger  logger.ZapLogger
}

func NewInventoryHandler(useCase inventory.UseCase, logger logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{useCase: useCase, logger: logger}
}

func (h *InventoryHandler) RegisterAdminRoutes(r gin.IRoutes) {
	r.POST("/products/:sku/stock", h.Adjust)
	r.GET("/products/:sku/stock/movements", h.Movements)
}

type adjustReq struct {
	Delta int    `json:"delta" binding:"required"`
	Notes string `json:"notes"`
}

func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req adjustReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	after, err := h.useCase.Adjust(c.Request.Context(), c.Param("sku"), req.Delta,
		inventory.MovementAdjustment, req.Notes, nil, nil)
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": after})
}

func (h *InventoryHandler) Movements(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	movements, total, err := h.useCase.Movements(c.Request.Context(), c.Param("sku"), page, pageSize)
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": movements, "total": total, "page": page, "page_size": pageSize})
}

func (h *InventoryHandler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrInvalidInput), errors.Is(err, inventory.ErrInsufficient):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrLockContended):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("inventory handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
