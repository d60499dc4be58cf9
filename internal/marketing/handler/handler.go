package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/woodora/woodora-backend/internal/marketing"
	"github.com/woodora/woodora-backend/internal/marketing/dto"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type MarketingHandler struct {
	useCase marketing.UseCase
	logger  logger.ZapLogger
}

func NewMarketingHandler(useCase marketing.UseCase, logger logger.ZapLogger) *MarketingHandler {
	return &MarketingHandler{useCase: useCase, logger: logger}
}

func (h *MarketingHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/subscriptions", h.Subscribe)
	r.DELETE("/subscriptions/:email", h.Unsubscribe)
}

func (h *MarketingHandler) RegisterAdminRoutes(r gin.IRoutes) {
	r.GET("/contacts", h.ListContacts)
	r.DELETE("/contacts/:id", h.DeleteContact)
	r.POST("/contacts/import", h.ImportContacts)
	r.GET("/contacts/export", h.ExportContacts)
	r.POST("/marketing/blast", h.Blast)
	r.GET("/subscriptions", h.ListSubscriptions)
}

func (h *MarketingHandler) ImportContacts(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	result, err := h.useCase.ImportCSV(c.Request.Context(), file)
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *MarketingHandler) ExportContacts(c *gin.Context) {
	filename := "contacts-" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)

	if err := h.useCase.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		h.logger.Error("contact export failed", zap.Error(err))
	}
}

func (h *MarketingHandler) ListContacts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	contacts, total, err := h.useCase.ListContacts(c.Request.Context(), page, pageSize)
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts, "total": total, "page": page, "page_size": pageSize})
}

func (h *MarketingHandler) DeleteContact(c *gin.Context) {
	if err := h.useCase.DeleteContact(c.Request.Context(), c.Param("id")); err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contact deleted"})
}

func (h *MarketingHandler) Blast(c *gin.Context) {
	var input dto.BlastInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.useCase.Blast(c.Request.Context(), &input)
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type subscribeReq struct {
	Email string `json:"email" binding:"required"`
}

func (h *MarketingHandler) Subscribe(c *gin.Context) {
	var req subscribeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.useCase.Subscribe(c.Request.Context(), req.Email); err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "subscribed"})
}

func (h *MarketingHandler) Unsubscribe(c *gin.Context) {
	if err := h.useCase.Unsubscribe(c.Request.Context(), c.Param("email")); err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed"})
}

func (h *MarketingHandler) ListSubscriptions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	activeOnly := c.DefaultQuery("active", "true") == "true"

	subs, total, err := h.useCase.ListSubscriptions(c.Request.Context(), activeOnly, page, pageSize)
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": subs, "total": total, "page": page, "page_size": pageSize})
}

func (h *MarketingHandler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, marketing.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, marketing.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("marketing handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
