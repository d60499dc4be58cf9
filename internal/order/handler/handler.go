package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/woodora/woodora-backend/internal/invoice"
	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/internal/order"
	"github.com/woodora/woodora-backend/internal/order/dto"
	"github.com/woodora/woodora-backend/pkg/logger"
)

// SignatureVerifier checks a gateway webhook's authenticity headers.
type SignatureVerifier interface {
	VerifyWebhookSignature(timestamp string, rawBody []byte, signature string) bool
}

type OrderHandler struct {
	useCase  order.UseCase
	settings order.SettingsProvider
	verifier SignatureVerifier
	logger   logger.ZapLogger
}

func NewOrderHandler(useCase order.UseCase, settings order.SettingsProvider, verifier SignatureVerifier, logger logger.ZapLogger) *OrderHandler {
	return &OrderHandler{useCase: useCase, settings: settings, verifier: verifier, logger: logger}
}

func (h *OrderHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/checkout", h.Checkout)
	r.GET("/orders/:id/status", h.GetStatus)
	r.GET("/orders/:id/invoice", h.GetInvoice)
}

func (h *OrderHandler) RegisterAdminRoutes(r gin.IRoutes) {
	r.GET("/orders", h.ListOrders)
	r.GET("/orders/:id", h.GetOrder)
	r.PUT("/orders/:id/status", h.UpdateStatus)
}

// RegisterWebhookRoutes mounts the gateway callback outside the versioned
// API group; the path is what the gateway dashboard is configured with.
func (h *OrderHandler) RegisterWebhookRoutes(r gin.IRoutes) {
	r.POST("/webhooks/cashfree", h.CashfreeWebhook)
}

type checkoutItemReq struct {
	SKU      string `json:"sku" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

type checkoutReq struct {
	CustomerName  string            `json:"customer_name" binding:"required"`
	CustomerPhone string            `json:"customer_phone" binding:"required"`
	CustomerEmail string            `json:"customer_email"`
	Address       string            `json:"address" binding:"required"`
	Items         []checkoutItemReq `json:"items" binding:"required"`
	CouponCode    string            `json:"coupon_code"`
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := &dto.CheckoutInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Address:       req.Address,
		CouponCode:    req.CouponCode,
	}
	for _, it := range req.Items {
		input.Items = append(input.Items, dto.CheckoutItem{SKU: it.SKU, Quantity: it.Quantity})
	}

	result, err := h.useCase.Checkout(c.Request.Context(), input)
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *OrderHandler) GetStatus(c *gin.Context) {
	result, err := h.useCase.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *OrderHandler) GetInvoice(c *gin.Context) {
	o, err := h.useCase.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}

	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		h.mapError(c, err)
		return
	}

	pdf, err := invoice.Render(o, settings)
	if err != nil {
		h.logger.Error("invoice render failed", zap.String("order_id", o.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate invoice"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="invoice-`+o.ID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.useCase.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	status := model.OrderStatus(c.Query("status"))

	orders, total, err := h.useCase.ListOrders(c.Request.Context(), status, page, pageSize)
	if err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": total, "page": page, "page_size": pageSize})
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.useCase.UpdateStatus(c.Request.Context(), c.Param("id"), model.OrderStatus(req.Status)); err != nil {
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

// cashfreeWebhook is the subset of the gateway's payload the handler needs.
type cashfreeWebhook struct {
	Type string `json:"type"`
	Data struct {
		Order struct {
			OrderID string `json:"order_id"`
		} `json:"order"`
		Payment struct {
			PaymentStatus string `json:"payment_status"`
		} `json:"payment"`
	} `json:"data"`
}

func (h *OrderHandler) CashfreeWebhook(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read body"})
		return
	}

	signature := c.GetHeader("x-webhook-signature")
	timestamp := c.GetHeader("x-webhook-timestamp")
	if !h.verifier.VerifyWebhookSignature(timestamp, rawBody, signature) {
		h.logger.Warn("webhook signature mismatch")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	var payload cashfreeWebhook
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
		return
	}

	err = h.useCase.HandleWebhook(c.Request.Context(), payload.Data.Order.OrderID, payload.Data.Payment.PaymentStatus)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			// acknowledge so the gateway stops retrying an order we never created
			c.JSON(http.StatusOK, gin.H{"message": "ignored"})
			return
		}
		h.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (h *OrderHandler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrStoreClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrGateway):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		h.logger.Error("order handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
