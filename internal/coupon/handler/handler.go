package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/woodora/woodora-backend/internal/coupon"
	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type CouponHandler struct {
	uc     coupon.UseCase
	logger logger.ZapLogger
}

func NewCouponHandler(uc coupon.UseCase, log logger.ZapLogger) *CouponHandler {
	return &CouponHandler{uc: uc, logger: log}
}

func (h *CouponHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/coupons/validate", h.validate)
}

func (h *CouponHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.GET("/coupons", h.listCoupons)
	r.POST("/coupons", h.createCoupon)
	r.PUT("/coupons/:id", h.updateCoupon)
	r.DELETE("/coupons/:id", h.deleteCoupon)
}

type validateReq struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

func (h *CouponHandler) validate(c *gin.Context) {
	var req validateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	discount, err := h.uc.Validate(c.Request.Context(), req.Code, req.Subtotal)
	if err != nil {
		c.JSON(mapError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"discount_amount": discount,
		"message":         "coupon applied",
	})
}

type couponReq struct {
	Code     string  `json:"code"`
	Type     string  `json:"type"`
	Value    float64 `json:"value"`
	IsActive bool    `json:"is_active"`
}

func (h *CouponHandler) listCoupons(c *gin.Context) {
	coupons, err := h.uc.ListCoupons(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, coupons)
}

func (h *CouponHandler) createCoupon(c *gin.Context) {
	var req couponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	created, err := h.uc.CreateCoupon(c.Request.Context(), &coupon.SaveInput{
		Code:     req.Code,
		Type:     model.CouponType(req.Type),
		Value:    req.Value,
		IsActive: req.IsActive,
	})
	if err != nil {
		c.JSON(mapError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CouponHandler) updateCoupon(c *gin.Context) {
	var req couponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	updated, err := h.uc.UpdateCoupon(c.Request.Context(), c.Param("id"), &coupon.SaveInput{
		Code:     req.Code,
		Type:     model.CouponType(req.Type),
		Value:    req.Value,
		IsActive: req.IsActive,
	})
	if err != nil {
		c.JSON(mapError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CouponHandler) deleteCoupon(c *gin.Context) {
	if err := h.uc.DeleteCoupon(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func mapError(err error) int {
	switch {
	case errors.Is(err, coupon.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, coupon.ErrInactive), errors.Is(err, coupon.ErrNoDiscount), errors.Is(err, coupon.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, coupon.ErrCodeExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
