package coupon

import (
	"context"
	"errors"

	"github.com/woodora/woodora-backend/internal/model"
)

var (
	ErrNotFound     = errors.New("coupon not found")
	ErrInactive     = errors.New("coupon is not active")
	ErrNoDiscount   = errors.New("coupon gives no discount for this order")
	ErrCodeExists   = errors.New("coupon code already exists")
	ErrInvalidInput = errors.New("invalid input")
)

type SaveInput struct {
	Code     string
	Type     model.CouponType
	Value    float64
	IsActive bool
}

type Repository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	FindAll(ctx context.Context) ([]model.Coupon, error)
	Update(ctx context.Context, coupon *model.Coupon) error
	Delete(ctx context.Context, id string) error
}

type UseCase interface {
	CreateCoupon(ctx context.Context, input *SaveInput) (*model.Coupon, error)
	ListCoupons(ctx context.Context) ([]model.Coupon, error)
	UpdateCoupon(ctx context.Context, id string, input *SaveInput) (*model.Coupon, error)
	DeleteCoupon(ctx context.Context, id string) error

	// Validate resolves a code against a subtotal and returns the rupee
	// discount, clamped to [0, subtotal].
	Validate(ctx context.Context, code string, subtotal float64) (float64, error)
}
