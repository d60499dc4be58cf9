package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/woodora/woodora-backend/internal/coupon"
	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/internal/pricing"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type couponUseCase struct {
	repo   coupon.Repository
	logger logger.ZapLogger
}

func NewCouponUseCase(repo coupon.Repository, log logger.ZapLogger) coupon.UseCase {
	return &couponUseCase{repo: repo, logger: log}
}

func validateInput(input *coupon.SaveInput) error {
	if input.Code == "" || input.Value <= 0 {
		return coupon.ErrInvalidInput
	}
	if input.Type != model.CouponTypePercent && input.Type != model.CouponTypeFlat {
		return coupon.ErrInvalidInput
	}
	if input.Type == model.CouponTypePercent && input.Value > 100 {
		return coupon.ErrInvalidInput
	}
	return nil
}

func (uc *couponUseCase) CreateCoupon(ctx context.Context, input *coupon.SaveInput) (*model.Coupon, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	existing, err := uc.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, coupon.ErrCodeExists
	}

	now := time.Now()
	c := &model.Coupon{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Code:      code,
		Type:      input.Type,
		Value:     input.Value,
		IsActive:  input.IsActive,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *couponUseCase) ListCoupons(ctx context.Context) ([]model.Coupon, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *couponUseCase) UpdateCoupon(ctx context.Context, id string, input *coupon.SaveInput) (*model.Coupon, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	existing, err := uc.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.ID != id {
		// only rename onto a free code
		if existing != nil {
			return nil, coupon.ErrCodeExists
		}
		existing, err = uc.findByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	existing.Code = code
	existing.Type = input.Type
	existing.Value = input.Value
	existing.IsActive = input.IsActive
	existing.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (uc *couponUseCase) findByID(ctx context.Context, id string) (*model.Coupon, error) {
	all, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, coupon.ErrNotFound
}

func (uc *couponUseCase) DeleteCoupon(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *couponUseCase) Validate(ctx context.Context, code string, subtotal float64) (float64, error) {
	if subtotal <= 0 {
		return 0, coupon.ErrInvalidInput
	}

	c, err := uc.repo.FindByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, coupon.ErrNotFound
	}
	if !c.IsActive {
		return 0, coupon.ErrInactive
	}

	discount := pricing.CouponDiscount(string(c.Type), c.Value, subtotal)
	if discount <= 0 {
		return 0, coupon.ErrNoDiscount
	}
	return discount, nil
}
