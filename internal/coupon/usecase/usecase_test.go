package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodora/woodora-backend/internal/coupon"
	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type fakeCouponRepo struct {
	coupons map[string]*model.Coupon // keyed by code
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{coupons: map[string]*model.Coupon{}}
}

func (r *fakeCouponRepo) Create(_ context.Context, c *model.Coupon) error {
	r.coupons[c.Code] = c
	return nil
}

func (r *fakeCouponRepo) FindByCode(_ context.Context, code string) (*model.Coupon, error) {
	c, ok := r.coupons[strings.ToUpper(code)]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCouponRepo) FindAll(_ context.Context) ([]model.Coupon, error) {
	out := []model.Coupon{}
	for _, c := range r.coupons {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCouponRepo) Update(_ context.Context, c *model.Coupon) error {
	for code, existing := range r.coupons {
		if existing.ID == c.ID && code != c.Code {
			delete(r.coupons, code)
		}
	}
	r.coupons[c.Code] = c
	return nil
}

func (r *fakeCouponRepo) Delete(_ context.Context, id string) error {
	for code, c := range r.coupons {
		if c.ID == id {
			delete(r.coupons, code)
			return nil
		}
	}
	return nil
}

func testLogger() logger.ZapLogger {
	return logger.NewZapLogger(&logger.ZapLoggerConfig{Level: "error", Encoding: "console"})
}

func TestCreateCouponUppercasesCode(t *testing.T) {
	uc := NewCouponUseCase(newFakeCouponRepo(), testLogger())

	c, err := uc.CreateCoupon(context.Background(), &coupon.SaveInput{
		Code: "woody10", Type: model.CouponTypePercent, Value: 10, IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "WOODY10", c.Code)
}

func TestCreateCouponRejectsDuplicates(t *testing.T) {
	uc := NewCouponUseCase(newFakeCouponRepo(), testLogger())
	ctx := context.Background()

	_, err := uc.CreateCoupon(ctx, &coupon.SaveInput{Code: "SAVE50", Type: model.CouponTypeFlat, Value: 50, IsActive: true})
	require.NoError(t, err)

	_, err = uc.CreateCoupon(ctx, &coupon.SaveInput{Code: "save50", Type: model.CouponTypeFlat, Value: 50, IsActive: true})
	assert.ErrorIs(t, err, coupon.ErrCodeExists)
}

func TestCreateCouponValidation(t *testing.T) {
	uc := NewCouponUseCase(newFakeCouponRepo(), testLogger())
	ctx := context.Background()

	cases := []coupon.SaveInput{
		{Code: "", Type: model.CouponTypePercent, Value: 10},
		{Code: "X", Type: model.CouponTypePercent, Value: 0},
		{Code: "X", Type: model.CouponTypePercent, Value: 150},
		{Code: "X", Type: "bogus", Value: 10},
	}
	for _, input := range cases {
		_, err := uc.CreateCoupon(ctx, &input)
		assert.ErrorIs(t, err, coupon.ErrInvalidInput)
	}
}

func TestValidatePercentCoupon(t *testing.T) {
	uc := NewCouponUseCase(newFakeCouponRepo(), testLogger())
	ctx := context.Background()

	_, err := uc.CreateCoupon(ctx, &coupon.SaveInput{Code: "WOODY10", Type: model.CouponTypePercent, Value: 10, IsActive: true})
	require.NoError(t, err)

	discount, err := uc.Validate(ctx, "WOODY10", 1000)
	require.NoError(t, err)
	assert.Equal(t, 100.0, discount)

	// lookup is case-insensitive
	discount, err = uc.Validate(ctx, "woody10", 1000)
	require.NoError(t, err)
	assert.Equal(t, 100.0, discount)
}

func TestValidateFlatCouponClampsToSubtotal(t *testing.T) {
	uc := NewCouponUseCase(newFakeCouponRepo(), testLogger())
	ctx := context.Background()

	_, err := uc.CreateCoupon(ctx, &coupon.SaveInput{Code: "BIG500", Type: model.CouponTypeFlat, Value: 500, IsActive: true})
	require.NoError(t, err)

	discount, err := uc.Validate(ctx, "BIG500", 300)
	require.NoError(t, err)
	assert.Equal(t, 300.0, discount)
}

func TestValidateUnknownAndInactive(t *testing.T) {
	repo := newFakeCouponRepo()
	uc := NewCouponUseCase(repo, testLogger())
	ctx := context.Background()

	_, err := uc.Validate(ctx, "NOPE", 1000)
	assert.ErrorIs(t, err, coupon.ErrNotFound)

	_, err = uc.CreateCoupon(ctx, &coupon.SaveInput{Code: "OLD", Type: model.CouponTypeFlat, Value: 50, IsActive: false})
	require.NoError(t, err)

	_, err = uc.Validate(ctx, "OLD", 1000)
	assert.ErrorIs(t, err, coupon.ErrInactive)

	_, err = uc.Validate(ctx, "OLD", 0)
	assert.ErrorIs(t, err, coupon.ErrInvalidInput)
}

func TestUpdateCouponRenameOntoTakenCode(t *testing.T) {
	uc := NewCouponUseCase(newFakeCouponRepo(), testLogger())
	ctx := context.Background()

	a, err := uc.CreateCoupon(ctx, &coupon.SaveInput{Code: "A10", Type: model.CouponTypePercent, Value: 10, IsActive: true})
	require.NoError(t, err)
	_, err = uc.CreateCoupon(ctx, &coupon.SaveInput{Code: "B20", Type: model.CouponTypePercent, Value: 20, IsActive: true})
	require.NoError(t, err)

	_, err = uc.UpdateCoupon(ctx, a.ID, &coupon.SaveInput{Code: "B20", Type: model.CouponTypePercent, Value: 10, IsActive: true})
	assert.ErrorIs(t, err, coupon.ErrCodeExists)

	updated, err := uc.UpdateCoupon(ctx, a.ID, &coupon.SaveInput{Code: "A15", Type: model.CouponTypePercent, Value: 15, IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "A15", updated.Code)
	assert.Equal(t, 15.0, updated.Value)
}
