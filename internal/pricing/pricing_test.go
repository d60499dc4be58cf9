package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinQuantity(t *testing.T) {
	assert.Equal(t, 100, MinQuantity("keychain"))
	assert.Equal(t, 100, MinQuantity("gifts, Keychain"))
	assert.Equal(t, 25, MinQuantity("nameplate"))
	assert.Equal(t, 25, MinQuantity(""))
}

func TestTierDiscountPercent(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		minQty   int
		want     int
	}{
		{"below minimum", 10, 25, 0},
		{"at minimum", 25, 25, 0},
		{"just above minimum, no full step", 74, 25, 0},
		{"first step", 75, 25, 2},
		{"second step", 125, 25, 3},
		{"three steps", 175, 25, 4},
		{"capped", 1000, 25, 7},
		{"keychain at minimum", 100, 100, 0},
		{"keychain first step", 150, 100, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TierDiscountPercent(tc.quantity, tc.minQty))
		})
	}
}

func TestShippingCost(t *testing.T) {
	assert.Equal(t, 99.0, ShippingCost(100, 2999, 99))
	// boundary pays shipping: the comparison is strict
	assert.Equal(t, 99.0, ShippingCost(2999, 2999, 99))
	assert.Equal(t, 0.0, ShippingCost(3000, 2999, 99))
	// zero threshold and zero fee fall back to the defaults
	assert.Equal(t, float64(DefaultShippingFee), ShippingCost(2999, 0, 0))
	assert.Equal(t, 0.0, ShippingCost(3000, 0, 0))
}

func TestShippingCostUsesConfiguredFee(t *testing.T) {
	assert.Equal(t, 149.0, ShippingCost(2999, 2999, 149))
	assert.Equal(t, 0.0, ShippingCost(3000, 2999, 149))
}

func TestCouponDiscountClamped(t *testing.T) {
	assert.Equal(t, 100.0, CouponDiscount("percent", 10, 1000))
	assert.Equal(t, 50.0, CouponDiscount("flat", 50, 1000))
	// flat value larger than subtotal clamps to subtotal
	assert.Equal(t, 200.0, CouponDiscount("flat", 500, 200))
	// negative value clamps to zero
	assert.Equal(t, 0.0, CouponDiscount("percent", -10, 1000))
	assert.Equal(t, 0.0, CouponDiscount("bogus", 10, 1000))
}

func TestBuildQuoteAtMinimum(t *testing.T) {
	// quantity=25 at the minimum, listPrice=100: no discount, shipping due
	q := BuildQuote([]Line{{ListPrice: 100, Quantity: 25, MinQuantity: 25}}, 2999, 99, "", 0)
	assert.Equal(t, 2500.0, q.Subtotal)
	assert.Equal(t, 0.0, q.Discount)
	assert.Equal(t, 99.0, q.Shipping)
	assert.Equal(t, 2599.0, q.Total)
}

func TestBuildQuoteTieredBulk(t *testing.T) {
	// quantity=175: additional 150 => 3 steps => 4% => 96/piece
	line := Line{ListPrice: 100, Quantity: 175, MinQuantity: 25}
	assert.Equal(t, 4, line.DiscountPercent())
	assert.Equal(t, 96.0, line.UnitPrice())

	q := BuildQuote([]Line{line}, 2999, 99, "", 0)
	assert.Equal(t, 16800.0, q.Subtotal)
	assert.Equal(t, 0.0, q.Shipping)
	assert.Equal(t, 16800.0, q.Total)
}

func TestBuildQuoteCouponApplyRemove(t *testing.T) {
	lines := []Line{{ListPrice: 100, Quantity: 10, MinQuantity: 25}}

	base := BuildQuote(lines, 2999, 99, "", 0)
	withCoupon := BuildQuote(lines, 2999, 99, "percent", 10)
	assert.Equal(t, 100.0, withCoupon.Discount)
	assert.Equal(t, base.Total-100, withCoupon.Total)

	// removing the coupon restores the exact pre-coupon totals
	removed := BuildQuote(lines, 2999, 99, "", 0)
	assert.Equal(t, base, removed)
}

func TestBuildQuoteDiscountNeverNegative(t *testing.T) {
	q := BuildQuote([]Line{{ListPrice: 10, Quantity: 1, MinQuantity: 25}}, 2999, 99, "flat", 5000)
	assert.Equal(t, 10.0, q.Discount)
	// merchandise part floors at zero; shipping is still owed
	assert.Equal(t, 99.0, q.Total)
}

func TestBuildQuoteConfiguredShippingFee(t *testing.T) {
	q := BuildQuote([]Line{{ListPrice: 100, Quantity: 25, MinQuantity: 25}}, 2999, 149, "", 0)
	assert.Equal(t, 149.0, q.Shipping)
	assert.Equal(t, 2649.0, q.Total)
}

func TestAdvanceAmountFloor(t *testing.T) {
	assert.Equal(t, 2599.0, AdvanceAmount(2599, 100))
	assert.Equal(t, 130.0, AdvanceAmount(2599, 5))
	// never below the gateway's ₹1 floor
	assert.Equal(t, 1.0, AdvanceAmount(5, 5))
	assert.Equal(t, 1.0, AdvanceAmount(0, 100))
	assert.Equal(t, 1.0, AdvanceAmount(-10, 100))
}
