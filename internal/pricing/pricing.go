// Package pricing is the single pricing policy for the storefront. Every
// surface (product pages, checkout, coupon validation, admin previews) must
// compute money through this package so the rules cannot drift.
package pricing

import (
	"math"
	"strings"
)

const (
	// DefaultMinQuantity is the bulk-order floor for most categories.
	DefaultMinQuantity = 25
	// KeychainMinQuantity is the bulk-order floor for the keychain category.
	KeychainMinQuantity = 100

	// DefaultShippingFee is charged when site settings carry no fee and the
	// subtotal does not clear the free-shipping threshold.
	DefaultShippingFee = 99
	// DefaultFreeShippingThreshold applies when site settings carry no value.
	DefaultFreeShippingThreshold = 2999

	// MinPayableAmount is the gateway's nonzero-amount floor, in rupees.
	MinPayableAmount = 1

	baseTierDiscount = 2
	maxTierDiscount  = 7
	tierStepSize     = 50
)

// MinQuantity returns the bulk minimum for a product's category string,
// which may be a comma-joined list of category names.
func MinQuantity(category string) int {
	for _, part := range strings.Split(category, ",") {
		if strings.EqualFold(strings.TrimSpace(part), "keychain") {
			return KeychainMinQuantity
		}
	}
	return DefaultMinQuantity
}

// TierDiscountPercent computes the bulk-quantity discount: 0 at or below the
// minimum, then 2% once the first full 50-unit step above the minimum is
// reached, +1% per further step, capped at 7%.
func TierDiscountPercent(quantity, minQuantity int) int {
	if quantity <= minQuantity {
		return 0
	}
	steps := (quantity - minQuantity) / tierStepSize
	if steps < 1 {
		return 0
	}
	discount := baseTierDiscount + (steps - 1)
	if discount > maxTierDiscount {
		discount = maxTierDiscount
	}
	return discount
}

// UnitPrice applies a percentage discount to a list price.
func UnitPrice(listPrice float64, discountPercent int) float64 {
	return listPrice * (1 - float64(discountPercent)/100)
}

// ShippingCost is zero only when the subtotal strictly exceeds the threshold:
// an order landing exactly on the threshold still pays the flat fee. Both
// threshold and fee come from site settings; non-positive values fall back to
// the defaults.
func ShippingCost(subtotal, threshold, fee float64) float64 {
	if threshold <= 0 {
		threshold = DefaultFreeShippingThreshold
	}
	if fee <= 0 {
		fee = DefaultShippingFee
	}
	if subtotal > threshold {
		return 0
	}
	return fee
}

// CouponDiscount computes a coupon's rupee value against a subtotal, clamped
// to [0, subtotal]. kind is "percent" or "flat".
func CouponDiscount(kind string, value, subtotal float64) float64 {
	var discount float64
	switch kind {
	case "percent":
		discount = subtotal * value / 100
	case "flat":
		discount = value
	default:
		return 0
	}
	if discount < 0 {
		return 0
	}
	if discount > subtotal {
		return subtotal
	}
	return discount
}

// Line carries everything needed to price one cart line.
type Line struct {
	ListPrice   float64
	Quantity    int
	MinQuantity int
}

// DiscountPercent is the tier discount earned by this line's quantity.
func (l Line) DiscountPercent() int {
	return TierDiscountPercent(l.Quantity, l.MinQuantity)
}

// UnitPrice is the per-piece price after the tier discount.
func (l Line) UnitPrice() float64 {
	return UnitPrice(l.ListPrice, l.DiscountPercent())
}

// Subtotal is the line total.
func (l Line) Subtotal() float64 {
	return l.UnitPrice() * float64(l.Quantity)
}

// Quote is a fully computed order total.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// BuildQuote prices a set of lines under one policy: tier discounts per line,
// coupon discount against the merchandise subtotal, shipping decided by the
// pre-discount subtotal and added after the discount.
//
// couponKind may be empty for "no coupon".
func BuildQuote(lines []Line, freeShippingThreshold, shippingFee float64, couponKind string, couponValue float64) Quote {
	var subtotal float64
	for _, l := range lines {
		subtotal += l.Subtotal()
	}

	discount := 0.0
	if couponKind != "" {
		discount = CouponDiscount(couponKind, couponValue, subtotal)
	}

	discounted := subtotal - discount
	if discounted < 0 {
		discounted = 0
	}

	shipping := ShippingCost(subtotal, freeShippingThreshold, shippingFee)

	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    discounted + shipping,
	}
}

// AdvanceAmount is the portion of the total collected at checkout. percent is
// 100 for full payment. The result never drops below the gateway's ₹1 floor.
func AdvanceAmount(total, percent float64) float64 {
	amount := math.Round(total * percent / 100)
	if amount < MinPayableAmount {
		return MinPayableAmount
	}
	return amount
}
