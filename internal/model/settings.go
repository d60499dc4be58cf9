package model

import "time"

// SiteSettingsID is the fixed key of the singleton settings row.
const SiteSettingsID = "default"

// SiteSettings is a singleton configuration record read on nearly every
// request. Consumers must go through the settings provider, which caches it.
type SiteSettings struct {
	ID                    string    `db:"id" json:"id"`
	StoreOpen             bool      `db:"store_open" json:"store_open"`
	FreeShippingThreshold float64   `db:"free_shipping_threshold" json:"free_shipping_threshold"`
	ShippingFee           float64   `db:"shipping_fee" json:"shipping_fee"`
	DeliveryDaysMin       int       `db:"delivery_days_min" json:"delivery_days_min"`
	DeliveryDaysMax       int       `db:"delivery_days_max" json:"delivery_days_max"`
	CurrencySymbol        string    `db:"currency_symbol" json:"currency_symbol"`
	BusinessName          string    `db:"business_name" json:"business_name"`
	BusinessAddress       string    `db:"business_address" json:"business_address"`
	BusinessPhone         string    `db:"business_phone" json:"business_phone"`
	TaxPercent            float64   `db:"tax_percent" json:"tax_percent"`
	AdvancePaymentEnabled bool      `db:"advance_payment_enabled" json:"advance_payment_enabled"`
	AdvancePercent        float64   `db:"advance_percent" json:"advance_percent"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultSiteSettings are the values used until the admin saves the record.
func DefaultSiteSettings() *SiteSettings {
	return &SiteSettings{
		ID:                    SiteSettingsID,
		StoreOpen:             true,
		FreeShippingThreshold: 2999,
		ShippingFee:           99,
		DeliveryDaysMin:       5,
		DeliveryDaysMax:       9,
		CurrencySymbol:        "₹",
		TaxPercent:            0,
		AdvancePaymentEnabled: false,
		AdvancePercent:        100,
	}
}
