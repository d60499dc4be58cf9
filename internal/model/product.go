package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Product is keyed by its SKU: the admin form supplies it and the storefront
// links by it, so there is no surrogate id.
type Product struct {
	BaseModel
	Name             string     `db:"name" json:"name"`
	Description      string     `db:"description" json:"description"` // HTML
	RegularPrice     float64    `db:"regular_price" json:"regular_price"`
	SalePrice        *float64   `db:"sale_price" json:"sale_price"`
	Category         string     `db:"category" json:"category"` // comma-joined category names
	Tags             StringList `db:"tags" json:"tags"`
	Inventory        int        `db:"inventory" json:"inventory"`
	Options          OptionList `db:"options" json:"options"`
	ColorOptions     StringList `db:"color_options" json:"color_options"`
	AllowImageUpload bool       `db:"allow_image_upload" json:"allow_image_upload"`
	ImageURL         *string    `db:"image_url" json:"image_url"`
	Length           *float64   `db:"length_cm" json:"length_cm"`
	Width            *float64   `db:"width_cm" json:"width_cm"`
	Height           *float64   `db:"height_cm" json:"height_cm"`
	Weight           *float64   `db:"weight_g" json:"weight_g"`
	IsActive         bool       `db:"is_active" json:"is_active"`
}

// ListPrice is the price the storefront charges: sale price when set, regular
// price otherwise.
func (p *Product) ListPrice() float64 {
	if p.SalePrice != nil && *p.SalePrice > 0 {
		return *p.SalePrice
	}
	return p.RegularPrice
}

type VariantOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// OptionList is a []VariantOption persisted as a JSON column.
type OptionList []VariantOption

func (l OptionList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *OptionList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into OptionList", src)
	}
}
