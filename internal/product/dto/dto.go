package dto

type ProductFilters struct {
	Category    string
	Tag         string
	IsActive    *bool
	SearchQuery string // name, sku or description search
	SortBy      string // name, price, created_at
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}

type CreateProductInput struct {
	SKU              string
	Name             string
	Description      string
	RegularPrice     float64
	SalePrice        *float64
	Category         string
	Tags             []string
	Inventory        int
	Options          []OptionInput
	ColorOptions     []string
	AllowImageUpload bool
	ImageURL         string
	Length           *float64
	Width            *float64
	Height           *float64
	Weight           *float64
}

type UpdateProductInput struct {
	SKU              string
	Name             string
	Description      string
	RegularPrice     float64
	SalePrice        *float64
	Category         string
	Tags             []string
	Inventory        int
	Options          []OptionInput
	ColorOptions     []string
	AllowImageUpload bool
	ImageURL         string
	Length           *float64
	Width            *float64
	Height           *float64
	Weight           *float64
	IsActive         bool
}

type OptionInput struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// BulkPriceInput adjusts prices across products in one transaction.
// Mode "percent" shifts regular prices by Value percent (negative allowed);
// mode "flat" adds Value rupees. Category, when set, scopes the update.
type BulkPriceInput struct {
	Mode     string
	Value    float64
	Category string
}

// BulkTagsInput adds and removes tags on the named SKUs in one transaction.
type BulkTagsInput struct {
	SKUs   []string
	Add    []string
	Remove []string
}

// ProductQuote is the priced bulk quote for one product.
type ProductQuote struct {
	SKU             string  `json:"sku"`
	Quantity        int     `json:"quantity"`
	MinQuantity     int     `json:"min_quantity"`
	DiscountPercent int     `json:"discount_percent"`
	UnitPrice       float64 `json:"unit_price"`
	Subtotal        float64 `json:"subtotal"`
	Shipping        float64 `json:"shipping"`
	Total           float64 `json:"total"`
}
