package model

type CouponType string

const (
	CouponTypePercent CouponType = "percent"
	CouponTypeFlat    CouponType = "flat"
)

type Coupon struct {
	BaseModel
	Code     string     `db:"code" json:"code"`
	Type     CouponType `db:"type" json:"type"`
	Value    float64    `db:"value" json:"value"`
	IsActive bool       `db:"is_active" json:"is_active"`
}
