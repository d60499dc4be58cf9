package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusFailed    OrderStatus = "FAILED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusReturned  OrderStatus = "RETURNED"
	OrderStatusRefunded  OrderStatus = "REFUNDED"
)

// Terminal reports whether the status can no longer change. RETURNED can
// still move to REFUNDED.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusPaid, OrderStatusFailed, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // unit price at purchase time, tier discount applied
}

// OrderItemList is a []OrderItem persisted as a JSON column.
type OrderItemList []OrderItem

func (l OrderItemList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *OrderItemList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into OrderItemList", src)
	}
}

type Order struct {
	BaseModel
	CustomerName     string        `db:"customer_name" json:"customer_name"`
	CustomerPhone    string        `db:"customer_phone" json:"customer_phone"`
	CustomerEmail    *string       `db:"customer_email" json:"customer_email"`
	Address          string        `db:"address" json:"address"`
	Items            OrderItemList `db:"items" json:"items"`
	Status           OrderStatus   `db:"status" json:"status"`
	CouponCode       *string       `db:"coupon_code" json:"coupon_code"`
	Subtotal         float64       `db:"subtotal" json:"subtotal"`
	Discount         float64       `db:"discount" json:"discount"`
	Shipping         float64       `db:"shipping" json:"shipping"`
	Total            float64       `db:"total" json:"total"`
	AdvanceAmount    float64       `db:"advance_amount" json:"advance_amount"`
	RemainingAmount  float64       `db:"remaining_amount" json:"remaining_amount"`
	GatewayOrderID   *string       `db:"gateway_order_id" json:"gateway_order_id"`
	PaymentSessionID *string       `db:"payment_session_id" json:"payment_session_id"`
}
