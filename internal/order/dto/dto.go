package dto

type CheckoutItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type CheckoutInput struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Address       string
	Items         []CheckoutItem
	CouponCode    string
}

type CheckoutResult struct {
	OrderID          string  `json:"order_id"`
	Subtotal         float64 `json:"subtotal"`
	Discount         float64 `json:"discount"`
	Shipping         float64 `json:"shipping"`
	Total            float64 `json:"total"`
	AdvanceAmount    float64 `json:"advance_amount"`
	RemainingAmount  float64 `json:"remaining_amount"`
	PaymentSessionID string  `json:"payment_session_id"`
	PaymentURL       string  `json:"payment_url"`
	PaymentMode      string  `json:"payment_mode"` // sandbox or production, for the widget SDK
}

type StatusResult struct {
	OrderID     string  `json:"order_id"`
	OrderStatus string  `json:"order_status"`
	OrderAmount float64 `json:"order_amount"`
	PaymentURL  string  `json:"payment_url,omitempty"`
}

// OrderPaidEvent is published to the orders topic when an order first
// transitions to PAID; the inventory listener deducts stock from it.
type OrderPaidEvent struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	Payload   OrderPaidPayload `json:"payload"`
	Timestamp string           `json:"timestamp"`
}

type OrderPaidPayload struct {
	ID    string          `json:"id"`
	Items []OrderItemSold `json:"items"`
}

type OrderItemSold struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

const EventTypeOrderPaid = "OrderPaid"
