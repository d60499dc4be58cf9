package order

import (
	"context"
	"errors"
	"time"

	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/internal/order/dto"
	"github.com/woodora/woodora-backend/internal/payment"
)

var (
	ErrNotFound     = errors.New("order not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrStoreClosed  = errors.New("store is closed for orders")
	ErrGateway      = errors.New("payment gateway error")
)

type Repository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Order, error)
	FindAll(ctx context.Context, status model.OrderStatus, page, pageSize int) ([]model.Order, int, error)
	SetGatewaySession(ctx context.Context, id, gatewayOrderID, paymentSessionID string) error

	// UpdateStatusIfPending flips a PENDING order to status and reports
	// whether this call made the transition. This is the idempotency gate
	// for paid-order side effects.
	UpdateStatusIfPending(ctx context.Context, id string, status model.OrderStatus) (bool, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
}

type UseCase interface {
	Checkout(ctx context.Context, input *dto.CheckoutInput) (*dto.CheckoutResult, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, status model.OrderStatus, page, pageSize int) ([]model.Order, int, error)

	// GetStatus returns the order's status, reconciling a still-PENDING
	// order against the gateway with a single lookup.
	GetStatus(ctx context.Context, id string) (*dto.StatusResult, error)

	// HandleWebhook applies a gateway status notification.
	HandleWebhook(ctx context.Context, gatewayOrderID, gatewayStatus string) error

	// UpdateStatus is the admin path for RETURNED/REFUNDED transitions.
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
}

// ProductCatalog resolves checkout items to priced products.
type ProductCatalog interface {
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
}

// CouponValidator computes a coupon's discount against a subtotal.
type CouponValidator interface {
	Validate(ctx context.Context, code string, subtotal float64) (float64, error)
}

// SettingsProvider is the cached site-settings read path.
type SettingsProvider interface {
	Get(ctx context.Context) (*model.SiteSettings, error)
}

// Gateway is the payment-session surface of the Cashfree client.
type Gateway interface {
	CreateSession(ctx context.Context, req *payment.SessionRequest) (*payment.Session, error)
	GetOrder(ctx context.Context, gatewayOrderID string) (*payment.OrderState, error)
}

// Notifier sends the one-shot order confirmation.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, o *model.Order) error
}

// Publisher emits order events to the broker.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// Idempotency is the SETNX-style guard keyed by order id, so the
// confirmation message goes out at most once no matter how the paid
// transition is observed (webhook, poll, both).
type Idempotency interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}
