package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/internal/order"
	"github.com/woodora/woodora-backend/internal/order/dto"
	"github.com/woodora/woodora-backend/internal/payment"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*model.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*model.Order{}}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id string) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) FindByGatewayOrderID(_ context.Context, gatewayOrderID string) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.GatewayOrderID != nil && *o.GatewayOrderID == gatewayOrderID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context, status model.OrderStatus, page, pageSize int) ([]model.Order, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Order{}
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			out = append(out, *o)
		}
	}
	return out, len(out), nil
}

func (r *fakeOrderRepo) SetGatewaySession(_ context.Context, id, gatewayOrderID, paymentSessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.orders[id]
	o.GatewayOrderID = &gatewayOrderID
	o.PaymentSessionID = &paymentSessionID
	return nil
}

func (r *fakeOrderRepo) UpdateStatusIfPending(_ context.Context, id string, status model.OrderStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != model.OrderStatusPending {
		return false, nil
	}
	o.Status = status
	return true, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status model.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[id].Status = status
	return nil
}

type fakeCatalog struct {
	products map[string]*model.Product
}

func (c *fakeCatalog) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	return c.products[sku], nil
}

type fakeCoupons struct {
	discount float64
	err      error
}

func (c *fakeCoupons) Validate(_ context.Context, code string, subtotal float64) (float64, error) {
	return c.discount, c.err
}

type fakeSettings struct {
	settings *model.SiteSettings
}

func (s *fakeSettings) Get(_ context.Context) (*model.SiteSettings, error) {
	return s.settings, nil
}

type fakeGateway struct {
	createErr error
	state     *payment.OrderState
	stateErr  error
	created   int
}

func (g *fakeGateway) CreateSession(_ context.Context, req *payment.SessionRequest) (*payment.Session, error) {
	g.created++
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &payment.Session{
		GatewayOrderID:   "cf_" + req.OrderID,
		PaymentSessionID: "session_" + req.OrderID,
		PaymentURL:       "https://pay.example/" + req.OrderID,
	}, nil
}

func (g *fakeGateway) GetOrder(_ context.Context, gatewayOrderID string) (*payment.OrderState, error) {
	if g.stateErr != nil {
		return nil, g.stateErr
	}
	return g.state, nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	sends int
}

func (n *fakeNotifier) SendOrderConfirmation(_ context.Context, _ *model.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sends++
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	messages [][]byte
}

func (p *fakePublisher) Publish(_ context.Context, key string, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, value)
	return nil
}

// fakeIdem mimics SETNX: first caller per key wins.
type fakeIdem struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newFakeIdem() *fakeIdem {
	return &fakeIdem{keys: map[string]bool{}}
}

func (i *fakeIdem) AcquireLock(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.keys[key] {
		return false, nil
	}
	i.keys[key] = true
	return true, nil
}

type fixture struct {
	repo      *fakeOrderRepo
	gateway   *fakeGateway
	notifier  *fakeNotifier
	publisher *fakePublisher
	coupons   *fakeCoupons
	settings  *fakeSettings
	uc        order.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	coasters := &model.Product{
		BaseModel:    model.BaseModel{ID: "WC-010"},
		Name:         "Teak Coaster Set",
		RegularPrice: 199,
		Category:     "Coasters",
		IsActive:     true,
	}
	f := &fixture{
		repo:      newFakeOrderRepo(),
		gateway:   &fakeGateway{},
		notifier:  &fakeNotifier{},
		publisher: &fakePublisher{},
		coupons:   &fakeCoupons{},
		settings:  &fakeSettings{settings: model.DefaultSiteSettings()},
	}
	f.uc = NewOrderUseCase(Deps{
		Repo:     f.repo,
		Catalog:  &fakeCatalog{products: map[string]*model.Product{"WC-010": coasters}},
		Coupons:  f.coupons,
		Settings: f.settings,
		Gateway:  f.gateway,
		Notifier: f.notifier,
		Events:   f.publisher,
		Idem:     newFakeIdem(),
		Mode:     "sandbox",
		Logger:   logger.NewZapLogger(&logger.ZapLoggerConfig{Level: "error", Encoding: "console"}),
	})
	return f
}

func validInput() *dto.CheckoutInput {
	return &dto.CheckoutInput{
		CustomerName:  "Asha Patel",
		CustomerPhone: "9876543210",
		Address:       "14 MG Road, Bengaluru",
		Items:         []dto.CheckoutItem{{SKU: "WC-010", Quantity: 25}},
	}
}

func TestCheckoutCreatesPendingOrderWithSession(t *testing.T) {
	f := newFixture(t)

	result, err := f.uc.Checkout(context.Background(), validInput())
	require.NoError(t, err)

	// 25 x 199 with no tier discount, above the free shipping threshold
	assert.Equal(t, 4975.0, result.Subtotal)
	assert.Equal(t, 0.0, result.Shipping)
	assert.Equal(t, 4975.0, result.Total)
	assert.Equal(t, 4975.0, result.AdvanceAmount)
	assert.Equal(t, "session_"+result.OrderID, result.PaymentSessionID)
	assert.Equal(t, "sandbox", result.PaymentMode)

	o, err := f.uc.GetOrder(context.Background(), result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, o.Status)
	require.NotNil(t, o.GatewayOrderID)
	assert.Equal(t, "cf_"+o.ID, *o.GatewayOrderID)
}

func TestCheckoutChargesConfiguredShippingFee(t *testing.T) {
	f := newFixture(t)
	f.settings.settings.FreeShippingThreshold = 5000
	f.settings.settings.ShippingFee = 149

	result, err := f.uc.Checkout(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, 4975.0, result.Subtotal)
	assert.Equal(t, 149.0, result.Shipping)
	assert.Equal(t, 5124.0, result.Total)
}

func TestCheckoutValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bad := validInput()
	bad.CustomerPhone = "12345"
	_, err := f.uc.Checkout(ctx, bad)
	assert.ErrorIs(t, err, order.ErrInvalidInput)

	bad = validInput()
	bad.Items = nil
	_, err = f.uc.Checkout(ctx, bad)
	assert.ErrorIs(t, err, order.ErrInvalidInput)

	bad = validInput()
	bad.Items[0].SKU = "MISSING"
	_, err = f.uc.Checkout(ctx, bad)
	assert.ErrorIs(t, err, order.ErrInvalidInput)

	bad = validInput()
	bad.Items[0].Quantity = 10 // below the 25 minimum
	_, err = f.uc.Checkout(ctx, bad)
	assert.ErrorIs(t, err, order.ErrInvalidInput)
}

func TestCheckoutClosedStore(t *testing.T) {
	f := newFixture(t)
	closed := model.DefaultSiteSettings()
	closed.StoreOpen = false
	f.uc = NewOrderUseCase(Deps{
		Repo:     f.repo,
		Catalog:  &fakeCatalog{products: map[string]*model.Product{}},
		Coupons:  f.coupons,
		Settings: &fakeSettings{settings: closed},
		Gateway:  f.gateway,
		Logger:   logger.NewZapLogger(&logger.ZapLoggerConfig{Level: "error", Encoding: "console"}),
	})

	_, err := f.uc.Checkout(context.Background(), validInput())
	assert.ErrorIs(t, err, order.ErrStoreClosed)
}

func TestCheckoutGatewayFailureKeepsOrderPending(t *testing.T) {
	f := newFixture(t)
	f.gateway.createErr = errors.New("gateway down")

	_, err := f.uc.Checkout(context.Background(), validInput())
	assert.ErrorIs(t, err, order.ErrGateway)

	orders, total, err := f.uc.ListOrders(context.Background(), model.OrderStatusPending, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Nil(t, orders[0].GatewayOrderID)
}

func TestCheckoutAppliesCouponDiscount(t *testing.T) {
	f := newFixture(t)
	f.coupons.discount = 497.5
	input := validInput()
	input.CouponCode = "WOODY10"

	result, err := f.uc.Checkout(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 497.5, result.Discount)
	assert.Equal(t, 4477.5, result.Total)
}

func TestWebhookMarksPaidExactlyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.uc.Checkout(ctx, validInput())
	require.NoError(t, err)

	gatewayID := "cf_" + result.OrderID
	for i := 0; i < 3; i++ {
		require.NoError(t, f.uc.HandleWebhook(ctx, gatewayID, "PAID"))
	}

	o, err := f.uc.GetOrder(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, o.Status)
	assert.Equal(t, 1, f.notifier.sends)
	require.Len(t, f.publisher.messages, 1)

	var event dto.OrderPaidEvent
	require.NoError(t, json.Unmarshal(f.publisher.messages[0], &event))
	assert.Equal(t, dto.EventTypeOrderPaid, event.EventType)
	assert.Equal(t, result.OrderID, event.Payload.ID)
	require.Len(t, event.Payload.Items, 1)
	assert.Equal(t, 25, event.Payload.Items[0].Quantity)
}

func TestWebhookUnknownOrder(t *testing.T) {
	f := newFixture(t)
	err := f.uc.HandleWebhook(context.Background(), "cf_unknown", "PAID")
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestStatusPollReconcilesPendingOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.uc.Checkout(ctx, validInput())
	require.NoError(t, err)

	f.gateway.state = &payment.OrderState{Status: "PAID", Amount: result.AdvanceAmount}
	status, err := f.uc.GetStatus(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "PAID", status.OrderStatus)
	assert.Equal(t, 1, f.notifier.sends)

	// the poll and a late webhook together still notify once
	require.NoError(t, f.uc.HandleWebhook(ctx, "cf_"+result.OrderID, "PAID"))
	assert.Equal(t, 1, f.notifier.sends)
	assert.Len(t, f.publisher.messages, 1)
}

func TestStatusPollSurvivesGatewayError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.uc.Checkout(ctx, validInput())
	require.NoError(t, err)

	f.gateway.stateErr = errors.New("timeout")
	status, err := f.uc.GetStatus(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusPending), status.OrderStatus)
}

func TestTerminalStatusIsImmutable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.uc.Checkout(ctx, validInput())
	require.NoError(t, err)

	gatewayID := "cf_" + result.OrderID
	require.NoError(t, f.uc.HandleWebhook(ctx, gatewayID, "FAILED"))
	require.NoError(t, f.uc.HandleWebhook(ctx, gatewayID, "PAID"))

	o, err := f.uc.GetOrder(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusFailed, o.Status)
	assert.Zero(t, f.notifier.sends)
}

func TestAdminStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.uc.Checkout(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, f.uc.HandleWebhook(ctx, "cf_"+result.OrderID, "PAID"))

	require.NoError(t, f.uc.UpdateStatus(ctx, result.OrderID, model.OrderStatusReturned))
	require.NoError(t, f.uc.UpdateStatus(ctx, result.OrderID, model.OrderStatusRefunded))

	err = f.uc.UpdateStatus(ctx, result.OrderID, model.OrderStatusPaid)
	assert.ErrorIs(t, err, order.ErrInvalidInput)

	o, err := f.uc.GetOrder(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusRefunded, o.Status)
}
