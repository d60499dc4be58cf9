package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/internal/order"
	"github.com/woodora/woodora-backend/internal/order/dto"
	"github.com/woodora/woodora-backend/internal/payment"
	"github.com/woodora/woodora-backend/internal/pricing"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type orderUseCase struct {
	repo     order.Repository
	catalog  order.ProductCatalog
	coupons  order.CouponValidator
	settings order.SettingsProvider
	gateway  order.Gateway
	notifier order.Notifier
	events   order.Publisher
	idem     order.Idempotency
	mode     string
	logger   logger.ZapLogger
}

type Deps struct {
	Repo     order.Repository
	Catalog  order.ProductCatalog
	Coupons  order.CouponValidator
	Settings order.SettingsProvider
	Gateway  order.Gateway
	Notifier order.Notifier
	Events   order.Publisher
	Idem     order.Idempotency
	Mode     string // gateway mode passed through to the widget SDK
	Logger   logger.ZapLogger
}

func NewOrderUseCase(d Deps) order.UseCase {
	return &orderUseCase{
		repo:     d.Repo,
		catalog:  d.Catalog,
		coupons:  d.Coupons,
		settings: d.Settings,
		gateway:  d.Gateway,
		notifier: d.Notifier,
		events:   d.Events,
		idem:     d.Idem,
		mode:     d.Mode,
		logger:   d.Logger,
	}
}

var phonePattern = regexp.MustCompile(`^(91)?[6-9]\d{9}$`)

func validateCheckout(input *dto.CheckoutInput) error {
	if input.CustomerName == "" || input.Address == "" || len(input.Items) == 0 {
		return order.ErrInvalidInput
	}
	if !phonePattern.MatchString(input.CustomerPhone) {
		return order.ErrInvalidInput
	}
	for _, it := range input.Items {
		if it.SKU == "" || it.Quantity <= 0 {
			return order.ErrInvalidInput
		}
	}
	return nil
}

// Checkout prices the cart server-side, creates a PENDING order and opens a
// payment session with the gateway. Client-supplied totals are never trusted.
func (uc *orderUseCase) Checkout(ctx context.Context, input *dto.CheckoutInput) (*dto.CheckoutResult, error) {
	if err := validateCheckout(input); err != nil {
		return nil, err
	}

	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.StoreOpen {
		return nil, order.ErrStoreClosed
	}

	lines := make([]pricing.Line, 0, len(input.Items))
	orderItems := make(model.OrderItemList, 0, len(input.Items))
	for _, it := range input.Items {
		p, err := uc.catalog.FindBySKU(ctx, it.SKU)
		if err != nil {
			return nil, err
		}
		if p == nil || !p.IsActive {
			return nil, fmt.Errorf("%w: %s", order.ErrInvalidInput, it.SKU)
		}

		line := pricing.Line{
			ListPrice:   p.ListPrice(),
			Quantity:    it.Quantity,
			MinQuantity: pricing.MinQuantity(p.Category),
		}
		if it.Quantity < line.MinQuantity {
			return nil, fmt.Errorf("%w: %s requires at least %d units", order.ErrInvalidInput, p.ID, line.MinQuantity)
		}
		lines = append(lines, line)
		orderItems = append(orderItems, model.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  it.Quantity,
			Price:     line.UnitPrice(),
		})
	}

	// resolve the coupon before quoting so an invalid code fails the
	// checkout instead of silently dropping the discount
	var subtotal float64
	for _, l := range lines {
		subtotal += l.Subtotal()
	}

	var couponKind string
	var couponValue float64
	var couponCode *string
	if input.CouponCode != "" {
		discount, err := uc.coupons.Validate(ctx, input.CouponCode, subtotal)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", order.ErrInvalidInput, err)
		}
		couponKind, couponValue = "flat", discount
		couponCode = &input.CouponCode
	}

	quote := pricing.BuildQuote(lines, settings.FreeShippingThreshold, settings.ShippingFee, couponKind, couponValue)

	advancePct := 100.0
	if settings.AdvancePaymentEnabled {
		advancePct = settings.AdvancePercent
	}
	advance := pricing.AdvanceAmount(quote.Total, advancePct)
	remaining := quote.Total - advance
	if remaining < 0 {
		remaining = 0
	}

	now := time.Now()
	o := &model.Order{
		BaseModel:       model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		Address:         input.Address,
		Items:           orderItems,
		Status:          model.OrderStatusPending,
		CouponCode:      couponCode,
		Subtotal:        quote.Subtotal,
		Discount:        quote.Discount,
		Shipping:        quote.Shipping,
		Total:           quote.Total,
		AdvanceAmount:   advance,
		RemainingAmount: remaining,
	}
	if input.CustomerEmail != "" {
		o.CustomerEmail = &input.CustomerEmail
	}

	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	session, err := uc.gateway.CreateSession(ctx, &payment.SessionRequest{
		OrderID:       o.ID,
		Amount:        advance,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
	})
	if err != nil {
		uc.logger.Error("payment session creation failed",
			zap.String("order_id", o.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", order.ErrGateway, err)
	}

	if err := uc.repo.SetGatewaySession(ctx, o.ID, session.GatewayOrderID, session.PaymentSessionID); err != nil {
		return nil, err
	}

	return &dto.CheckoutResult{
		OrderID:          o.ID,
		Subtotal:         o.Subtotal,
		Discount:         o.Discount,
		Shipping:         o.Shipping,
		Total:            o.Total,
		AdvanceAmount:    o.AdvanceAmount,
		RemainingAmount:  o.RemainingAmount,
		PaymentSessionID: session.PaymentSessionID,
		PaymentURL:       session.PaymentURL,
		PaymentMode:      uc.mode,
	}, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, order.ErrNotFound
	}
	return o, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, status model.OrderStatus, page, pageSize int) ([]model.Order, int, error) {
	return uc.repo.FindAll(ctx, status, page, pageSize)
}

// GetStatus serves the confirmation page. A still-PENDING order gets exactly
// one gateway lookup; if that fails the stored status is returned and the
// page shows "unconfirmed".
func (uc *orderUseCase) GetStatus(ctx context.Context, id string) (*dto.StatusResult, error) {
	o, err := uc.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &dto.StatusResult{
		OrderID:     o.ID,
		OrderStatus: string(o.Status),
		OrderAmount: o.AdvanceAmount,
	}

	if o.Status != model.OrderStatusPending || o.GatewayOrderID == nil {
		return result, nil
	}

	state, err := uc.gateway.GetOrder(ctx, *o.GatewayOrderID)
	if err != nil {
		uc.logger.Warn("gateway status lookup failed",
			zap.String("order_id", o.ID), zap.Error(err))
		return result, nil
	}

	status := mapGatewayStatus(state.Status)
	switch status {
	case model.OrderStatusPaid:
		if err := uc.markPaid(ctx, o); err != nil {
			return nil, err
		}
	case model.OrderStatusFailed, model.OrderStatusCancelled:
		if _, err := uc.repo.UpdateStatusIfPending(ctx, o.ID, status); err != nil {
			return nil, err
		}
	default:
		// gateway still settling; leave the order PENDING
		result.PaymentURL = state.PaymentURL
		return result, nil
	}

	result.OrderStatus = string(status)
	return result, nil
}

func (uc *orderUseCase) HandleWebhook(ctx context.Context, gatewayOrderID, gatewayStatus string) error {
	o, err := uc.repo.FindByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return err
	}
	if o == nil {
		return order.ErrNotFound
	}
	if o.Status.Terminal() {
		return nil
	}

	switch mapGatewayStatus(gatewayStatus) {
	case model.OrderStatusPaid:
		return uc.markPaid(ctx, o)
	case model.OrderStatusFailed:
		_, err := uc.repo.UpdateStatusIfPending(ctx, o.ID, model.OrderStatusFailed)
		return err
	case model.OrderStatusCancelled:
		_, err := uc.repo.UpdateStatusIfPending(ctx, o.ID, model.OrderStatusCancelled)
		return err
	}
	return nil
}

func (uc *orderUseCase) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	switch status {
	case model.OrderStatusReturned, model.OrderStatusRefunded, model.OrderStatusCancelled:
	default:
		return order.ErrInvalidInput
	}
	o, err := uc.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	return uc.repo.UpdateStatus(ctx, o.ID, status)
}

// markPaid performs the PENDING -> PAID transition and its one-shot side
// effects. The row update is the gate: only the caller that wins it
// publishes the event and sends the confirmation.
func (uc *orderUseCase) markPaid(ctx context.Context, o *model.Order) error {
	transitioned, err := uc.repo.UpdateStatusIfPending(ctx, o.ID, model.OrderStatusPaid)
	if err != nil {
		return err
	}
	if !transitioned {
		return nil
	}
	o.Status = model.OrderStatusPaid

	uc.publishPaid(ctx, o)
	uc.notifyPaid(ctx, o)
	return nil
}

func (uc *orderUseCase) publishPaid(ctx context.Context, o *model.Order) {
	if uc.events == nil {
		return
	}

	items := make([]dto.OrderItemSold, len(o.Items))
	for i, it := range o.Items {
		items[i] = dto.OrderItemSold{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	event := dto.OrderPaidEvent{
		EventID:   uuid.New().String(),
		EventType: dto.EventTypeOrderPaid,
		Payload:   dto.OrderPaidPayload{ID: o.ID, Items: items},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(event)
	if err != nil {
		uc.logger.Error("failed to marshal order event", zap.Error(err))
		return
	}
	if err := uc.events.Publish(ctx, o.ID, data); err != nil {
		uc.logger.Error("failed to publish order event",
			zap.String("order_id", o.ID), zap.Error(err))
	}
}

func (uc *orderUseCase) notifyPaid(ctx context.Context, o *model.Order) {
	if uc.notifier == nil || uc.idem == nil {
		return
	}

	// server-side idempotency key; a reloaded confirmation page or a late
	// webhook cannot re-send the message
	acquired, err := uc.idem.AcquireLock(ctx, "notify:order:"+o.ID, uuid.New().String(), 0)
	if err != nil {
		uc.logger.Error("idempotency check failed",
			zap.String("order_id", o.ID), zap.Error(err))
		return
	}
	if !acquired {
		return
	}

	if err := uc.notifier.SendOrderConfirmation(ctx, o); err != nil {
		// single attempt, matching the rest of the remote calls
		uc.logger.Error("order confirmation send failed",
			zap.String("order_id", o.ID), zap.Error(err))
	}
}

func mapGatewayStatus(s string) model.OrderStatus {
	switch s {
	case "PAID", "SUCCESS", "COMPLETED":
		return model.OrderStatusPaid
	case "FAILED", "EXPIRED":
		return model.OrderStatusFailed
	case "CANCELLED", "TERMINATED", "USER_DROPPED":
		return model.OrderStatusCancelled
	default:
		return model.OrderStatusPending
	}
}
