package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/internal/order"
	"github.com/woodora/woodora-backend/internal/order/dto"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type fakeUseCase struct {
	order    *model.Order
	webhooks []string // "gatewayOrderID/status" per call
}

func (f *fakeUseCase) Checkout(_ context.Context, input *dto.CheckoutInput) (*dto.CheckoutResult, error) {
	if len(input.Items) == 0 {
		return nil, order.ErrInvalidInput
	}
	return &dto.CheckoutResult{OrderID: "ord-1", Total: 4975, PaymentSessionID: "session_1"}, nil
}

func (f *fakeUseCase) GetOrder(_ context.Context, id string) (*model.Order, error) {
	if f.order == nil || f.order.ID != id {
		return nil, order.ErrNotFound
	}
	return f.order, nil
}

func (f *fakeUseCase) ListOrders(_ context.Context, _ model.OrderStatus, _, _ int) ([]model.Order, int, error) {
	return nil, 0, nil
}

func (f *fakeUseCase) GetStatus(_ context.Context, id string) (*dto.StatusResult, error) {
	if f.order == nil || f.order.ID != id {
		return nil, order.ErrNotFound
	}
	return &dto.StatusResult{OrderID: id, OrderStatus: string(f.order.Status)}, nil
}

func (f *fakeUseCase) HandleWebhook(_ context.Context, gatewayOrderID, gatewayStatus string) error {
	f.webhooks = append(f.webhooks, gatewayOrderID+"/"+gatewayStatus)
	if gatewayOrderID == "cf_unknown" {
		return order.ErrNotFound
	}
	return nil
}

func (f *fakeUseCase) UpdateStatus(_ context.Context, _ string, _ model.OrderStatus) error {
	return nil
}

type fakeSettings struct{}

func (fakeSettings) Get(_ context.Context) (*model.SiteSettings, error) {
	return model.DefaultSiteSettings(), nil
}

type fakeVerifier struct{ valid bool }

func (v fakeVerifier) VerifyWebhookSignature(_ string, _ []byte, _ string) bool {
	return v.valid
}

func setup(valid bool) (*fakeUseCase, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	uc := &fakeUseCase{}
	log := logger.NewZapLogger(&logger.ZapLoggerConfig{Level: "error", Encoding: "console"})
	h := NewOrderHandler(uc, fakeSettings{}, fakeVerifier{valid: valid}, log)

	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)
	h.RegisterWebhookRoutes(r)
	return uc, r
}

func TestCheckoutEndpoint(t *testing.T) {
	_, r := setup(true)

	body := `{"customer_name":"Asha","customer_phone":"9876543210","address":"14 MG Road","items":[{"sku":"WC-010","quantity":25}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"order_id":"ord-1"`)
}

func TestCheckoutEndpointRejectsMissingFields(t *testing.T) {
	_, r := setup(true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewBufferString(`{"customer_name":"Asha"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusEndpointNotFound(t *testing.T) {
	_, r := setup(true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/missing/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func webhookBody() string {
	return `{"type":"PAYMENT_SUCCESS_WEBHOOK","data":{"order":{"order_id":"cf_ord-1"},"payment":{"payment_status":"SUCCESS"}}}`
}

func TestWebhookValidSignature(t *testing.T) {
	uc, r := setup(true)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/cashfree", bytes.NewBufferString(webhookBody()))
	req.Header.Set("x-webhook-signature", "sig")
	req.Header.Set("x-webhook-timestamp", "1700000000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, uc.webhooks, 1)
	assert.Equal(t, "cf_ord-1/SUCCESS", uc.webhooks[0])
}

func TestWebhookInvalidSignature(t *testing.T) {
	uc, r := setup(false)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/cashfree", bytes.NewBufferString(webhookBody()))
	req.Header.Set("x-webhook-signature", "bad")
	req.Header.Set("x-webhook-timestamp", "1700000000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, uc.webhooks)
}

func TestWebhookUnknownOrderIsAcknowledged(t *testing.T) {
	_, r := setup(true)

	body := `{"data":{"order":{"order_id":"cf_unknown"},"payment":{"payment_status":"SUCCESS"}}}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/cashfree", bytes.NewBufferString(body))
	req.Header.Set("x-webhook-signature", "sig")
	req.Header.Set("x-webhook-timestamp", "1700000000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInvoiceEndpointServesPDF(t *testing.T) {
	uc, r := setup(true)
	uc.order = &model.Order{
		BaseModel:     model.BaseModel{ID: "ord-1"},
		CustomerName:  "Asha Patel",
		CustomerPhone: "919876543210",
		Address:       "14 MG Road",
		Items:         model.OrderItemList{{ProductID: "WC-010", Name: "Teak Coaster Set", Quantity: 25, Price: 199}},
		Status:        model.OrderStatusPaid,
		Subtotal:      4975,
		Total:         4975,
		AdvanceAmount: 4975,
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/ord-1/invoice", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}
