// Package notify adapts the WhatsApp client to the order flow.
package notify

import (
	"context"
	"fmt"

	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/internal/notify/whatsapp"
)

type OrderNotifier struct {
	wa       *whatsapp.Client
	template string
	language string
}

func NewOrderNotifier(wa *whatsapp.Client, template, language string) *OrderNotifier {
	return &OrderNotifier{wa: wa, template: template, language: language}
}

// SendOrderConfirmation fires the order-confirmation template. The params
// must line up with the approved template: customer name, order id, total.
func (n *OrderNotifier) SendOrderConfirmation(ctx context.Context, o *model.Order) error {
	params := []string{
		o.CustomerName,
		o.ID,
		fmt.Sprintf("%.2f", o.Total),
	}
	return n.wa.SendTemplate(ctx, o.CustomerPhone, n.template, n.language, params)
}
