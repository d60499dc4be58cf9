// Package listener consumes order events and keeps stock counts in step
// with paid orders.
package listener

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/woodora/woodora-backend/internal/inventory"
	"github.com/woodora/woodora-backend/internal/order/dto"
	"github.com/woodora/woodora-backend/pkg/broker"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type Listener struct {
	consumer *broker.KafkaConsumer
	useCase  inventory.UseCase
	logger   logger.ZapLogger
}

func NewListener(consumer *broker.KafkaConsumer, useCase inventory.UseCase, logger logger.ZapLogger) *Listener {
	return &Listener{consumer: consumer, useCase: useCase, logger: logger}
}

// Run blocks until ctx is cancelled, reading order events and deducting
// stock for each paid order's items.
func (l *Listener) Run(ctx context.Context) {
	l.logger.Info("inventory listener started")
	for {
		msg, err := l.consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Info("inventory listener stopped")
				return
			}
			l.logger.Error("failed to read message", zap.Error(err))
			time.Sleep(1 * time.Second)
			continue
		}

		if err := l.handle(ctx, msg.Value); err != nil {
			l.logger.Error("failed to process order event",
				zap.String("key", string(msg.Key)), zap.Error(err))
		}
	}
}

func (l *Listener) handle(ctx context.Context, value []byte) error {
	var event dto.OrderPaidEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return err
	}
	if event.EventType != dto.EventTypeOrderPaid {
		return nil
	}

	for _, item := range event.Payload.Items {
		err := l.useCase.DeductForOrder(ctx, event.Payload.ID, item.ProductID, item.Quantity)
		if err != nil {
			// oversold or deleted products are logged and skipped; the
			// ledger stays consistent for the items that did deduct
			if errors.Is(err, inventory.ErrInsufficient) || errors.Is(err, inventory.ErrNotFound) {
				l.logger.Warn("stock deduction skipped",
					zap.String("order_id", event.Payload.ID),
					zap.String("product_id", item.ProductID),
					zap.Error(err))
				continue
			}
			return err
		}
	}
	return nil
}
