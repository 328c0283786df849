package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/warungpos/storefront/internal/backend"
	"github.com/warungpos/storefront/internal/domain"
)

// Publisher is the sending side of the status-change stream.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Handler watches a submitted order until it reaches a terminal status,
// publishing a status-changed event for every transition it observes. The
// remote service owns the status; the tracker only polls and re-broadcasts.
type Handler struct {
	backend  *backend.Client
	producer Publisher
	logger   *slog.Logger

	pollInterval time.Duration
	maxWatch     time.Duration
}

func NewHandler(client *backend.Client, producer Publisher, logger *slog.Logger) *Handler {
	return &Handler{
		backend:      client,
		producer:     producer,
		logger:       logger,
		pollInterval: 15 * time.Second,
		maxWatch:     2 * time.Hour,
	}
}

func (h *Handler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderSubmittedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal order submitted event: %w", err)
	}
	if event.OrderID == "" {
		return fmt.Errorf("order submitted event missing order_id")
	}

	h.logger.Info("watching order", "order_id", event.OrderID, "customer_id", event.CustomerID)
	return h.watch(ctx, event.OrderID)
}

func (h *Handler) watch(ctx context.Context, orderID string) error {
	// New orders start out pending on both fronts; anything else observed is
	// a transition worth announcing.
	lastStatus := domain.OrderStatusPending
	lastPayment := domain.PaymentStatusPending

	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(h.maxWatch)
	defer deadline.Stop()

	for {
		order, err := h.backend.Tracking(ctx, orderID)
		if err != nil {
			// Transient remote failures shouldn't kill the consumer; the
			// next tick retries.
			h.logger.Error("tracking poll failed", "error", err, "order_id", orderID)
		} else if order.OrderStatus != lastStatus || order.PaymentStatus != lastPayment {
			lastStatus = order.OrderStatus
			lastPayment = order.PaymentStatus

			change := domain.OrderStatusChangedEvent{
				OrderID:       orderID,
				OrderStatus:   order.OrderStatus,
				PaymentStatus: order.PaymentStatus,
				Timestamp:     time.Now().UTC(),
			}
			if err := h.producer.Publish(ctx, orderID, change); err != nil {
				h.logger.Error("failed to publish status change", "error", err, "order_id", orderID)
			} else {
				h.logger.Info("order status changed",
					"order_id", orderID,
					"order_status", order.OrderStatus,
					"payment_status", order.PaymentStatus,
				)
			}
		}

		if lastStatus.Terminal() {
			h.logger.Info("order reached terminal status", "order_id", orderID, "order_status", lastStatus)
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			h.logger.Warn("giving up on order watch", "order_id", orderID, "order_status", lastStatus)
			return nil
		case <-ticker.C:
		}
	}
}
