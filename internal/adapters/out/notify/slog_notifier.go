package notify

import (
	"context"
	"log/slog"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// SlogNotifier logs status changes instead of publishing them. Used when
// no broker is configured (local development, tests).
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a log-only notifier.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger}
}

var _ ports.Notifier = (*SlogNotifier)(nil)

// NotifyCreated logs a CREATED status change.
func (n *SlogNotifier) NotifyCreated(ctx context.Context, aggregate *order.Order) {
	n.log(ctx, aggregate)
}

// NotifyInRelease logs an IN_RELEASE status change.
func (n *SlogNotifier) NotifyInRelease(ctx context.Context, aggregate *order.Order) {
	n.log(ctx, aggregate)
}

// NotifyReleased logs a RELEASED status change.
func (n *SlogNotifier) NotifyReleased(ctx context.Context, aggregate *order.Order) {
	n.log(ctx, aggregate)
}

// NotifyInShipment logs an IN_SHIPMENT status change.
func (n *SlogNotifier) NotifyInShipment(ctx context.Context, aggregate *order.Order) {
	n.log(ctx, aggregate)
}

// NotifyShipped logs a SHIPPED status change.
func (n *SlogNotifier) NotifyShipped(ctx context.Context, aggregate *order.Order) {
	n.log(ctx, aggregate)
}

// NotifyDelivered logs a DELIVERED status change.
func (n *SlogNotifier) NotifyDelivered(ctx context.Context, aggregate *order.Order) {
	n.log(ctx, aggregate)
}

// NotifyCancelled logs a CANCELLED status change.
func (n *SlogNotifier) NotifyCancelled(ctx context.Context, aggregate *order.Order) {
	n.log(ctx, aggregate)
}

func (n *SlogNotifier) log(ctx context.Context, aggregate *order.Order) {
	event := newStatusChangeEvent(aggregate, time.Now().UTC())
	n.logger.InfoContext(ctx, "order status changed",
		"order", event.OrderNumber,
		"customer", event.CustomerID,
		"channel", event.Channel,
		"status", event.Status,
		"total", event.TotalAmount,
	)
}
