// Package notify implements the lifecycle notifier port. Status changes
// are fanned out to RabbitMQ for downstream systems; a log-only variant
// exists for environments without a broker. Notifications are
// fire-and-forget: they run after the owning transaction committed and a
// failed delivery is logged, never propagated.
package notify

import (
	"time"

	"orders/internal/core/domain/model/order"
)

// statusChangeEvent is the outbound wire format for one order status
// change. Field names follow the snake_case convention of the upstream
// order events.
type statusChangeEvent struct {
	OrderNumber string    `json:"order_number"`
	CustomerID  string    `json:"customer_id"`
	Channel     string    `json:"channel"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"total_amount,omitempty"`
	Currency    string    `json:"currency,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func newStatusChangeEvent(aggregate *order.Order, occurredAt time.Time) statusChangeEvent {
	event := statusChangeEvent{
		OrderNumber: aggregate.ID().String(),
		CustomerID:  aggregate.CustomerID(),
		Channel:     aggregate.Channel().String(),
		Status:      aggregate.Status().String(),
		OccurredAt:  occurredAt,
	}

	if total, err := aggregate.TotalAmount(); err == nil {
		event.TotalAmount = total.Amount().StringFixed(2)
		event.Currency = total.Currency().String()
	}

	return event
}
