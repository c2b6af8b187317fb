package ports

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// Notifier publishes order lifecycle notifications, one method per event.
// Calls are fire-and-forget from the domain's perspective: implementations
// log and swallow delivery failures, and handlers invoke the notifier only
// after the owning transaction commits.
type Notifier interface {
	NotifyCreated(ctx context.Context, aggregate *order.Order)
	NotifyInRelease(ctx context.Context, aggregate *order.Order)
	NotifyReleased(ctx context.Context, aggregate *order.Order)
	NotifyInShipment(ctx context.Context, aggregate *order.Order)
	NotifyShipped(ctx context.Context, aggregate *order.Order)
	NotifyDelivered(ctx context.Context, aggregate *order.Order)
	NotifyCancelled(ctx context.Context, aggregate *order.Order)
}
