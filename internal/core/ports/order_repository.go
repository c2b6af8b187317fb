// Package ports defines the contracts between the domain layer and
// infrastructure: repositories, the transactional unit of work, the
// lifecycle notifier, and order number allocation. Adapters implement
// these interfaces, enabling dependency inversion and testability.
package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage. Fails with a Conflict
	// error when an order with the same business ID or external order ID
	// already exists.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its business identifier,
	// including all lines and their statuses.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// GetByCustomer retrieves all orders placed by the given customer,
	// newest first.
	GetByCustomer(ctx context.Context, customerID string) ([]*order.Order, error)

	// GetAll retrieves a page of orders, newest first. Page numbering is
	// zero-based.
	GetAll(ctx context.Context, page, size int) ([]*order.Order, error)

	// ExistsByExternalOrderID reports whether any order carries the given
	// upstream checkout identifier. Used for duplicate detection before
	// insert.
	ExistsByExternalOrderID(ctx context.Context, externalOrderID kernel.UUID) (bool, error)

	// Delete physically removes the order record. Soft deletion is modeled
	// as a Cancel transition; this exists for upstream purge flows only.
	Delete(ctx context.Context, id kernel.OrderID) error

	// Count returns the total number of stored orders.
	Count(ctx context.Context) (int64, error)
}
