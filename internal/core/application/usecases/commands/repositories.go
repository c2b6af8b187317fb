// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"orders/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ReleaseSnapshotRepoFactory provides access to the release snapshot
	// repository within a transaction.
	ReleaseSnapshotRepoFactory interface {
		ReleaseSnapshotRepository() ports.ReleaseSnapshotRepository
	}

	// ShipmentSnapshotRepoFactory provides access to the shipment snapshot
	// repository within a transaction.
	ShipmentSnapshotRepoFactory interface {
		ShipmentSnapshotRepository() ports.ShipmentSnapshotRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ReleaseSnapshotUoW manages transactions for release snapshot upserts.
	ReleaseSnapshotUoW interface {
		TxManager
		ReleaseSnapshotRepoFactory
	}

	// ReleaseSnapshotUoWFactory creates new release snapshot unit of work
	// instances.
	ReleaseSnapshotUoWFactory interface {
		Create() ReleaseSnapshotUoW
	}

	// ShipmentSnapshotUoW manages transactions for shipment snapshot upserts.
	ShipmentSnapshotUoW interface {
		TxManager
		ShipmentSnapshotRepoFactory
	}

	// ShipmentSnapshotUoWFactory creates new shipment snapshot unit of work
	// instances.
	ShipmentSnapshotUoWFactory interface {
		Create() ShipmentSnapshotUoW
	}
)
