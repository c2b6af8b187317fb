package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/snapshot"
)

// ReleaseSnapshotRepository defines the persistence contract for release
// snapshots. Writes are upserts keyed by the external release ID, making
// event redelivery idempotent at the storage layer.
type ReleaseSnapshotRepository interface {
	// Upsert inserts the snapshot, or replaces the stored record carrying
	// the same release ID.
	Upsert(ctx context.Context, s snapshot.ReleaseSnapshot) error

	// GetByReleaseID retrieves a snapshot by its external business ID.
	GetByReleaseID(ctx context.Context, releaseID string) (snapshot.ReleaseSnapshot, error)

	// GetByOrderID retrieves all release snapshots associated with an
	// order, oldest first.
	GetByOrderID(ctx context.Context, orderID kernel.OrderID) ([]snapshot.ReleaseSnapshot, error)
}

// ShipmentSnapshotRepository defines the persistence contract for shipment
// snapshots, keyed by the external shipment ID.
type ShipmentSnapshotRepository interface {
	// Upsert inserts the snapshot, or replaces the stored record carrying
	// the same shipment ID.
	Upsert(ctx context.Context, s snapshot.ShipmentSnapshot) error

	// GetByShipmentID retrieves a snapshot by its external business ID.
	GetByShipmentID(ctx context.Context, shipmentID string) (snapshot.ShipmentSnapshot, error)

	// GetByOrderID retrieves all shipment snapshots associated with an
	// order, oldest first.
	GetByOrderID(ctx context.Context, orderID kernel.OrderID) ([]snapshot.ShipmentSnapshot, error)

	// GetByTrackingNumber retrieves a snapshot by its carrier tracking
	// number.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (snapshot.ShipmentSnapshot, error)
}
