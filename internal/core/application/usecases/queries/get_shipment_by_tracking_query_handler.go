package queries

import (
	"context"

	"orders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetShipmentByTrackingQueryHandler resolves a carrier tracking number
// to its shipment snapshot.
type GetShipmentByTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentByTrackingQueryHandler creates a handler for tracking
// number lookups.
func NewGetShipmentByTrackingQueryHandler(db *gorm.DB) GetShipmentByTrackingQueryHandler {
	return GetShipmentByTrackingQueryHandler{db: db}
}

// Handle executes the query. Returns an object-not-found error when no
// shipment carries the requested tracking number.
func (h GetShipmentByTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentByTrackingQuery,
) (ShipmentSnapshotResponse, error) {
	if err := query.Validate(); err != nil {
		return ShipmentSnapshotResponse{}, err
	}

	shipments, err := scanShipments(ctx, h.db, `
		SELECT shipment_id, order_number, tracking_number, status, event_time, payload, created_at, updated_at
		FROM shipment_snapshots
		WHERE tracking_number = ?
		ORDER BY event_time DESC
		LIMIT 1
	`, query.TrackingNumber())
	if err != nil {
		return ShipmentSnapshotResponse{}, err
	}
	if len(shipments) == 0 {
		return ShipmentSnapshotResponse{}, errs.NewObjectNotFoundError("trackingNumber", query.TrackingNumber())
	}

	return shipments[0], nil
}
