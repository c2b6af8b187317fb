package queries

import (
	"context"
	"encoding/json"

	"orders/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetOrderSnapshotsQueryHandler reads the release and shipment snapshot
// tables for one order. Payloads come back as the raw event documents.
type GetOrderSnapshotsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderSnapshotsQueryHandler creates a handler for snapshot reads.
func NewGetOrderSnapshotsQueryHandler(db *gorm.DB) GetOrderSnapshotsQueryHandler {
	return GetOrderSnapshotsQueryHandler{db: db}
}

// Handle executes the query. An order without snapshots yields two empty
// slices, not an error: snapshots arrive asynchronously and may simply
// not exist yet.
func (h GetOrderSnapshotsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderSnapshotsQuery,
) (GetOrderSnapshotsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderSnapshotsQueryResponse{}, err
	}

	releases, err := h.scanReleases(ctx, query.OrderID())
	if err != nil {
		return GetOrderSnapshotsQueryResponse{}, err
	}

	shipments, err := scanShipments(ctx, h.db, `
		SELECT shipment_id, order_number, tracking_number, status, event_time, payload, created_at, updated_at
		FROM shipment_snapshots
		WHERE order_number = ?
		ORDER BY event_time
	`, query.OrderID().String())
	if err != nil {
		return GetOrderSnapshotsQueryResponse{}, err
	}

	return GetOrderSnapshotsQueryResponse{Releases: releases, Shipments: shipments}, nil
}

func (h GetOrderSnapshotsQueryHandler) scanReleases(
	ctx context.Context,
	orderID kernel.OrderID,
) ([]ReleaseSnapshotResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT release_id, order_number, status, event_time, payload, created_at, updated_at
		FROM release_snapshots
		WHERE order_number = ?
		ORDER BY event_time
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	releases := make([]ReleaseSnapshotResponse, 0)

	for rows.Next() {
		var release ReleaseSnapshotResponse
		var payload []byte

		err = rows.Scan(
			&release.ReleaseID,
			&release.OrderNumber,
			&release.Status,
			&release.EventTime,
			&payload,
			&release.CreatedAt,
			&release.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		release.Payload, err = decodePayload(payload)
		if err != nil {
			return nil, err
		}
		releases = append(releases, release)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return releases, nil
}

// scanShipments is shared with GetShipmentByTrackingQueryHandler; only
// the WHERE clause differs between the two reads.
func scanShipments(
	ctx context.Context,
	db *gorm.DB,
	sql string,
	args ...any,
) ([]ShipmentSnapshotResponse, error) {
	rows, err := db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := make([]ShipmentSnapshotResponse, 0)

	for rows.Next() {
		var shipment ShipmentSnapshotResponse
		var payload []byte

		err = rows.Scan(
			&shipment.ShipmentID,
			&shipment.OrderNumber,
			&shipment.TrackingNumber,
			&shipment.Status,
			&shipment.EventTime,
			&payload,
			&shipment.CreatedAt,
			&shipment.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		shipment.Payload, err = decodePayload(payload)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, shipment)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}

func decodePayload(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
