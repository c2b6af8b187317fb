package queries

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrGetOrderSnapshotsQueryIsNotConstructed = errors.New(
	"GetOrderSnapshotsQuery must be created via NewGetOrderSnapshotsQuery constructor",
)

// GetOrderSnapshotsQuery retrieves the fulfillment snapshots recorded
// for one order: every release and shipment event mirrored from the
// warehouse systems.
type GetOrderSnapshotsQuery struct {
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

// NewGetOrderSnapshotsQuery creates a query for the snapshots of the
// order with the given business identifier.
func NewGetOrderSnapshotsQuery(orderID kernel.OrderID) (GetOrderSnapshotsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderSnapshotsQuery{}, err
	}
	return GetOrderSnapshotsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// OrderID returns the requested order identifier.
func (q GetOrderSnapshotsQuery) OrderID() kernel.OrderID { return q.orderID }

// Validate ensures the query was created through the constructor.
func (q GetOrderSnapshotsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSnapshotsQueryIsNotConstructed)
}

// GetOrderSnapshotsQueryResponse groups an order's release and shipment
// snapshots, each ordered by event time.
type GetOrderSnapshotsQueryResponse struct {
	Releases  []ReleaseSnapshotResponse
	Shipments []ShipmentSnapshotResponse
}

// ReleaseSnapshotResponse is the read model of one warehouse release
// event.
type ReleaseSnapshotResponse struct {
	ReleaseID   string
	OrderNumber string
	Status      string
	EventTime   time.Time
	Payload     map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ShipmentSnapshotResponse is the read model of one carrier shipment
// event.
type ShipmentSnapshotResponse struct {
	ShipmentID     string
	OrderNumber    string
	TrackingNumber string
	Status         string
	EventTime      time.Time
	Payload        map[string]any
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
