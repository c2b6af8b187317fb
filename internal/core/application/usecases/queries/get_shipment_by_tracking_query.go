package queries

import (
	"errors"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrGetShipmentByTrackingQueryIsNotConstructed = errors.New(
	"GetShipmentByTrackingQuery must be created via NewGetShipmentByTrackingQuery constructor",
)

// GetShipmentByTrackingQuery locates a shipment snapshot by its carrier
// tracking number, for customer-facing "where is my package" lookups.
type GetShipmentByTrackingQuery struct {
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewGetShipmentByTrackingQuery creates a query for the shipment with
// the given tracking number.
func NewGetShipmentByTrackingQuery(trackingNumber string) (GetShipmentByTrackingQuery, error) {
	if trackingNumber == "" {
		return GetShipmentByTrackingQuery{}, errs.NewValueIsRequiredError("trackingNumber")
	}
	return GetShipmentByTrackingQuery{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// TrackingNumber returns the requested carrier tracking number.
func (q GetShipmentByTrackingQuery) TrackingNumber() string { return q.trackingNumber }

// Validate ensures the query was created through the constructor.
func (q GetShipmentByTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentByTrackingQueryIsNotConstructed)
}
