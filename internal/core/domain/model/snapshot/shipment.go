package snapshot

import (
	"errors"
	"maps"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrShipmentSnapshotIsNotConstructed is returned when a ShipmentSnapshot
// was not created via its constructors.
var ErrShipmentSnapshotIsNotConstructed = errs.NewValueIsRequiredError(
	"ShipmentSnapshot must be created via NewShipmentSnapshot or RestoreShipmentSnapshot constructors")

// ShipmentSnapshot is the latest known state of one upstream shipment,
// identified by the externally issued shipment ID. In addition to the
// release-style indexed fields it carries the carrier tracking number,
// which is queryable on its own.
type ShipmentSnapshot struct { //nolint:recvcheck //pointer receivers used for construction-time setters
	shipmentID     string
	orderID        kernel.OrderID
	trackingNumber string
	status         string
	eventTime      time.Time
	payload        map[string]any
	createdAt      time.Time
	updatedAt      time.Time

	guard guard.ConstructorGuard
}

// ShipmentSnapshotParams carries the fields extracted from an upstream
// shipment event.
type ShipmentSnapshotParams struct {
	ShipmentID     string
	OrderID        kernel.OrderID
	TrackingNumber string
	Status         string
	EventTime      time.Time
	Payload        map[string]any
}

// NewShipmentSnapshot creates a snapshot for a shipment seen for the first
// time.
func NewShipmentSnapshot(params ShipmentSnapshotParams) (ShipmentSnapshot, error) {
	now := time.Now().UTC()
	return RestoreShipmentSnapshot(params, now, now)
}

// RestoreShipmentSnapshot rehydrates a snapshot from persistence.
func RestoreShipmentSnapshot(params ShipmentSnapshotParams, createdAt, updatedAt time.Time) (ShipmentSnapshot, error) {
	s := ShipmentSnapshot{
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setShipmentID(params.ShipmentID),
		s.setOrderID(params.OrderID),
		s.setTrackingNumber(params.TrackingNumber),
		s.setStatus(params.Status),
		s.setEventTime(params.EventTime),
		s.setPayload(params.Payload),
	); err != nil {
		return ShipmentSnapshot{}, err
	}

	return s, nil
}

// Validate checks that the snapshot was properly constructed.
func (s ShipmentSnapshot) Validate() error {
	return s.guard.Validate(ErrShipmentSnapshotIsNotConstructed)
}

// ShipmentID returns the external business identifier of the shipment.
func (s ShipmentSnapshot) ShipmentID() string { return s.shipmentID }

// OrderID returns the business identifier of the associated order.
func (s ShipmentSnapshot) OrderID() kernel.OrderID { return s.orderID }

// TrackingNumber returns the carrier tracking number.
func (s ShipmentSnapshot) TrackingNumber() string { return s.trackingNumber }

// Status returns the upstream shipment status string.
func (s ShipmentSnapshot) Status() string { return s.status }

// EventTime returns the upstream event timestamp.
func (s ShipmentSnapshot) EventTime() time.Time { return s.eventTime }

// Payload returns a copy of the opaque upstream event payload.
func (s ShipmentSnapshot) Payload() map[string]any { return maps.Clone(s.payload) }

// CreatedAt returns the time the shipment was first seen.
func (s ShipmentSnapshot) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the time of the last overwrite.
func (s ShipmentSnapshot) UpdatedAt() time.Time { return s.updatedAt }

// IsEqual compares two snapshots by their business identity.
func (s ShipmentSnapshot) IsEqual(other ShipmentSnapshot) bool {
	return s.shipmentID == other.shipmentID
}

// Overwrite replaces the indexed fields and payload with a newly delivered
// event for the same shipment, keeping identity and creation time. Returns
// a new instance; the receiver is left unchanged.
func (s ShipmentSnapshot) Overwrite(
	trackingNumber, status string, eventTime time.Time, payload map[string]any,
) (ShipmentSnapshot, error) {
	if err := s.Validate(); err != nil {
		return ShipmentSnapshot{}, err
	}

	updated := s
	if err := errors.Join(
		updated.setTrackingNumber(trackingNumber),
		updated.setStatus(status),
		updated.setEventTime(eventTime),
		updated.setPayload(payload),
	); err != nil {
		return ShipmentSnapshot{}, err
	}
	updated.updatedAt = time.Now().UTC()
	return updated, nil
}

func (s *ShipmentSnapshot) setShipmentID(shipmentID string) error {
	if shipmentID == "" {
		return errs.NewValueIsRequiredError("shipmentId")
	}
	s.shipmentID = shipmentID
	return nil
}

func (s *ShipmentSnapshot) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *ShipmentSnapshot) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	s.trackingNumber = trackingNumber
	return nil
}

func (s *ShipmentSnapshot) setStatus(status string) error {
	if status == "" {
		return errs.NewValueIsRequiredError("status")
	}
	s.status = status
	return nil
}

func (s *ShipmentSnapshot) setEventTime(eventTime time.Time) error {
	if eventTime.IsZero() {
		return errs.NewValueIsRequiredError("eventTime")
	}
	s.eventTime = eventTime.UTC()
	return nil
}

func (s *ShipmentSnapshot) setPayload(payload map[string]any) error {
	s.payload = maps.Clone(payload)
	return nil
}
