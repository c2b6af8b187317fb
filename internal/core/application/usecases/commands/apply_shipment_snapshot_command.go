package commands

import (
	"errors"
	"maps"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrApplyShipmentSnapshotCommandIsNotConstructed is returned when the
// command was not created via NewApplyShipmentSnapshotCommand.
var ErrApplyShipmentSnapshotCommandIsNotConstructed = errors.New(
	"ApplyShipmentSnapshotCommand must be created via NewApplyShipmentSnapshotCommand constructor",
)

// ApplyShipmentSnapshotCommand carries one upstream shipment event to be
// reconciled into the shipment snapshot store.
type ApplyShipmentSnapshotCommand struct { //nolint:recvcheck //using for validation
	shipmentID     string
	orderID        kernel.OrderID
	trackingNumber string
	status         string
	eventTime      time.Time
	payload        map[string]any

	guard guard.ConstructorGuard
}

// NewApplyShipmentSnapshotCommand creates a command from the indexed fields
// and opaque payload of a shipment event.
func NewApplyShipmentSnapshotCommand(
	shipmentID string, orderID kernel.OrderID, trackingNumber, status string,
	eventTime time.Time, payload map[string]any,
) (ApplyShipmentSnapshotCommand, error) {
	cmd := ApplyShipmentSnapshotCommand{
		payload: maps.Clone(payload),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setOrderID(orderID),
		cmd.setTrackingNumber(trackingNumber),
		cmd.setStatus(status),
		cmd.setEventTime(eventTime),
	); err != nil {
		return ApplyShipmentSnapshotCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyShipmentSnapshotCommand) Validate() error {
	return c.guard.Validate(ErrApplyShipmentSnapshotCommandIsNotConstructed)
}

// ShipmentID returns the external business identifier of the shipment.
func (c ApplyShipmentSnapshotCommand) ShipmentID() string {
	return c.shipmentID
}

// OrderID returns the business identifier of the associated order.
func (c ApplyShipmentSnapshotCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// TrackingNumber returns the carrier tracking number.
func (c ApplyShipmentSnapshotCommand) TrackingNumber() string {
	return c.trackingNumber
}

// Status returns the upstream shipment status string.
func (c ApplyShipmentSnapshotCommand) Status() string {
	return c.status
}

// EventTime returns the upstream event timestamp.
func (c ApplyShipmentSnapshotCommand) EventTime() time.Time {
	return c.eventTime
}

// Payload returns a copy of the opaque upstream event payload.
func (c ApplyShipmentSnapshotCommand) Payload() map[string]any {
	return maps.Clone(c.payload)
}

func (c *ApplyShipmentSnapshotCommand) setShipmentID(shipmentID string) error {
	if shipmentID == "" {
		return errs.NewValueIsRequiredError("shipmentId")
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *ApplyShipmentSnapshotCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ApplyShipmentSnapshotCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	c.trackingNumber = trackingNumber
	return nil
}

func (c *ApplyShipmentSnapshotCommand) setStatus(status string) error {
	if status == "" {
		return errs.NewValueIsRequiredError("status")
	}
	c.status = status
	return nil
}

func (c *ApplyShipmentSnapshotCommand) setEventTime(eventTime time.Time) error {
	if eventTime.IsZero() {
		return errs.NewValueIsRequiredError("eventTime")
	}
	c.eventTime = eventTime.UTC()
	return nil
}
