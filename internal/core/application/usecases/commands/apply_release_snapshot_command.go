package commands

import (
	"errors"
	"maps"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrApplyReleaseSnapshotCommandIsNotConstructed is returned when the
// command was not created via NewApplyReleaseSnapshotCommand.
var ErrApplyReleaseSnapshotCommandIsNotConstructed = errors.New(
	"ApplyReleaseSnapshotCommand must be created via NewApplyReleaseSnapshotCommand constructor",
)

// ApplyReleaseSnapshotCommand carries one upstream release event to be
// reconciled into the release snapshot store. Applying the same event twice
// leaves a single stored record, unchanged after the second apply.
type ApplyReleaseSnapshotCommand struct { //nolint:recvcheck //using for validation
	releaseID string
	orderID   kernel.OrderID
	status    string
	eventTime time.Time
	payload   map[string]any

	guard guard.ConstructorGuard
}

// NewApplyReleaseSnapshotCommand creates a command from the indexed fields
// and opaque payload of a release event.
func NewApplyReleaseSnapshotCommand(
	releaseID string, orderID kernel.OrderID, status string, eventTime time.Time, payload map[string]any,
) (ApplyReleaseSnapshotCommand, error) {
	cmd := ApplyReleaseSnapshotCommand{
		payload: maps.Clone(payload),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReleaseID(releaseID),
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setEventTime(eventTime),
	); err != nil {
		return ApplyReleaseSnapshotCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyReleaseSnapshotCommand) Validate() error {
	return c.guard.Validate(ErrApplyReleaseSnapshotCommandIsNotConstructed)
}

// ReleaseID returns the external business identifier of the release.
func (c ApplyReleaseSnapshotCommand) ReleaseID() string {
	return c.releaseID
}

// OrderID returns the business identifier of the associated order.
func (c ApplyReleaseSnapshotCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// Status returns the upstream release status string.
func (c ApplyReleaseSnapshotCommand) Status() string {
	return c.status
}

// EventTime returns the upstream event timestamp.
func (c ApplyReleaseSnapshotCommand) EventTime() time.Time {
	return c.eventTime
}

// Payload returns a copy of the opaque upstream event payload.
func (c ApplyReleaseSnapshotCommand) Payload() map[string]any {
	return maps.Clone(c.payload)
}

func (c *ApplyReleaseSnapshotCommand) setReleaseID(releaseID string) error {
	if releaseID == "" {
		return errs.NewValueIsRequiredError("releaseId")
	}
	c.releaseID = releaseID
	return nil
}

func (c *ApplyReleaseSnapshotCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ApplyReleaseSnapshotCommand) setStatus(status string) error {
	if status == "" {
		return errs.NewValueIsRequiredError("status")
	}
	c.status = status
	return nil
}

func (c *ApplyReleaseSnapshotCommand) setEventTime(eventTime time.Time) error {
	if eventTime.IsZero() {
		return errs.NewValueIsRequiredError("eventTime")
	}
	c.eventTime = eventTime.UTC()
	return nil
}
