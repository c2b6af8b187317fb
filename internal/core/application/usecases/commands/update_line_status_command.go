package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

// ErrUpdateLineStatusCommandIsNotConstructed is returned when the command
// was not created via NewUpdateLineStatusCommand.
var ErrUpdateLineStatusCommandIsNotConstructed = errors.New(
	"UpdateLineStatusCommand must be created via NewUpdateLineStatusCommand constructor",
)

// UpdateLineStatusCommand represents a request to transition a single order
// line through its own state machine, independent of the order-level
// status.
type UpdateLineStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.OrderID
	lineID    kernel.UUID
	newStatus order.LineStatusValue
	notes     string

	guard guard.ConstructorGuard
}

// NewUpdateLineStatusCommand creates a command to transition one line of an
// order. Notes are optional free text recorded with the change.
func NewUpdateLineStatusCommand(
	orderID kernel.OrderID, lineID kernel.UUID, newStatus order.LineStatusValue, notes string,
) (UpdateLineStatusCommand, error) {
	cmd := UpdateLineStatusCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLineID(lineID),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return UpdateLineStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateLineStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLineStatusCommandIsNotConstructed)
}

// OrderID returns the business identifier of the owning order.
func (c UpdateLineStatusCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// LineID returns the identity of the line to transition.
func (c UpdateLineStatusCommand) LineID() kernel.UUID {
	return c.lineID
}

// NewStatus returns the requested line status.
func (c UpdateLineStatusCommand) NewStatus() order.LineStatusValue {
	return c.newStatus
}

// Notes returns the free-text notes recorded with the change.
func (c UpdateLineStatusCommand) Notes() string {
	return c.notes
}

func (c *UpdateLineStatusCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateLineStatusCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}
	c.lineID = lineID
	return nil
}

func (c *UpdateLineStatusCommand) setNewStatus(newStatus order.LineStatusValue) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	c.newStatus = newStatus
	return nil
}
