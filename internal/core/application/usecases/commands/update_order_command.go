package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrUpdateOrderCommandIsNotConstructed is returned when the command was
// not created via NewUpdateOrderCommand.
var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand represents a partial update of an order's mutable
// fields. Nil fields are left untouched; notes may change in any status
// while a billing address change is rejected on terminal orders.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.OrderID
	notes          *string
	billingAddress *kernel.Address

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a partial-update command. At least one of
// notes or billing address must be provided.
func NewUpdateOrderCommand(
	orderID kernel.OrderID, notes *string, billingAddress *kernel.Address,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setFields(notes, billingAddress),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the business identifier of the order to update.
func (c UpdateOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// Notes returns the replacement notes, nil when notes are untouched.
func (c UpdateOrderCommand) Notes() *string {
	return c.notes
}

// BillingAddress returns the replacement billing address, nil when the
// address is untouched.
func (c UpdateOrderCommand) BillingAddress() *kernel.Address {
	return c.billingAddress
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setFields(notes *string, billingAddress *kernel.Address) error {
	if notes == nil && billingAddress == nil {
		return errs.NewValueIsRequiredError("notes or billingAddress")
	}

	if notes != nil {
		value := *notes
		c.notes = &value
	}
	if billingAddress != nil {
		if err := billingAddress.Validate(); err != nil {
			return err
		}
		value := *billingAddress
		c.billingAddress = &value
	}
	return nil
}
