package commands

import (
	"errors"
	"slices"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when the command was not
// created via NewCreateOrderCommand.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommandParams carries the raw fields of an order creation
// request, whether it arrives over HTTP or as an order-created event.
type CreateOrderCommandParams struct {
	ExternalOrderID *kernel.UUID
	CustomerID      string
	OrderType       order.OrderType
	Channel         kernel.Channel
	Lines           []order.OrderLineParams
	BillingAddress  kernel.Address
	Notes           string
}

// CreateOrderCommand represents a validated request to accept a new order.
// Line construction happens here, so a command in hand implies every line
// already passed value-object validation; the aggregate-level invariants
// are enforced by the handler when it builds the Order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(params)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, generator, notifier)
//	id, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	externalOrderID *kernel.UUID
	customerID      string
	orderType       order.OrderType
	channel         kernel.Channel
	lines           []order.OrderLine
	billingAddress  kernel.Address
	notes           string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to accept a new order, validating
// every field and constructing the order lines. Returns an error joining
// all validation failures.
func NewCreateOrderCommand(params CreateOrderCommandParams) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		notes: params.Notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setExternalOrderID(params.ExternalOrderID),
		cmd.setCustomerID(params.CustomerID),
		cmd.setOrderType(params.OrderType),
		cmd.setChannel(params.Channel),
		cmd.setLines(params.Lines),
		cmd.setBillingAddress(params.BillingAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// ExternalOrderID returns the upstream checkout UUID, nil when absent.
func (c CreateOrderCommand) ExternalOrderID() *kernel.UUID {
	return c.externalOrderID
}

// CustomerID returns the customer identifier.
func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

// OrderType returns the order classification.
func (c CreateOrderCommand) OrderType() order.OrderType {
	return c.orderType
}

// Channel returns the sales channel the order is placed through.
func (c CreateOrderCommand) Channel() kernel.Channel {
	return c.channel
}

// Lines returns the constructed order lines.
func (c CreateOrderCommand) Lines() []order.OrderLine {
	return slices.Clone(c.lines)
}

// BillingAddress returns the billing address.
func (c CreateOrderCommand) BillingAddress() kernel.Address {
	return c.billingAddress
}

// Notes returns the free-text order notes.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c *CreateOrderCommand) setExternalOrderID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	value := *id
	c.externalOrderID = &value
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setOrderType(orderType order.OrderType) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	c.orderType = orderType
	return nil
}

func (c *CreateOrderCommand) setChannel(channel kernel.Channel) error {
	if err := channel.Validate(); err != nil {
		return err
	}
	c.channel = channel
	return nil
}

func (c *CreateOrderCommand) setLines(params []order.OrderLineParams) error {
	if len(params) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	lines := make([]order.OrderLine, 0, len(params))
	for _, lineParams := range params {
		line, err := order.NewOrderLine(lineParams)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}
	c.lines = lines
	return nil
}

func (c *CreateOrderCommand) setBillingAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.billingAddress = address
	return nil
}
