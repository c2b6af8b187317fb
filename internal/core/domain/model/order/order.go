package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through the NewOrder or RestoreOrder factory functions.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructors")

// Order is the aggregate root tracking a customer order from creation
// through delivery or cancellation. It owns its OrderLines and their
// LineStatuses; they are mutated only through the aggregate.
//
// Order follows these invariants:
//   - At least one line, with unique line numbers
//   - All lines share exactly one currency
//   - Total amount (subtotal + tax - discount) is never negative
//   - Status transitions only via the defined state machine
//   - Billing address is mutable only while not in a terminal status
//   - Lines are addable/removable only in Created status, and the last
//     line can never be removed
//
// The aggregate is copy-on-write: every mutator validates, then returns a
// new instance, leaving the receiver untouched. Callers must use the
// returned value.
type Order struct {
	id              kernel.OrderID
	externalOrderID *kernel.UUID
	customerID      string
	orderType       OrderType
	channel         kernel.Channel
	lines           []OrderLine
	billingAddress  kernel.Address
	notes           string
	status          Status
	createdAt       time.Time
	updatedAt       time.Time

	isConstructed bool
}

// NewOrderParams carries the fields for creating a new order. The optional
// ExternalOrderID is the checkout system's UUID, used upstream for
// duplicate detection.
type NewOrderParams struct {
	ID              kernel.OrderID
	ExternalOrderID *kernel.UUID
	CustomerID      string
	OrderType       OrderType
	Channel         kernel.Channel
	Lines           []OrderLine
	BillingAddress  kernel.Address
	Notes           string
}

// NewOrder creates a new Order in Created status, validating every
// aggregate invariant before returning.
func NewOrder(params NewOrderParams) (*Order, error) {
	now := time.Now().UTC()
	return RestoreOrder(params, StatusCreated, now, now)
}

// RestoreOrder rehydrates an order from persistence with its stored status
// and timestamps. It runs the same invariant validation as NewOrder.
func RestoreOrder(params NewOrderParams, status Status, createdAt, updatedAt time.Time) (*Order, error) {
	o := &Order{
		notes:         params.Notes,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setExternalOrderID(params.ExternalOrderID),
		o.setCustomerID(params.CustomerID),
		o.setOrderType(params.OrderType),
		o.setChannel(params.Channel),
		o.setLines(params.Lines),
		o.setBillingAddress(params.BillingAddress),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	if err := o.validateInvariants(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory function. Prevents bypassing validation by direct struct
// instantiation.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their business identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the business order identifier.
func (o *Order) ID() kernel.OrderID { return o.id }

// ExternalOrderID returns the checkout system's UUID, nil when the order
// did not originate there.
func (o *Order) ExternalOrderID() *kernel.UUID { return o.externalOrderID }

// CustomerID returns the customer identifier.
func (o *Order) CustomerID() string { return o.customerID }

// OrderType returns the order classification.
func (o *Order) OrderType() OrderType { return o.orderType }

// Channel returns the sales channel the order was placed through.
func (o *Order) Channel() kernel.Channel { return o.channel }

// Lines returns the order lines in their original order. The returned
// slice is a copy; modifying it does not affect the aggregate.
func (o *Order) Lines() []OrderLine {
	return slices.Clone(o.lines)
}

// Line returns the line with the given identity.
func (o *Order) Line(lineID kernel.UUID) (OrderLine, error) {
	for _, line := range o.lines {
		if line.ID().IsEqual(lineID) {
			return line, nil
		}
	}
	return OrderLine{}, errs.NewObjectNotFoundError("lineId", lineID.String())
}

// BillingAddress returns the billing address.
func (o *Order) BillingAddress() kernel.Address { return o.billingAddress }

// Notes returns the free-text order notes.
func (o *Order) Notes() string { return o.notes }

// Status returns the current order-level status.
func (o *Order) Status() Status { return o.status }

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the time of the last mutation.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Currency returns the single currency shared by all lines.
func (o *Order) Currency() kernel.Currency {
	return o.lines[0].Currency()
}

// Subtotal returns the sum of all line subtotals.
func (o *Order) Subtotal() (kernel.Money, error) {
	return o.sumLines(OrderLine.Subtotal)
}

// Tax returns the sum of all line taxes.
func (o *Order) Tax() (kernel.Money, error) {
	return o.sumLines(OrderLine.Tax)
}

// Discount returns the sum of all line discounts.
func (o *Order) Discount() (kernel.Money, error) {
	return o.sumLines(OrderLine.Discount)
}

// TotalAmount returns subtotal + tax - discount. Guaranteed non-negative
// for a valid aggregate.
func (o *Order) TotalAmount() (kernel.Money, error) {
	return o.sumLines(OrderLine.Total)
}

// IsModifiable reports whether lines may currently be added or removed.
func (o *Order) IsModifiable() bool {
	return o.status.IsModifiable()
}

// CanCancel reports whether the order can still be cancelled.
func (o *Order) CanCancel() bool {
	return o.status.CanCancel()
}

// InRelease marks the order partially released.
func (o *Order) InRelease() (*Order, error) { return o.transitionTo(StatusInRelease) }

// Release marks all lines released to fulfillment.
func (o *Order) Release() (*Order, error) { return o.transitionTo(StatusReleased) }

// InShipment marks the order partially shipped.
func (o *Order) InShipment() (*Order, error) { return o.transitionTo(StatusInShipment) }

// Ship marks all lines shipped.
func (o *Order) Ship() (*Order, error) { return o.transitionTo(StatusShipped) }

// Deliver marks the order delivered. Terminal.
func (o *Order) Deliver() (*Order, error) { return o.transitionTo(StatusDelivered) }

// Cancel cancels the order. Terminal; also used for soft deletion.
func (o *Order) Cancel() (*Order, error) { return o.transitionTo(StatusCancelled) }

// UpdateNotes returns a copy carrying the new notes. Notes stay mutable in
// every status for traceability.
func (o *Order) UpdateNotes(notes string) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	updated := o.clone()
	updated.notes = notes
	updated.touch()
	return updated, nil
}

// UpdateBillingAddress returns a copy carrying the new billing address.
// Fails on orders in a terminal status.
func (o *Order) UpdateBillingAddress(address kernel.Address) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := address.Validate(); err != nil {
		return nil, err
	}
	if o.status.IsTerminal() {
		return nil, errs.NewValueIsInvalidErrorWithCause("billingAddress",
			fmt.Errorf("order %s is in terminal status %s", o.id, o.status))
	}

	updated := o.clone()
	updated.billingAddress = address
	updated.touch()
	return updated, nil
}

// AddLine returns a copy with the line appended. Only orders in Created
// status are modifiable; the line currency and number must fit the
// aggregate.
func (o *Order) AddLine(line OrderLine) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := line.Validate(); err != nil {
		return nil, err
	}
	if !o.IsModifiable() {
		return nil, errs.NewValueIsInvalidErrorWithCause("lines",
			fmt.Errorf("order %s in status %s is not modifiable", o.id, o.status))
	}

	updated := o.clone()
	updated.lines = append(updated.lines, line)
	updated.touch()

	if err := updated.validateInvariants(); err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveLine returns a copy without the given line. The last line can never
// be removed; cancel the order instead.
func (o *Order) RemoveLine(lineID kernel.UUID) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.IsModifiable() {
		return nil, errs.NewValueIsInvalidErrorWithCause("lines",
			fmt.Errorf("order %s in status %s is not modifiable", o.id, o.status))
	}
	if len(o.lines) == 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("lines",
			fmt.Errorf("order %s has a single line; cancel the order instead", o.id))
	}

	index := slices.IndexFunc(o.lines, func(l OrderLine) bool { return l.ID().IsEqual(lineID) })
	if index < 0 {
		return nil, errs.NewObjectNotFoundError("lineId", lineID.String())
	}

	updated := o.clone()
	updated.lines = slices.Delete(updated.lines, index, index+1)
	updated.touch()

	if err := updated.validateInvariants(); err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateLineStatus transitions the given line through its own state
// machine and returns a copy of the aggregate carrying the updated line.
func (o *Order) UpdateLineStatus(lineID kernel.UUID, newStatus LineStatusValue, notes string) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	index := slices.IndexFunc(o.lines, func(l OrderLine) bool { return l.ID().IsEqual(lineID) })
	if index < 0 {
		return nil, errs.NewObjectNotFoundError("lineId", lineID.String())
	}

	updatedStatus, err := o.lines[index].LineStatus().UpdateStatus(newStatus, notes)
	if err != nil {
		return nil, err
	}

	updated := o.clone()
	updated.lines[index] = updated.lines[index].withStatus(updatedStatus)
	updated.touch()
	return updated, nil
}

// transitionTo applies the order-level state machine and returns a copy in
// the target status.
func (o *Order) transitionTo(target Status) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return nil, err
	}

	updated := o.clone()
	updated.status = newStatus
	updated.touch()
	return updated, nil
}

// clone returns a structural copy with an independent line slice.
func (o *Order) clone() *Order {
	copied := *o
	copied.lines = slices.Clone(o.lines)
	if o.externalOrderID != nil {
		id := *o.externalOrderID
		copied.externalOrderID = &id
	}
	return &copied
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) sumLines(part func(OrderLine) (kernel.Money, error)) (kernel.Money, error) {
	if err := o.Validate(); err != nil {
		return kernel.Money{}, err
	}

	sum, err := part(o.lines[0])
	if err != nil {
		return kernel.Money{}, err
	}
	for _, line := range o.lines[1:] {
		value, err := part(line)
		if err != nil {
			return kernel.Money{}, err
		}
		if sum, err = sum.Add(value); err != nil {
			return kernel.Money{}, err
		}
	}
	return sum, nil
}

// validateInvariants enforces the cross-line aggregate rules: a single
// shared currency, unique line numbers, and a non-negative total.
func (o *Order) validateInvariants() error {
	if len(o.lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	currency := o.lines[0].Currency()
	seen := make(map[int]bool, len(o.lines))
	for _, line := range o.lines {
		if line.Currency() != currency {
			return errs.NewValueIsInvalidErrorWithCause("lines",
				fmt.Errorf("line %d currency %s does not match order currency %s",
					line.LineNumber(), line.Currency(), currency))
		}
		if seen[line.LineNumber()] {
			return errs.NewValueIsInvalidErrorWithCause("lines",
				fmt.Errorf("duplicate line number %d", line.LineNumber()))
		}
		seen[line.LineNumber()] = true
	}

	total, err := o.TotalAmount()
	if err != nil {
		return err
	}
	if total.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%s is negative", total))
	}

	return nil
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setExternalOrderID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	value := *id
	o.externalOrderID = &value
	return nil
}

func (o *Order) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setOrderType(orderType OrderType) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	return nil
}

func (o *Order) setChannel(channel kernel.Channel) error {
	if err := channel.Validate(); err != nil {
		return err
	}
	if o.id.Validate() == nil && o.id.Channel() != channel {
		return errs.NewValueIsInvalidErrorWithCause("channel",
			fmt.Errorf("channel %s does not match order number prefix %s", channel, o.id.Channel().Prefix()))
	}
	o.channel = channel
	return nil
}

func (o *Order) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	o.lines = slices.Clone(lines)
	return nil
}

func (o *Order) setBillingAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.billingAddress = address
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
