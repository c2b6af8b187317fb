package kernel

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

const (
	orderIDDateLayout = "20060102"

	// OrderIDMinSequence and OrderIDMaxSequence bound the per-day sequence
	// part of an order number.
	OrderIDMinSequence = 1
	OrderIDMaxSequence = 9999999
)

var orderIDPattern = regexp.MustCompile(`^(\d{2})-(\d{8})-(\d{7})$`)

// ErrOrderIDIsNotConstructed is returned when an OrderID was not created via
// NewOrderID or OrderIDFromString.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderID must be created via NewOrderID or OrderIDFromString constructors")

// OrderID is the externally visible business identifier of an order, in the
// form CC-YYYYMMDD-NNNNNNN: a 2-digit channel prefix, the UTC date the
// number was allocated, and a 7-digit per-channel-per-day sequence.
//
// Example:
//
//	id, err := kernel.NewOrderID(kernel.ChannelWeb, time.Now().UTC(), 1)
//	// id.String() == "10-20260825-0000001"
type OrderID struct { //nolint:recvcheck //pointer receivers used for construction-time setters
	channel  Channel
	date     time.Time
	sequence int

	guard guard.ConstructorGuard
}

// NewOrderID creates an order identifier from its parts. The date is
// truncated to a UTC calendar day and the sequence must lie within
// [OrderIDMinSequence, OrderIDMaxSequence].
func NewOrderID(channel Channel, date time.Time, sequence int) (OrderID, error) {
	id := OrderID{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		id.setChannel(channel),
		id.setDate(date),
		id.setSequence(sequence),
	); err != nil {
		return OrderID{}, err
	}

	return id, nil
}

// OrderIDFromString parses and validates an order identifier in its
// CC-YYYYMMDD-NNNNNNN form. The channel prefix must map to a known channel
// and the date part must be a real calendar date.
func OrderIDFromString(s string) (OrderID, error) {
	parts := orderIDPattern.FindStringSubmatch(s)
	if parts == nil {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%q does not match CC-YYYYMMDD-NNNNNNN", s))
	}

	channel, err := ChannelFromPrefix(parts[1])
	if err != nil {
		return OrderID{}, err
	}

	date, err := time.ParseInLocation(orderIDDateLayout, parts[2], time.UTC)
	if err != nil {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%q is not a valid date: %w", parts[2], err))
	}

	var sequence int
	if _, err = fmt.Sscanf(parts[3], "%d", &sequence); err != nil {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}

	return NewOrderID(channel, date, sequence)
}

// Validate checks that the OrderID was properly constructed.
func (id OrderID) Validate() error {
	return id.guard.Validate(ErrOrderIDIsNotConstructed)
}

// Channel returns the sales channel encoded in the identifier.
func (id OrderID) Channel() Channel {
	return id.channel
}

// Date returns the UTC calendar day the number was allocated on.
func (id OrderID) Date() time.Time {
	return id.date
}

// Sequence returns the 7-digit per-channel-per-day sequence number.
func (id OrderID) Sequence() int {
	return id.sequence
}

// String renders the identifier as CC-YYYYMMDD-NNNNNNN.
func (id OrderID) String() string {
	return fmt.Sprintf("%s-%s-%07d", id.channel.Prefix(), id.date.Format(orderIDDateLayout), id.sequence)
}

// IsEqual compares two order identifiers.
func (id OrderID) IsEqual(other OrderID) bool {
	return id.channel == other.channel &&
		id.date.Equal(other.date) &&
		id.sequence == other.sequence
}

func (id *OrderID) setChannel(channel Channel) error {
	if err := channel.Validate(); err != nil {
		return err
	}
	id.channel = channel
	return nil
}

func (id *OrderID) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}
	id.date = date.UTC().Truncate(24 * time.Hour)
	return nil
}

func (id *OrderID) setSequence(sequence int) error {
	if sequence < OrderIDMinSequence || sequence > OrderIDMaxSequence {
		return errs.NewValueIsOutOfRangeError("sequence", sequence, OrderIDMinSequence, OrderIDMaxSequence)
	}
	id.sequence = sequence
	return nil
}
