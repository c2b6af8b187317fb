package order

import (
	"fmt"
	"time"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// LineStatusValue represents the fulfillment state of a single order line.
// Lines progress through their own state machine independently of the
// order-level status.
//
// Note that Delivered and ShippedAndInvoiced are not terminal: both may
// still move to ReturnInitiated. Only ReturnCompleted and Cancelled are
// terminal line states.
type LineStatusValue int

const (
	// LineStatusUnknown represents an invalid or undefined line status.
	LineStatusUnknown LineStatusValue = iota

	// LineCreated is the initial state of every order line.
	LineCreated

	// LineAllocated indicates inventory has been allocated for the line.
	LineAllocated

	// LineReleased indicates the line was released to the fulfillment
	// system.
	LineReleased

	// LineShipped indicates the line left the warehouse.
	LineShipped

	// LineShippedAndInvoiced indicates the line shipped and the customer
	// was invoiced.
	LineShippedAndInvoiced

	// LineDelivered indicates the line reached the customer.
	LineDelivered

	// LineReturnInitiated indicates the customer started a return.
	LineReturnInitiated

	// LineReturnCompleted indicates the return finished. Terminal.
	LineReturnCompleted

	// LineCancelled indicates the line was cancelled before shipping.
	// Terminal.
	LineCancelled
)

type lineStatusInfo struct {
	name        string
	code        int
	description string
}

func getLineStatusInfos() map[LineStatusValue]lineStatusInfo {
	return map[LineStatusValue]lineStatusInfo{
		LineCreated:            {name: "CREATED", code: 1000, description: "Order line created"},
		LineAllocated:          {name: "ALLOCATED", code: 1100, description: "Inventory allocated"},
		LineReleased:           {name: "RELEASED", code: 1200, description: "Released to fulfillment"},
		LineShipped:            {name: "SHIPPED", code: 1300, description: "Shipped"},
		LineShippedAndInvoiced: {name: "SHIPPED_AND_INVOICED", code: 1310, description: "Shipped and invoiced"},
		LineDelivered:          {name: "DELIVERED", code: 1400, description: "Delivered"},
		LineReturnInitiated:    {name: "RETURN_INITIATED", code: 1500, description: "Return initiated"},
		LineReturnCompleted:    {name: "RETURN_COMPLETED", code: 1510, description: "Return completed"},
		LineCancelled:          {name: "CANCELLED", code: 1900, description: "Cancelled"},
	}
}

// getLineStatusTransitions returns the per-line transition table. Terminal
// states map to an empty set.
func getLineStatusTransitions() map[LineStatusValue][]LineStatusValue {
	return map[LineStatusValue][]LineStatusValue{
		LineCreated:            {LineAllocated, LineCancelled},
		LineAllocated:          {LineReleased, LineCancelled},
		LineReleased:           {LineShipped, LineCancelled},
		LineShipped:            {LineShippedAndInvoiced, LineDelivered, LineReturnInitiated},
		LineShippedAndInvoiced: {LineDelivered, LineReturnInitiated},
		LineDelivered:          {LineReturnInitiated},
		LineReturnInitiated:    {LineReturnCompleted},
		LineReturnCompleted:    {},
		LineCancelled:          {},
	}
}

// LineStatusFromString parses the wire name of a line status.
func LineStatusFromString(s string) (LineStatusValue, error) {
	for status, info := range getLineStatusInfos() {
		if info.name == s {
			return status, nil
		}
	}
	return LineStatusUnknown, errs.NewValueIsInvalidErrorWithCause("lineStatus",
		fmt.Errorf("%q is not a known line status", s))
}

// Validate checks if the value is one of the defined line states.
func (v LineStatusValue) Validate() error {
	if _, ok := getLineStatusInfos()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("lineStatus",
			fmt.Errorf("%d is not a valid line status", v))
	}
	return nil
}

// String returns the wire name of the line status.
func (v LineStatusValue) String() string {
	if info, ok := getLineStatusInfos()[v]; ok {
		return info.name
	}
	return "UNKNOWN"
}

// Code returns the denormalized numeric status code. Derived from the
// status value, never independently settable.
func (v LineStatusValue) Code() int {
	return getLineStatusInfos()[v].code
}

// Description returns the denormalized human-readable status description.
func (v LineStatusValue) Description() string {
	return getLineStatusInfos()[v].description
}

// CanTransitionTo reports whether the line transition table permits moving
// to target.
func (v LineStatusValue) CanTransitionTo(target LineStatusValue) bool {
	for _, allowed := range getLineStatusTransitions()[v] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo performs a table-validated transition to target, failing
// with an InvalidStateTransition error naming the current and requested
// states.
func (v LineStatusValue) TransitionTo(target LineStatusValue) (LineStatusValue, error) {
	if err := v.Validate(); err != nil {
		return LineStatusUnknown, err
	}
	if err := target.Validate(); err != nil {
		return LineStatusUnknown, err
	}

	if !v.CanTransitionTo(target) {
		return LineStatusUnknown, errs.NewInvalidStateTransitionError(
			"order line", v.String(), target.String(), v.allowedTransitionNames()...)
	}

	return target, nil
}

// IsTerminal reports whether no further transition is possible.
func (v LineStatusValue) IsTerminal() bool {
	transitions, ok := getLineStatusTransitions()[v]
	return ok && len(transitions) == 0
}

// IsShipped reports whether the line has physically left the warehouse.
// True for Shipped, ShippedAndInvoiced, and Delivered. A convenience
// predicate, not a state.
func (v LineStatusValue) IsShipped() bool {
	return v == LineShipped || v == LineShippedAndInvoiced || v == LineDelivered
}

func (v LineStatusValue) allowedTransitionNames() []string {
	allowed := getLineStatusTransitions()[v]
	names := make([]string, 0, len(allowed))
	for _, status := range allowed {
		names = append(names, status.String())
	}
	return names
}

// ErrLineStatusIsNotConstructed is returned when a LineStatus was not
// created via its constructors.
var ErrLineStatusIsNotConstructed = errs.NewValueIsRequiredError(
	"LineStatus must be created via NewLineStatus or RestoreLineStatus constructors")

// LineStatus is the per-line fulfillment status record owned exclusively by
// an OrderLine. It carries the line quantity, the status value with its
// derived code and description, optional free-text notes, and the time of
// the last change. It is immutable: UpdateStatus returns a new instance.
type LineStatus struct { //nolint:recvcheck //pointer receivers used for construction-time setters
	quantity  int
	status    LineStatusValue
	notes     string
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewLineStatus creates the initial status record for a line with the given
// quantity, starting in LineCreated.
func NewLineStatus(quantity int) (LineStatus, error) {
	return RestoreLineStatus(quantity, LineCreated, "", time.Now().UTC())
}

// RestoreLineStatus rehydrates a status record from persistence.
func RestoreLineStatus(quantity int, status LineStatusValue, notes string, updatedAt time.Time) (LineStatus, error) {
	ls := LineStatus{
		notes:     notes,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := ls.setQuantity(quantity); err != nil {
		return LineStatus{}, err
	}
	if err := ls.setStatus(status); err != nil {
		return LineStatus{}, err
	}

	return ls, nil
}

// Validate checks that the LineStatus was properly constructed.
func (ls LineStatus) Validate() error {
	return ls.guard.Validate(ErrLineStatusIsNotConstructed)
}

// Quantity returns the quantity carried from the owning line.
func (ls LineStatus) Quantity() int { return ls.quantity }

// Status returns the current status value.
func (ls LineStatus) Status() LineStatusValue { return ls.status }

// StatusCode returns the numeric code derived from the status value.
func (ls LineStatus) StatusCode() int { return ls.status.Code() }

// StatusDescription returns the description derived from the status value.
func (ls LineStatus) StatusDescription() string { return ls.status.Description() }

// Notes returns the optional free-text notes of the last change.
func (ls LineStatus) Notes() string { return ls.notes }

// UpdatedAt returns the time of the last status change.
func (ls LineStatus) UpdatedAt() time.Time { return ls.updatedAt }

// UpdateStatus transitions to newStatus through the line state machine and
// returns a new LineStatus carrying the given notes. The receiver is left
// unchanged.
func (ls LineStatus) UpdateStatus(newStatus LineStatusValue, notes string) (LineStatus, error) {
	if err := ls.Validate(); err != nil {
		return LineStatus{}, err
	}

	transitioned, err := ls.status.TransitionTo(newStatus)
	if err != nil {
		return LineStatus{}, err
	}

	updated := ls
	updated.status = transitioned
	updated.notes = notes
	updated.updatedAt = time.Now().UTC()
	return updated, nil
}

func (ls *LineStatus) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	ls.quantity = quantity
	return nil
}

func (ls *LineStatus) setStatus(status LineStatusValue) error {
	if err := status.Validate(); err != nil {
		return err
	}
	ls.status = status
	return nil
}
