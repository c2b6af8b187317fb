package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with a defined transition table to ensure orders follow the
// correct business workflow.
//
// State transitions:
//
//	Created ────┬──> InRelease ──┬──> Released ──┬──> InShipment ──┬──> Shipped ──> Delivered
//	            │                │               │                 │
//	            ├────────────────┘               │                 │
//	            └──> Cancelled <─────────────────┴─────────────────┘
//
// InRelease and InShipment model partial fulfillment: some, but not all,
// lines have progressed. They are set by the orchestrating service and are
// not derived from line statuses. Delivered and Cancelled are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusCreated is the initial status when an order is first accepted.
	// Only orders in this status may have lines added or removed.
	StatusCreated

	// StatusInRelease indicates some but not all lines have been released.
	StatusInRelease

	// StatusReleased indicates all lines have been released to fulfillment.
	StatusReleased

	// StatusInShipment indicates some but not all lines have shipped.
	StatusInShipment

	// StatusShipped indicates all lines have shipped.
	StatusShipped

	// StatusDelivered indicates the order reached the customer. Terminal.
	StatusDelivered

	// StatusCancelled indicates the order was cancelled. Terminal. Soft
	// deletion is modeled as a transition to this status.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "UNKNOWN",
		StatusCreated:    "CREATED",
		StatusInRelease:  "IN_RELEASE",
		StatusReleased:   "RELEASED",
		StatusInShipment: "IN_SHIPMENT",
		StatusShipped:    "SHIPPED",
		StatusDelivered:  "DELIVERED",
		StatusCancelled:  "CANCELLED",
	}
}

// getStatusTransitions returns the full order-level transition table.
// Terminal states map to an empty set.
func getStatusTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusCreated:    {StatusInRelease, StatusReleased, StatusCancelled},
		StatusInRelease:  {StatusReleased, StatusInShipment, StatusCancelled},
		StatusReleased:   {StatusInShipment, StatusShipped, StatusCancelled},
		StatusInShipment: {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusDelivered},
		StatusDelivered:  {},
		StatusCancelled:  {},
	}
}

// StatusFromString parses the wire name of an order status.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != StatusUnknown && name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a known order status", s))
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getStatusTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status. Implements fmt.Stringer and
// is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// CanTransitionTo reports whether the transition table permits moving from
// the current status to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getStatusTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo performs a table-validated transition to target.
//
// Returns:
//   - (target, nil) when the transition table permits the move
//   - (StatusUnknown, *errs.InvalidStateTransitionError) otherwise; the
//     error reports the current status and the full allowed-transition set
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return StatusUnknown, err
	}
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}

	if !s.CanTransitionTo(target) {
		return StatusUnknown, errs.NewInvalidStateTransitionError(
			"order", s.String(), target.String(), s.allowedTransitionNames()...)
	}

	return target, nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	transitions, ok := getStatusTransitions()[s]
	return ok && len(transitions) == 0
}

// IsModifiable reports whether lines may be added to or removed from an
// order in this status. Only freshly created orders are modifiable.
func (s Status) IsModifiable() bool {
	return s == StatusCreated
}

// CanCancel reports whether the order can still be cancelled, delegating to
// the transition table.
func (s Status) CanCancel() bool {
	return s.CanTransitionTo(StatusCancelled)
}

func (s Status) allowedTransitionNames() []string {
	allowed := getStatusTransitions()[s]
	names := make([]string, 0, len(allowed))
	for _, status := range allowed {
		names = append(names, status.String())
	}
	return names
}
