// Package order provides domain entities and business logic for the order
// lifecycle. It implements the Order aggregate root with its owned
// OrderLine and LineStatus sub-entities and two independent state machines.
//
// The package includes:
//   - Order: The aggregate root owning lines, billing address, and the
//     order-level status machine together with all derived totals
//   - OrderLine: A line item combining quantity, pricing, fulfillment type,
//     and an embedded LineStatus
//   - Status: The order-level state machine, including the InRelease and
//     InShipment partial-fulfillment states
//   - LineStatusValue / LineStatus: The per-line fulfillment state machine
//
// Key business rules:
//   - An order always has at least one line and all lines share one currency
//   - Total amount (subtotal + tax - discount) is never negative
//   - Status changes only through the defined transition tables
//   - Lines are addable/removable only while the order is in Created status,
//     and the last line can never be removed (cancel the order instead)
//   - Every mutator returns a new validated instance; aggregates are never
//     modified in place
//
// The order-level InRelease/InShipment states model partial fulfillment and
// are maintained by the orchestrating service, not derived from line
// statuses.
package order
