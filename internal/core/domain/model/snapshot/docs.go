// Package snapshot holds the release and shipment snapshot records
// reconciled from upstream fulfillment events.
//
// Snapshots are independent, order-linked facts keyed by the external
// business identifier of the release or shipment that produced them. They
// sit outside the order aggregate's consistency boundary: an incoming event
// overwrites the latest known state for its own business ID (upsert) and
// never participates in the order's invariant checking. Redelivery of the
// same event is therefore idempotent by construction.
package snapshot
