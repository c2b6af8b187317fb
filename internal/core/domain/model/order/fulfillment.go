package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// OrderType classifies how the order was placed.
type OrderType int

const (
	// OrderTypeUnknown represents an invalid or undefined order type.
	OrderTypeUnknown OrderType = iota

	// OrderTypeStandard is a regular customer order.
	OrderTypeStandard

	// OrderTypeGuest is an order placed without a customer account.
	OrderTypeGuest

	// OrderTypeStore is an order captured in a physical store.
	OrderTypeStore
)

func getOrderTypeStrings() map[OrderType]string {
	return map[OrderType]string{
		OrderTypeStandard: "STANDARD",
		OrderTypeGuest:    "GUEST",
		OrderTypeStore:    "STORE",
	}
}

// OrderTypeFromString parses the upstream wire name of an order type.
func OrderTypeFromString(s string) (OrderType, error) {
	for t, name := range getOrderTypeStrings() {
		if name == s {
			return t, nil
		}
	}
	return OrderTypeUnknown, errs.NewValueIsInvalidErrorWithCause("orderType",
		fmt.Errorf("%q is not a known order type", s))
}

// Validate checks that the order type is one of the defined values.
func (t OrderType) Validate() error {
	if _, ok := getOrderTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("orderType",
			fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// String returns the wire name of the order type.
func (t OrderType) String() string {
	if name, ok := getOrderTypeStrings()[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// FulfillmentType describes how an order line reaches the customer.
type FulfillmentType int

const (
	// FulfillmentUnknown represents an invalid or undefined fulfillment
	// type.
	FulfillmentUnknown FulfillmentType = iota

	// ShipToHome delivers the line to a customer-provided address (STH).
	ShipToHome

	// BuyOnlinePickupInStore holds the line for pickup at a store (BOPS).
	BuyOnlinePickupInStore

	// ShipToStore ships the line to a store for customer pickup (STS).
	ShipToStore
)

func getFulfillmentTypeStrings() map[FulfillmentType]string {
	return map[FulfillmentType]string{
		ShipToHome:             "STH",
		BuyOnlinePickupInStore: "BOPS",
		ShipToStore:            "STS",
	}
}

// FulfillmentTypeFromString parses the upstream wire code of a fulfillment
// type (STH, BOPS, STS).
func FulfillmentTypeFromString(s string) (FulfillmentType, error) {
	for t, name := range getFulfillmentTypeStrings() {
		if name == s {
			return t, nil
		}
	}
	return FulfillmentUnknown, errs.NewValueIsInvalidErrorWithCause("fulfillmentType",
		fmt.Errorf("%q is not a known fulfillment type", s))
}

// Validate checks that the fulfillment type is one of the defined values.
func (t FulfillmentType) Validate() error {
	if _, ok := getFulfillmentTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("fulfillmentType",
			fmt.Errorf("%d is not a valid fulfillment type", t))
	}
	return nil
}

// String returns the wire code of the fulfillment type.
func (t FulfillmentType) String() string {
	if name, ok := getFulfillmentTypeStrings()[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// RequiresShippingAddress reports whether lines of this fulfillment type
// must carry a shipping address. Pickup-in-store lines ship to the store,
// not to a customer location.
func (t FulfillmentType) RequiresShippingAddress() bool {
	return t == ShipToHome || t == ShipToStore
}
