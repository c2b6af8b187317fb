package queries

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with all of its lines and
// computed monetary totals.
//
// Example:
//
//	orderID, _ := kernel.OrderIDFromString("10-20260301-0000042")
//	query, _ := NewGetOrderQuery(orderID)
//	handler := NewGetOrderQueryHandler(db)
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("%s: %d lines, total %s\n", resp.Number, len(resp.Lines), resp.TotalAmount)
type GetOrderQuery struct {
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the order with the given business
// identifier.
func NewGetOrderQuery(orderID kernel.OrderID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// OrderID returns the requested order identifier.
func (q GetOrderQuery) OrderID() kernel.OrderID { return q.orderID }

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse is the full read model of one order. Totals are
// computed from the lines at read time, never stored.
type GetOrderQueryResponse struct {
	Number          string
	ExternalOrderID *kernel.UUID
	CustomerID      string
	OrderType       string
	Channel         string
	Status          string
	Notes           string
	BillingAddress  kernel.Address
	Lines           []GetOrderLineResponse
	Subtotal        kernel.Money
	Tax             kernel.Money
	Discount        kernel.Money
	TotalAmount     kernel.Money
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// GetOrderLineResponse is the read model of one order line.
type GetOrderLineResponse struct {
	ID                    kernel.UUID
	LineNumber            int
	ItemID                int64
	ItemName              string
	ItemDescription       string
	Quantity              int
	UnitPrice             kernel.Money
	TaxRate               decimal.Decimal
	DiscountAmount        *kernel.Money
	FulfillmentType       string
	ShippingAddress       *kernel.Address
	EstimatedShipDate     *time.Time
	EstimatedDeliveryDate *time.Time
	Status                string
	StatusCode            int
	StatusNotes           string
	StatusUpdatedAt       time.Time
}
