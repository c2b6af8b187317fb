package order

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	// ItemIDMin and ItemIDMax bound the constrained 10-digit numeric item
	// identifier.
	ItemIDMin int64 = 1_000_000_000
	ItemIDMax int64 = 9_999_999_999
)

// ErrOrderLineIsNotConstructed is returned when an OrderLine was not
// created via NewOrderLine or RestoreOrderLine.
var ErrOrderLineIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderLine must be created via NewOrderLine or RestoreOrderLine constructors")

// OrderLineParams carries the raw fields for line construction. TaxRate and
// DiscountAmount are optional; ShippingAddress is required exactly when the
// fulfillment type requires one.
type OrderLineParams struct {
	LineNumber            int
	ItemID                int64
	ItemName              string
	ItemDescription       string
	Quantity              int
	UnitPrice             kernel.Money
	TaxRate               decimal.Decimal
	DiscountAmount        *kernel.Money
	FulfillmentType       FulfillmentType
	ShippingAddress       *kernel.Address
	EstimatedShipDate     *time.Time
	EstimatedDeliveryDate *time.Time
}

// OrderLine is a line item owned exclusively by an Order; it is never
// addressable outside its aggregate. Identity is a generated UUID. The line
// embeds its own LineStatus with an independent state machine.
//
// OrderLine is an immutable value: mutations go through the owning Order,
// which replaces the line wholesale.
type OrderLine struct { //nolint:recvcheck //pointer receivers used for construction-time setters
	id                    kernel.UUID
	lineNumber            int
	itemID                int64
	itemName              string
	itemDescription       string
	quantity              int
	unitPrice             kernel.Money
	taxRate               decimal.Decimal
	discountAmount        *kernel.Money
	fulfillmentType       FulfillmentType
	shippingAddress       *kernel.Address
	estimatedShipDate     *time.Time
	estimatedDeliveryDate *time.Time
	lineStatus            LineStatus

	guard guard.ConstructorGuard
}

// NewOrderLine creates a validated line with a freshly generated identity
// and an initial LineStatus in Created state.
func NewOrderLine(params OrderLineParams) (OrderLine, error) {
	status, err := NewLineStatus(params.Quantity)
	if err != nil {
		return OrderLine{}, err
	}
	return RestoreOrderLine(kernel.NewUUID(), params, status)
}

// RestoreOrderLine rehydrates a line from persistence with its existing
// identity and status record.
func RestoreOrderLine(id kernel.UUID, params OrderLineParams, status LineStatus) (OrderLine, error) {
	line := OrderLine{
		itemDescription:       params.ItemDescription,
		estimatedShipDate:     params.EstimatedShipDate,
		estimatedDeliveryDate: params.EstimatedDeliveryDate,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setID(id),
		line.setLineNumber(params.LineNumber),
		line.setItemID(params.ItemID),
		line.setItemName(params.ItemName),
		line.setQuantity(params.Quantity),
		line.setUnitPrice(params.UnitPrice),
		line.setTaxRate(params.TaxRate),
		line.setDiscountAmount(params.DiscountAmount),
		line.setFulfillment(params.FulfillmentType, params.ShippingAddress),
		line.setDates(params.EstimatedShipDate, params.EstimatedDeliveryDate),
		line.setLineStatus(status),
	); err != nil {
		return OrderLine{}, err
	}

	return line, nil
}

// Validate checks that the OrderLine was properly constructed.
func (l OrderLine) Validate() error {
	return l.guard.Validate(ErrOrderLineIsNotConstructed)
}

// ID returns the generated line identity.
func (l OrderLine) ID() kernel.UUID { return l.id }

// LineNumber returns the 1-based position of the line within its order.
func (l OrderLine) LineNumber() int { return l.lineNumber }

// ItemID returns the 10-digit numeric item identifier.
func (l OrderLine) ItemID() int64 { return l.itemID }

// ItemName returns the item display name.
func (l OrderLine) ItemName() string { return l.itemName }

// ItemDescription returns the optional item description.
func (l OrderLine) ItemDescription() string { return l.itemDescription }

// Quantity returns the ordered quantity.
func (l OrderLine) Quantity() int { return l.quantity }

// UnitPrice returns the per-unit price.
func (l OrderLine) UnitPrice() kernel.Money { return l.unitPrice }

// TaxRate returns the tax rate applied to the line subtotal. Zero when the
// line is untaxed.
func (l OrderLine) TaxRate() decimal.Decimal { return l.taxRate }

// DiscountAmount returns the optional line discount. Nil when none applies.
func (l OrderLine) DiscountAmount() *kernel.Money { return l.discountAmount }

// FulfillmentType returns how the line reaches the customer.
func (l OrderLine) FulfillmentType() FulfillmentType { return l.fulfillmentType }

// ShippingAddress returns the line's shipping destination, nil for pickup
// lines.
func (l OrderLine) ShippingAddress() *kernel.Address { return l.shippingAddress }

// EstimatedShipDate returns the expected ship date, if promised.
func (l OrderLine) EstimatedShipDate() *time.Time { return l.estimatedShipDate }

// EstimatedDeliveryDate returns the expected delivery date, if promised.
func (l OrderLine) EstimatedDeliveryDate() *time.Time { return l.estimatedDeliveryDate }

// LineStatus returns the embedded per-line status record.
func (l OrderLine) LineStatus() LineStatus { return l.lineStatus }

// Subtotal returns unitPrice multiplied by quantity.
func (l OrderLine) Subtotal() (kernel.Money, error) {
	if err := l.Validate(); err != nil {
		return kernel.Money{}, err
	}
	return l.unitPrice.MultiplyInt(l.quantity)
}

// Tax returns the line tax: subtotal times the tax rate, rounded half-up to
// two decimals.
func (l OrderLine) Tax() (kernel.Money, error) {
	subtotal, err := l.Subtotal()
	if err != nil {
		return kernel.Money{}, err
	}
	return subtotal.Multiply(l.taxRate)
}

// Discount returns the line discount, or zero money in the line currency
// when none applies.
func (l OrderLine) Discount() (kernel.Money, error) {
	if err := l.Validate(); err != nil {
		return kernel.Money{}, err
	}
	if l.discountAmount != nil {
		return *l.discountAmount, nil
	}
	return kernel.NewMoney(decimal.Zero, l.unitPrice.Currency())
}

// Total returns subtotal plus tax minus discount.
func (l OrderLine) Total() (kernel.Money, error) {
	subtotal, err := l.Subtotal()
	if err != nil {
		return kernel.Money{}, err
	}
	tax, err := l.Tax()
	if err != nil {
		return kernel.Money{}, err
	}
	discount, err := l.Discount()
	if err != nil {
		return kernel.Money{}, err
	}

	withTax, err := subtotal.Add(tax)
	if err != nil {
		return kernel.Money{}, err
	}
	return withTax.Subtract(discount)
}

// Currency returns the line currency, taken from the unit price.
func (l OrderLine) Currency() kernel.Currency {
	return l.unitPrice.Currency()
}

// withStatus returns a copy of the line carrying the given status record.
func (l OrderLine) withStatus(status LineStatus) OrderLine {
	l.lineStatus = status
	return l
}

func (l *OrderLine) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *OrderLine) setLineNumber(lineNumber int) error {
	if lineNumber < 1 {
		return errs.NewValueIsInvalidErrorWithCause("lineNumber",
			fmt.Errorf("%d is not a positive 1-based position", lineNumber))
	}
	l.lineNumber = lineNumber
	return nil
}

func (l *OrderLine) setItemID(itemID int64) error {
	if itemID < ItemIDMin || itemID > ItemIDMax {
		return errs.NewValueIsOutOfRangeError("itemId", itemID, ItemIDMin, ItemIDMax)
	}
	l.itemID = itemID
	return nil
}

func (l *OrderLine) setItemName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("itemName")
	}
	l.itemName = name
	return nil
}

func (l *OrderLine) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}

func (l *OrderLine) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	if price.IsNegative() || price.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%s is not greater than 0", price))
	}
	l.unitPrice = price
	return nil
}

func (l *OrderLine) setTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("taxRate",
			fmt.Errorf("%s is negative", rate))
	}
	l.taxRate = rate
	return nil
}

func (l *OrderLine) setDiscountAmount(discount *kernel.Money) error {
	if discount == nil {
		return nil
	}
	if err := discount.Validate(); err != nil {
		return err
	}
	if discount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("discountAmount",
			fmt.Errorf("%s is negative", discount))
	}
	if discount.Currency() != l.unitPrice.Currency() {
		return errs.NewValueIsInvalidErrorWithCause("discountAmount",
			fmt.Errorf("currency %s does not match unit price currency %s",
				discount.Currency(), l.unitPrice.Currency()))
	}
	value := *discount
	l.discountAmount = &value
	return nil
}

func (l *OrderLine) setFulfillment(fulfillment FulfillmentType, shippingAddress *kernel.Address) error {
	if err := fulfillment.Validate(); err != nil {
		return err
	}
	if shippingAddress != nil {
		if err := shippingAddress.Validate(); err != nil {
			return err
		}
		value := *shippingAddress
		l.shippingAddress = &value
	}
	if fulfillment.RequiresShippingAddress() && l.shippingAddress == nil {
		return errs.NewValueIsRequiredErrorWithCause("shippingAddress",
			fmt.Errorf("fulfillment type %s ships to a customer location", fulfillment))
	}
	l.fulfillmentType = fulfillment
	return nil
}

func (l *OrderLine) setDates(shipDate, deliveryDate *time.Time) error {
	if shipDate != nil && deliveryDate != nil && deliveryDate.Before(*shipDate) {
		return errs.NewValueIsInvalidErrorWithCause("estimatedDeliveryDate",
			fmt.Errorf("delivery date %s precedes ship date %s",
				deliveryDate.Format(time.DateOnly), shipDate.Format(time.DateOnly)))
	}
	return nil
}

func (l *OrderLine) setLineStatus(status LineStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status.Quantity() != l.quantity {
		return errs.NewValueIsInvalidErrorWithCause("lineStatus",
			fmt.Errorf("status quantity %d does not match line quantity %d",
				status.Quantity(), l.quantity))
	}
	l.lineStatus = status
	return nil
}
