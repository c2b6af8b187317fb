package kernel

import (
	"errors"
	"fmt"
	"regexp"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of fractional digits a Money amount may carry.
// Every arithmetic result is rounded half-up to this scale.
const moneyScale = 2

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ErrMoneyIsNotConstructed is returned when a Money instance was not created
// through one of the constructor functions.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"Money must be created via NewMoney or NewMoneyFromFloat constructors")

// Currency is an ISO 4217 alphabetic currency code, e.g. "USD".
type Currency string

// NewCurrency validates and creates a currency code. The code must be
// exactly three upper-case letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyPattern.MatchString(code) {
		return "", errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a 3-letter ISO code", code))
	}
	return Currency(code), nil
}

// String returns the currency code.
func (c Currency) String() string {
	return string(c)
}

// Money represents an exact decimal amount in a single currency. It is an
// immutable value object: every operation returns a new instance and never
// mutates the receiver. Amounts carry at most two fractional digits.
//
// Construction draws a hard line between the two ways precision can be
// handled: NewMoneyFromFloat rounds half-up to two decimals, while NewMoney
// rejects any amount that would not survive that rounding unchanged. An
// operation between mismatched currencies always fails rather than guessing.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromFloat(29.99, "USD")
//	subtotal, _ := price.MultiplyInt(2) // 59.98 USD
type Money struct { //nolint:recvcheck //pointer receivers used for construction-time setters
	amount   decimal.Decimal
	currency Currency

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value from an exact decimal amount. The amount
// must not carry more than two significant fractional digits; construction
// fails instead of silently rounding.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	m := Money{guard: guard.NewConstructorGuard()}

	if err := errors.Join(m.setAmount(amount), m.setCurrency(currency)); err != nil {
		return Money{}, err
	}

	return m, nil
}

// NewMoneyFromFloat creates a Money value from a floating-point source,
// rounding half-up to two decimals. Use this at ingestion boundaries where
// upstream systems deliver amounts as JSON numbers.
func NewMoneyFromFloat(value float64, currency Currency) (Money, error) {
	return NewMoney(decimal.NewFromFloat(value).Round(moneyScale), currency)
}

// Validate checks that the Money value was properly constructed.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() Currency {
	return m.currency
}

// Add returns the sum of two Money values. Fails if the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if err := m.checkCompatible(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// Subtract returns the difference of two Money values. Fails if the
// currencies differ.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.checkCompatible(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Sub(other.amount), m.currency)
}

// Multiply scales the amount by a decimal factor, rounding half-up to two
// decimals. The currency is preserved. Used for tax-rate application.
func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Mul(factor).Round(moneyScale), m.currency)
}

// MultiplyInt scales the amount by an integer factor. The currency is
// preserved.
func (m Money) MultiplyInt(factor int) (Money, error) {
	return m.Multiply(decimal.NewFromInt(int64(factor)))
}

// DivideInt divides the amount by a nonzero integer, rounding half-up to two
// decimals.
func (m Money) DivideInt(divisor int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if divisor == 0 {
		return Money{}, errs.NewValueIsInvalidError("division by zero")
	}
	return NewMoney(m.amount.Div(decimal.NewFromInt(int64(divisor))).Round(moneyScale), m.currency)
}

// GreaterThan reports whether m exceeds other. Fails if the currencies
// differ.
func (m Money) GreaterThan(other Money) (bool, error) {
	if err := m.checkCompatible(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

// LessThan reports whether m is below other. Fails if the currencies differ.
func (m Money) LessThan(other Money) (bool, error) {
	if err := m.checkCompatible(other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two Money values by amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String returns a representation like "64.78 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(moneyScale), m.currency)
}

func (m Money) checkCompatible(other Money) error {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return err
	}
	if m.currency != other.currency {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%s does not match %s", m.currency, other.currency))
	}
	return nil
}

func (m *Money) setAmount(amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(moneyScale)) {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s carries more than %d decimal places", amount, moneyScale))
	}
	m.amount = amount
	return nil
}

func (m *Money) setCurrency(currency Currency) error {
	validated, err := NewCurrency(string(currency))
	if err != nil {
		return err
	}
	m.currency = validated
	return nil
}
