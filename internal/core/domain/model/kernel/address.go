package kernel

import (
	"errors"
	"fmt"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when an Address instance was not
// created via the NewAddress constructor.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"Address must be created via NewAddress constructor")

// Address is an immutable postal address used for billing and per-line
// shipping destinations. Required fields are full name, the first address
// line, city, postal code, and country; the second address line, state or
// province, phone number, and email are optional.
//
// The zero value is invalid; use NewAddress.
type Address struct { //nolint:recvcheck //pointer receivers used for construction-time setters
	fullName      string
	addressLine1  string
	addressLine2  string
	city          string
	stateProvince string
	postalCode    string
	country       string
	phoneNumber   string
	email         string

	guard guard.ConstructorGuard
}

// AddressParams carries the raw fields for address construction. Optional
// fields may be left empty.
type AddressParams struct {
	FullName      string
	AddressLine1  string
	AddressLine2  string
	City          string
	StateProvince string
	PostalCode    string
	Country       string
	PhoneNumber   string
	Email         string
}

// NewAddress creates a validated Address. All required fields must be
// non-empty; validation errors for every missing field are joined into a
// single error.
func NewAddress(params AddressParams) (Address, error) {
	a := Address{
		addressLine2:  params.AddressLine2,
		stateProvince: params.StateProvince,
		phoneNumber:   params.PhoneNumber,
		email:         params.Email,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setRequired(&a.fullName, "fullName", params.FullName),
		a.setRequired(&a.addressLine1, "addressLine1", params.AddressLine1),
		a.setRequired(&a.city, "city", params.City),
		a.setRequired(&a.postalCode, "postalCode", params.PostalCode),
		a.setRequired(&a.country, "country", params.Country),
	); err != nil {
		return Address{}, err
	}

	return a, nil
}

// Validate checks that the Address was properly constructed.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// FullName returns the addressee's full name.
func (a Address) FullName() string { return a.fullName }

// AddressLine1 returns the first address line.
func (a Address) AddressLine1() string { return a.addressLine1 }

// AddressLine2 returns the optional second address line.
func (a Address) AddressLine2() string { return a.addressLine2 }

// City returns the city.
func (a Address) City() string { return a.city }

// StateProvince returns the optional state or province.
func (a Address) StateProvince() string { return a.stateProvince }

// PostalCode returns the postal code.
func (a Address) PostalCode() string { return a.postalCode }

// Country returns the country.
func (a Address) Country() string { return a.country }

// PhoneNumber returns the optional contact phone number.
func (a Address) PhoneNumber() string { return a.phoneNumber }

// Email returns the optional contact email.
func (a Address) Email() string { return a.email }

// IsEqual compares two addresses field by field.
func (a Address) IsEqual(other Address) bool {
	return a == other
}

// String returns a single-line representation for logs.
func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.addressLine1, a.city, a.stateProvince, a.postalCode, a.country)
}

func (a *Address) setRequired(field *string, name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*field = value
	return nil
}
