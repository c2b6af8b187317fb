package queries

import (
	"database/sql"

	"orders/internal/core/domain/model/kernel"
)

// addressColumns groups the scan targets for a required embedded address.
type addressColumns struct {
	fullName      string
	addressLine1  string
	addressLine2  string
	city          string
	stateProvince string
	postalCode    string
	country       string
	phoneNumber   string
	email         string
}

func (c addressColumns) toAddress() (kernel.Address, error) {
	return kernel.NewAddress(kernel.AddressParams{
		FullName:      c.fullName,
		AddressLine1:  c.addressLine1,
		AddressLine2:  c.addressLine2,
		City:          c.city,
		StateProvince: c.stateProvince,
		PostalCode:    c.postalCode,
		Country:       c.country,
		PhoneNumber:   c.phoneNumber,
		Email:         c.email,
	})
}

// nullableAddressColumns groups the scan targets for an optional embedded
// address. An absent address leaves every column NULL.
type nullableAddressColumns struct {
	fullName      sql.NullString
	addressLine1  sql.NullString
	addressLine2  sql.NullString
	city          sql.NullString
	stateProvince sql.NullString
	postalCode    sql.NullString
	country       sql.NullString
	phoneNumber   sql.NullString
	email         sql.NullString
}

func (c nullableAddressColumns) toAddress() (*kernel.Address, error) {
	if !c.fullName.Valid || c.fullName.String == "" {
		return nil, nil //nolint:nilnil //absence of an optional address is not an error
	}
	address, err := kernel.NewAddress(kernel.AddressParams{
		FullName:      c.fullName.String,
		AddressLine1:  c.addressLine1.String,
		AddressLine2:  c.addressLine2.String,
		City:          c.city.String,
		StateProvince: c.stateProvince.String,
		PostalCode:    c.postalCode.String,
		Country:       c.country.String,
		PhoneNumber:   c.phoneNumber.String,
		Email:         c.email.String,
	})
	if err != nil {
		return nil, err
	}
	return &address, nil
}
