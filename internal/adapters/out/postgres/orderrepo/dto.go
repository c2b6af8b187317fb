// Package orderrepo implements the order repository port on PostgreSQL
// via GORM. Aggregates are stored as an order row plus one row per line;
// rehydration goes through the domain Restore constructors so stored data
// is re-validated on every read.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO maps the order aggregate root to the orders table. Number is
// the business identifier; ID is a surrogate key for foreign references
// and index locality. Version backs optimistic concurrency control.
type OrderDTO struct {
	ID              uint64  `gorm:"primaryKey;autoIncrement"`
	Number          string  `gorm:"type:varchar(20);uniqueIndex;not null"`
	ExternalOrderID *string `gorm:"type:uuid;uniqueIndex"`
	CustomerID      string  `gorm:"type:varchar(64);index;not null"`
	OrderType       string  `gorm:"type:varchar(16);not null"`
	Channel         string  `gorm:"type:varchar(16);not null"`
	Status          string  `gorm:"type:varchar(16);index;not null"`
	Notes           string
	Version         int        `gorm:"not null;default:1"`
	BillingAddress  AddressDTO `gorm:"embedded;embeddedPrefix:billing_"`

	Lines []OrderLineDTO `gorm:"foreignKey:OrderNumber;references:Number;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name used by OrderDTO to `orders`.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO maps one order line and its embedded status record to the
// order_lines table.
type OrderLineDTO struct {
	ID              string `gorm:"type:uuid;primaryKey"`
	OrderNumber     string `gorm:"type:varchar(20);index;not null"`
	LineNumber      int    `gorm:"not null"`
	ItemID          int64  `gorm:"not null"`
	ItemName        string `gorm:"not null"`
	ItemDescription string
	Quantity        int                 `gorm:"not null"`
	UnitPrice       decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	Currency        string              `gorm:"type:varchar(3);not null"`
	TaxRate         decimal.Decimal     `gorm:"type:numeric(8,4);not null"`
	DiscountAmount  decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	FulfillmentType string              `gorm:"type:varchar(8);not null"`
	ShippingAddress NullableAddressDTO  `gorm:"embedded;embeddedPrefix:shipping_"`

	EstimatedShipDate     *time.Time
	EstimatedDeliveryDate *time.Time

	Status          string `gorm:"type:varchar(32);not null"`
	StatusNotes     string
	StatusUpdatedAt time.Time
}

// TableName overrides the table name used by OrderLineDTO to `order_lines`.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// AddressDTO maps an embedded required address.
type AddressDTO struct {
	FullName      string `gorm:"not null"`
	AddressLine1  string `gorm:"not null"`
	AddressLine2  string
	City          string `gorm:"not null"`
	StateProvince string
	PostalCode    string `gorm:"not null"`
	Country       string `gorm:"not null"`
	PhoneNumber   string
	Email         string
}

// NullableAddressDTO maps an embedded optional address. Absence is
// modeled as an empty FullName.
type NullableAddressDTO struct {
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

func fromDomain(aggregate *order.Order, version int) OrderDTO {
	dto := OrderDTO{
		Number:         aggregate.ID().String(),
		CustomerID:     aggregate.CustomerID(),
		OrderType:      aggregate.OrderType().String(),
		Channel:        aggregate.Channel().String(),
		Status:         aggregate.Status().String(),
		Notes:          aggregate.Notes(),
		Version:        version,
		BillingAddress: addressToDTO(aggregate.BillingAddress()),
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
	}

	if externalID := aggregate.ExternalOrderID(); externalID != nil {
		value := externalID.String()
		dto.ExternalOrderID = &value
	}

	dto.Lines = make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		dto.Lines = append(dto.Lines, lineFromDomain(dto.Number, line))
	}

	return dto
}

func lineFromDomain(orderNumber string, line order.OrderLine) OrderLineDTO {
	status := line.LineStatus()
	dto := OrderLineDTO{
		ID:                    line.ID().String(),
		OrderNumber:           orderNumber,
		LineNumber:            line.LineNumber(),
		ItemID:                line.ItemID(),
		ItemName:              line.ItemName(),
		ItemDescription:       line.ItemDescription(),
		Quantity:              line.Quantity(),
		UnitPrice:             line.UnitPrice().Amount(),
		Currency:              line.UnitPrice().Currency().String(),
		TaxRate:               line.TaxRate(),
		FulfillmentType:       line.FulfillmentType().String(),
		EstimatedShipDate:     line.EstimatedShipDate(),
		EstimatedDeliveryDate: line.EstimatedDeliveryDate(),
		Status:                status.Status().String(),
		StatusNotes:           status.Notes(),
		StatusUpdatedAt:       status.UpdatedAt(),
	}

	if discount := line.DiscountAmount(); discount != nil {
		dto.DiscountAmount = decimal.NewNullDecimal(discount.Amount())
	}
	if shipping := line.ShippingAddress(); shipping != nil {
		dto.ShippingAddress = NullableAddressDTO(addressToDTO(*shipping))
	}

	return dto
}

func (dto OrderDTO) toDomain() (*order.Order, error) {
	id, err := kernel.OrderIDFromString(dto.Number)
	if err != nil {
		return nil, err
	}
	orderType, err := order.OrderTypeFromString(dto.OrderType)
	if err != nil {
		return nil, err
	}
	channel, err := kernel.ChannelFromString(dto.Channel)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	billing, err := dto.BillingAddress.toDomain()
	if err != nil {
		return nil, err
	}

	var externalOrderID *kernel.UUID
	if dto.ExternalOrderID != nil {
		value, idErr := kernel.UUIDFromString(*dto.ExternalOrderID)
		if idErr != nil {
			return nil, idErr
		}
		externalOrderID = &value
	}

	lines := make([]order.OrderLine, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineDTO.toDomain()
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(order.NewOrderParams{
		ID:              id,
		ExternalOrderID: externalOrderID,
		CustomerID:      dto.CustomerID,
		OrderType:       orderType,
		Channel:         channel,
		Lines:           lines,
		BillingAddress:  billing,
		Notes:           dto.Notes,
	}, status, dto.CreatedAt, dto.UpdatedAt)
}

func (dto OrderLineDTO) toDomain() (order.OrderLine, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return order.OrderLine{}, err
	}
	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return order.OrderLine{}, err
	}
	unitPrice, err := kernel.NewMoney(dto.UnitPrice, currency)
	if err != nil {
		return order.OrderLine{}, err
	}
	fulfillment, err := order.FulfillmentTypeFromString(dto.FulfillmentType)
	if err != nil {
		return order.OrderLine{}, err
	}
	statusValue, err := order.LineStatusFromString(dto.Status)
	if err != nil {
		return order.OrderLine{}, err
	}
	status, err := order.RestoreLineStatus(dto.Quantity, statusValue, dto.StatusNotes, dto.StatusUpdatedAt)
	if err != nil {
		return order.OrderLine{}, err
	}

	var discount *kernel.Money
	if dto.DiscountAmount.Valid {
		value, moneyErr := kernel.NewMoney(dto.DiscountAmount.Decimal, currency)
		if moneyErr != nil {
			return order.OrderLine{}, moneyErr
		}
		discount = &value
	}

	shipping, err := dto.ShippingAddress.toDomain()
	if err != nil {
		return order.OrderLine{}, err
	}

	return order.RestoreOrderLine(id, order.OrderLineParams{
		LineNumber:            dto.LineNumber,
		ItemID:                dto.ItemID,
		ItemName:              dto.ItemName,
		ItemDescription:       dto.ItemDescription,
		Quantity:              dto.Quantity,
		UnitPrice:             unitPrice,
		TaxRate:               dto.TaxRate,
		DiscountAmount:        discount,
		FulfillmentType:       fulfillment,
		ShippingAddress:       shipping,
		EstimatedShipDate:     dto.EstimatedShipDate,
		EstimatedDeliveryDate: dto.EstimatedDeliveryDate,
	}, status)
}

func addressToDTO(address kernel.Address) AddressDTO {
	return AddressDTO{
		FullName:      address.FullName(),
		AddressLine1:  address.AddressLine1(),
		AddressLine2:  address.AddressLine2(),
		City:          address.City(),
		StateProvince: address.StateProvince(),
		PostalCode:    address.PostalCode(),
		Country:       address.Country(),
		PhoneNumber:   address.PhoneNumber(),
		Email:         address.Email(),
	}
}

func (dto AddressDTO) toDomain() (kernel.Address, error) {
	return kernel.NewAddress(kernel.AddressParams{
		FullName:      dto.FullName,
		AddressLine1:  dto.AddressLine1,
		AddressLine2:  dto.AddressLine2,
		City:          dto.City,
		StateProvince: dto.StateProvince,
		PostalCode:    dto.PostalCode,
		Country:       dto.Country,
		PhoneNumber:   dto.PhoneNumber,
		Email:         dto.Email,
	})
}

func (dto NullableAddressDTO) toDomain() (*kernel.Address, error) {
	if dto.FullName == "" {
		return nil, nil //nolint:nilnil //absence of an optional address is not an error
	}
	address, err := AddressDTO(dto).toDomain()
	if err != nil {
		return nil, err
	}
	return &address, nil
}
