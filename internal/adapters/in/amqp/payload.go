package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Upstream events carry local timestamps without a zone ("2006-01-02T15:04:05")
// and date-only estimates ("2006-01-02"). RFC3339 is accepted too.
const (
	eventTimeLayout = "2006-01-02T15:04:05"
	dateLayout      = "2006-01-02"
)

type addressPayload struct {
	FullName      string  `json:"full_name"`
	AddressLine1  string  `json:"address_line1"`
	AddressLine2  *string `json:"address_line2"`
	City          string  `json:"city"`
	StateProvince *string `json:"state_province"`
	PostalCode    string  `json:"postal_code"`
	Country       string  `json:"country"`
	PhoneNumber   *string `json:"phone_number"`
	Email         *string `json:"email"`
}

type orderLinePayload struct {
	LineNumber            int             `json:"line_number"`
	ItemID                int64           `json:"item_id"`
	ItemName              string          `json:"item_name"`
	ItemDescription       *string         `json:"item_description"`
	Quantity              int             `json:"quantity"`
	UnitPrice             float64         `json:"unit_price"`
	Currency              string          `json:"currency"`
	TaxRate               float64         `json:"tax_rate"`
	DiscountAmount        *float64        `json:"discount_amount"`
	FulfillmentType       string          `json:"fulfillment_type"`
	EstimatedShipDate     *string         `json:"estimated_ship_date"`
	EstimatedDeliveryDate *string         `json:"estimated_delivery_date"`
	ShippingAddress       *addressPayload `json:"shipping_address"`
}

type orderCreatedPayload struct {
	ExternalOrderID *string            `json:"external_order_id"`
	CustomerID      string             `json:"customer_id"`
	OrderType       string             `json:"order_type"`
	Channel         string             `json:"channel"`
	OrderLines      []orderLinePayload `json:"order_lines"`
	BillingAddress  addressPayload     `json:"billing_address"`
	Notes           *string            `json:"notes"`
	Timestamp       string             `json:"timestamp"`
}

type releaseUpdatedPayload struct {
	ReleaseID   string `json:"release_id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
	EventTime   string `json:"event_time"`
}

type shipmentUpdatedPayload struct {
	ShipmentID     string `json:"shipment_id"`
	OrderNumber    string `json:"order_number"`
	TrackingNumber string `json:"tracking_number"`
	Status         string `json:"status"`
	EventTime      string `json:"event_time"`
}

func parseEventTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(eventTimeLayout, value)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("eventTime", err)
	}
	return t.UTC(), nil
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil //nolint:nilnil //absent date
	}
	t, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("date", err)
	}
	utc := t.UTC()
	return &utc, nil
}

func addressFromPayload(payload addressPayload) (kernel.Address, error) {
	return kernel.NewAddress(kernel.AddressParams{
		FullName:      payload.FullName,
		AddressLine1:  payload.AddressLine1,
		AddressLine2:  strOrEmpty(payload.AddressLine2),
		City:          payload.City,
		StateProvince: strOrEmpty(payload.StateProvince),
		PostalCode:    payload.PostalCode,
		Country:       payload.Country,
		PhoneNumber:   strOrEmpty(payload.PhoneNumber),
		Email:         strOrEmpty(payload.Email),
	})
}

func lineFromPayload(payload orderLinePayload) (order.OrderLineParams, error) {
	currency, err := kernel.NewCurrency(payload.Currency)
	if err != nil {
		return order.OrderLineParams{}, err
	}

	unitPrice, err := kernel.NewMoneyFromFloat(payload.UnitPrice, currency)
	if err != nil {
		return order.OrderLineParams{}, err
	}

	fulfillment, err := order.FulfillmentTypeFromString(payload.FulfillmentType)
	if err != nil {
		return order.OrderLineParams{}, err
	}

	shipDate, err := parseDate(payload.EstimatedShipDate)
	if err != nil {
		return order.OrderLineParams{}, err
	}
	deliveryDate, err := parseDate(payload.EstimatedDeliveryDate)
	if err != nil {
		return order.OrderLineParams{}, err
	}

	params := order.OrderLineParams{
		LineNumber:            payload.LineNumber,
		ItemID:                payload.ItemID,
		ItemName:              payload.ItemName,
		ItemDescription:       strOrEmpty(payload.ItemDescription),
		Quantity:              payload.Quantity,
		UnitPrice:             unitPrice,
		TaxRate:               decimal.NewFromFloat(payload.TaxRate),
		FulfillmentType:       fulfillment,
		EstimatedShipDate:     shipDate,
		EstimatedDeliveryDate: deliveryDate,
	}

	if payload.DiscountAmount != nil {
		discount, err := kernel.NewMoneyFromFloat(*payload.DiscountAmount, currency)
		if err != nil {
			return order.OrderLineParams{}, err
		}
		params.DiscountAmount = &discount
	}

	if payload.ShippingAddress != nil {
		shipping, err := addressFromPayload(*payload.ShippingAddress)
		if err != nil {
			return order.OrderLineParams{}, err
		}
		params.ShippingAddress = &shipping
	}

	return params, nil
}

// decodeOrderCreated parses an order-created event into command params.
func decodeOrderCreated(body []byte) (commands.CreateOrderCommandParams, error) {
	var payload orderCreatedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return commands.CreateOrderCommandParams{},
			errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	channel, err := kernel.ChannelFromString(payload.Channel)
	if err != nil {
		return commands.CreateOrderCommandParams{}, err
	}

	orderType, err := order.OrderTypeFromString(payload.OrderType)
	if err != nil {
		return commands.CreateOrderCommandParams{}, err
	}

	billing, err := addressFromPayload(payload.BillingAddress)
	if err != nil {
		return commands.CreateOrderCommandParams{}, err
	}

	params := commands.CreateOrderCommandParams{
		CustomerID:     payload.CustomerID,
		OrderType:      orderType,
		Channel:        channel,
		BillingAddress: billing,
		Notes:          strOrEmpty(payload.Notes),
	}

	if payload.ExternalOrderID != nil && *payload.ExternalOrderID != "" {
		externalID, err := kernel.UUIDFromString(*payload.ExternalOrderID)
		if err != nil {
			return commands.CreateOrderCommandParams{}, err
		}
		params.ExternalOrderID = &externalID
	}

	lines := make([]order.OrderLineParams, 0, len(payload.OrderLines))
	for _, linePayload := range payload.OrderLines {
		lineParams, err := lineFromPayload(linePayload)
		if err != nil {
			return commands.CreateOrderCommandParams{}, err
		}
		lines = append(lines, lineParams)
	}
	params.Lines = lines

	return params, nil
}

// decodeReleaseUpdated parses a release event into a snapshot command. The
// full decoded body is preserved as the opaque payload.
func decodeReleaseUpdated(body []byte) (commands.ApplyReleaseSnapshotCommand, error) {
	var payload releaseUpdatedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return commands.ApplyReleaseSnapshotCommand{},
			errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	orderID, err := kernel.OrderIDFromString(payload.OrderNumber)
	if err != nil {
		return commands.ApplyReleaseSnapshotCommand{}, err
	}

	eventTime, err := parseEventTime(payload.EventTime)
	if err != nil {
		return commands.ApplyReleaseSnapshotCommand{}, err
	}

	raw, err := rawPayload(body)
	if err != nil {
		return commands.ApplyReleaseSnapshotCommand{}, err
	}

	return commands.NewApplyReleaseSnapshotCommand(
		payload.ReleaseID, orderID, payload.Status, eventTime, raw)
}

// decodeShipmentUpdated parses a shipment event into a snapshot command.
func decodeShipmentUpdated(body []byte) (commands.ApplyShipmentSnapshotCommand, error) {
	var payload shipmentUpdatedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return commands.ApplyShipmentSnapshotCommand{},
			errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	orderID, err := kernel.OrderIDFromString(payload.OrderNumber)
	if err != nil {
		return commands.ApplyShipmentSnapshotCommand{}, err
	}

	eventTime, err := parseEventTime(payload.EventTime)
	if err != nil {
		return commands.ApplyShipmentSnapshotCommand{}, err
	}

	raw, err := rawPayload(body)
	if err != nil {
		return commands.ApplyShipmentSnapshotCommand{}, err
	}

	return commands.NewApplyShipmentSnapshotCommand(
		payload.ShipmentID, orderID, payload.TrackingNumber, payload.Status, eventTime, raw)
}

func rawPayload(body []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("body",
			fmt.Errorf("event body is not a JSON object: %w", err))
	}
	return raw, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
