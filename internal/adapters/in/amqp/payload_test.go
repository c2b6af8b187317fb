package amqp

import (
	"errors"
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderCreatedBody = `{
	"external_order_id": "550e8400-e29b-41d4-a716-446655440000",
	"customer_id": "CUST-00042",
	"order_type": "STANDARD",
	"channel": "MOBILE",
	"order_lines": [
		{
			"line_number": 1,
			"item_id": 1000000012,
			"item_name": "Apple Watch Series 9",
			"item_description": "Smartwatch with health tracking",
			"quantity": 2,
			"unit_price": 399.00,
			"currency": "USD",
			"tax_rate": 0.08,
			"discount_amount": 39.90,
			"fulfillment_type": "STH",
			"estimated_ship_date": "2026-03-02",
			"estimated_delivery_date": "2026-03-05",
			"shipping_address": {
				"full_name": "Jordan Smith",
				"address_line1": "500 Main Street",
				"address_line2": null,
				"city": "Columbus",
				"state_province": "OH",
				"postal_code": "43004",
				"country": "USA",
				"phone_number": "+1-614-555-0199",
				"email": "jordan.smith@example.com"
			}
		},
		{
			"line_number": 2,
			"item_id": 1000000003,
			"item_name": "USB-C Cable",
			"quantity": 1,
			"unit_price": 12.50,
			"currency": "USD",
			"tax_rate": 0.08,
			"discount_amount": null,
			"fulfillment_type": "BOPS"
		}
	],
	"billing_address": {
		"full_name": "Jordan Smith",
		"address_line1": "500 Main Street",
		"city": "Columbus",
		"state_province": "OH",
		"postal_code": "43004",
		"country": "USA"
	},
	"notes": "Order #42 - Generated for testing",
	"timestamp": "2026-03-01T09:15:00"
}`

func Test_DecodeOrderCreated(t *testing.T) {
	params, err := decodeOrderCreated([]byte(orderCreatedBody))
	require.NoError(t, err)

	assert.Equal(t, "CUST-00042", params.CustomerID)
	assert.Equal(t, order.OrderTypeStandard, params.OrderType)
	assert.Equal(t, kernel.ChannelMobile, params.Channel)
	assert.Equal(t, "Order #42 - Generated for testing", params.Notes)
	require.NotNil(t, params.ExternalOrderID)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", params.ExternalOrderID.String())
	assert.Equal(t, "Jordan Smith", params.BillingAddress.FullName())

	require.Len(t, params.Lines, 2)

	first := params.Lines[0]
	assert.Equal(t, int64(1000000012), first.ItemID)
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, "399.00 USD", first.UnitPrice.String())
	require.NotNil(t, first.DiscountAmount)
	assert.Equal(t, "39.90 USD", first.DiscountAmount.String())
	assert.Equal(t, order.ShipToHome, first.FulfillmentType)
	require.NotNil(t, first.EstimatedShipDate)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), *first.EstimatedShipDate)
	require.NotNil(t, first.ShippingAddress)
	assert.Equal(t, "Columbus", first.ShippingAddress.City())

	second := params.Lines[1]
	assert.Equal(t, order.BuyOnlinePickupInStore, second.FulfillmentType)
	assert.Nil(t, second.DiscountAmount)
	assert.Nil(t, second.EstimatedShipDate)
	assert.Nil(t, second.ShippingAddress)
}

func Test_DecodeOrderCreated_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{broken`},
		{"unknown channel", `{"customer_id":"C","order_type":"STANDARD","channel":"FAX",
			"order_lines":[],"billing_address":{}}`},
		{"unknown order type", `{"customer_id":"C","order_type":"WHOLESALE","channel":"WEB",
			"order_lines":[],"billing_address":{}}`},
		{"bad external id", `{"external_order_id":"nope","customer_id":"C",
			"order_type":"STANDARD","channel":"WEB","order_lines":[],"billing_address":{
			"full_name":"A","address_line1":"B","city":"C","postal_code":"D","country":"E"}}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := decodeOrderCreated([]byte(test.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrValueIsInvalid) ||
				errors.Is(err, errs.ErrValueIsRequired))
		})
	}
}

func Test_DecodeReleaseUpdated(t *testing.T) {
	body := `{
		"release_id": "REL-2026-0000123",
		"order_number": "20-20260301-0000042",
		"status": "RELEASED",
		"event_time": "2026-03-02T08:30:00",
		"warehouse": "CMH1"
	}`

	cmd, err := decodeReleaseUpdated([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, "REL-2026-0000123", cmd.ReleaseID())
	assert.Equal(t, "20-20260301-0000042", cmd.OrderID().String())
	assert.Equal(t, "RELEASED", cmd.Status())
	assert.Equal(t, time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC), cmd.EventTime())

	// The full event body survives as the opaque payload.
	payload := cmd.Payload()
	assert.Equal(t, "CMH1", payload["warehouse"])
	assert.Equal(t, "REL-2026-0000123", payload["release_id"])
}

func Test_DecodeReleaseUpdated_BadOrderNumber(t *testing.T) {
	body := `{
		"release_id": "REL-1",
		"order_number": "not-an-order",
		"status": "RELEASED",
		"event_time": "2026-03-02T08:30:00"
	}`

	_, err := decodeReleaseUpdated([]byte(body))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func Test_DecodeShipmentUpdated(t *testing.T) {
	body := `{
		"shipment_id": "SHP-2026-0000077",
		"order_number": "10-20260301-0000042",
		"tracking_number": "1Z999AA10123456784",
		"status": "IN_TRANSIT",
		"event_time": "2026-03-03T14:00:00Z"
	}`

	cmd, err := decodeShipmentUpdated([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, "SHP-2026-0000077", cmd.ShipmentID())
	assert.Equal(t, "1Z999AA10123456784", cmd.TrackingNumber())
	assert.Equal(t, "IN_TRANSIT", cmd.Status())
	assert.Equal(t, time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC), cmd.EventTime().UTC())
}

func Test_Requeue(t *testing.T) {
	t.Run("domain rejections are final", func(t *testing.T) {
		assert.False(t, requeue(errs.NewValueIsInvalidError("channel")))
		assert.False(t, requeue(errs.NewValueIsRequiredError("customerId")))
		assert.False(t, requeue(errs.NewConflictError("externalOrderId", "abc")))
		assert.False(t, requeue(errs.NewObjectNotFoundError("orderId", "x")))
	})

	t.Run("infrastructure failures are retried", func(t *testing.T) {
		assert.True(t, requeue(errors.New("connection refused")))
		assert.True(t, requeue(errs.NewProcessingError("order.created", errors.New("db down"))))
	})
}
