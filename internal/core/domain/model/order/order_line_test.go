package order

import (
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, value float64, currency string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromFloat(value, kernel.Currency(currency))
	require.NoError(t, err)
	return m
}

func testAddress(t *testing.T) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(kernel.AddressParams{
		FullName:     "Jordan Smith",
		AddressLine1: "500 Main St",
		City:         "Columbus",
		PostalCode:   "43004",
		Country:      "US",
	})
	require.NoError(t, err)
	return a
}

func validLineParams(t *testing.T) OrderLineParams {
	t.Helper()
	address := testAddress(t)
	return OrderLineParams{
		LineNumber:      1,
		ItemID:          1234567890,
		ItemName:        "Wireless Mouse",
		Quantity:        2,
		UnitPrice:       mustMoney(t, 29.99, "USD"),
		TaxRate:         decimal.NewFromFloat(0.08),
		FulfillmentType: ShipToHome,
		ShippingAddress: &address,
	}
}

func Test_NewOrderLine(t *testing.T) {
	t.Run("should create a valid line with generated identity", func(t *testing.T) {
		line, err := NewOrderLine(validLineParams(t))

		require.NoError(t, err)
		require.NoError(t, line.Validate())
		require.NoError(t, line.ID().Validate())
		assert.Equal(t, LineCreated, line.LineStatus().Status())
		assert.Equal(t, 2, line.LineStatus().Quantity())
	})

	t.Run("should reject a non-positive line number", func(t *testing.T) {
		params := validLineParams(t)
		params.LineNumber = 0

		_, err := NewOrderLine(params)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject an item id outside the 10-digit range", func(t *testing.T) {
		for _, itemID := range []int64{0, 999999999, 10000000000} {
			params := validLineParams(t)
			params.ItemID = itemID

			_, err := NewOrderLine(params)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("should reject an empty item name", func(t *testing.T) {
		params := validLineParams(t)
		params.ItemName = ""

		_, err := NewOrderLine(params)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a non-positive quantity", func(t *testing.T) {
		params := validLineParams(t)
		params.Quantity = -1

		_, err := NewOrderLine(params)

		require.Error(t, err)
	})

	t.Run("should reject a zero unit price", func(t *testing.T) {
		params := validLineParams(t)
		params.UnitPrice = mustMoney(t, 0, "USD")

		_, err := NewOrderLine(params)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject a negative tax rate", func(t *testing.T) {
		params := validLineParams(t)
		params.TaxRate = decimal.NewFromFloat(-0.05)

		_, err := NewOrderLine(params)

		require.Error(t, err)
	})

	t.Run("should reject a discount in a different currency", func(t *testing.T) {
		discount := mustMoney(t, 5, "EUR")
		params := validLineParams(t)
		params.DiscountAmount = &discount

		_, err := NewOrderLine(params)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require a shipping address for ship-to-home", func(t *testing.T) {
		params := validLineParams(t)
		params.ShippingAddress = nil

		_, err := NewOrderLine(params)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should require a shipping address for ship-to-store", func(t *testing.T) {
		params := validLineParams(t)
		params.FulfillmentType = ShipToStore
		params.ShippingAddress = nil

		_, err := NewOrderLine(params)

		require.Error(t, err)
	})

	t.Run("should allow a pickup line without a shipping address", func(t *testing.T) {
		params := validLineParams(t)
		params.FulfillmentType = BuyOnlinePickupInStore
		params.ShippingAddress = nil

		line, err := NewOrderLine(params)

		require.NoError(t, err)
		assert.Nil(t, line.ShippingAddress())
	})

	t.Run("should reject a delivery date before the ship date", func(t *testing.T) {
		ship := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		delivery := ship.AddDate(0, 0, -1)
		params := validLineParams(t)
		params.EstimatedShipDate = &ship
		params.EstimatedDeliveryDate = &delivery

		_, err := NewOrderLine(params)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func Test_OrderLine_MoneyCalculations(t *testing.T) {
	t.Run("should compute subtotal tax and total", func(t *testing.T) {
		// 2 x 29.99 = 59.98; 8% tax on 59.98 = 4.7984 -> 4.80; total 64.78.
		line, err := NewOrderLine(validLineParams(t))
		require.NoError(t, err)

		subtotal, err := line.Subtotal()
		require.NoError(t, err)
		assert.True(t, subtotal.IsEqual(mustMoney(t, 59.98, "USD")), subtotal.String())

		tax, err := line.Tax()
		require.NoError(t, err)
		assert.True(t, tax.IsEqual(mustMoney(t, 4.80, "USD")), tax.String())

		total, err := line.Total()
		require.NoError(t, err)
		assert.True(t, total.IsEqual(mustMoney(t, 64.78, "USD")), total.String())
	})

	t.Run("should subtract the discount from the total", func(t *testing.T) {
		// 3 x 10.00 = 30.00; 10% tax = 3.00; discount 10.00; total 23.00.
		discount := mustMoney(t, 10.00, "USD")
		params := validLineParams(t)
		params.Quantity = 3
		params.UnitPrice = mustMoney(t, 10.00, "USD")
		params.TaxRate = decimal.NewFromFloat(0.10)
		params.DiscountAmount = &discount

		line, err := NewOrderLine(params)
		require.NoError(t, err)

		total, err := line.Total()
		require.NoError(t, err)
		assert.True(t, total.IsEqual(mustMoney(t, 23.00, "USD")), total.String())
	})

	t.Run("should treat a missing discount as zero", func(t *testing.T) {
		line, err := NewOrderLine(validLineParams(t))
		require.NoError(t, err)

		discount, err := line.Discount()
		require.NoError(t, err)
		assert.True(t, discount.IsZero())
		assert.Equal(t, kernel.Currency("USD"), discount.Currency())
	})
}

func Test_OrderLine_Validate(t *testing.T) {
	t.Run("should fail on a zero-value line", func(t *testing.T) {
		var line OrderLine

		err := line.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOrderLineIsNotConstructed)
	})
}

func Test_RestoreOrderLine(t *testing.T) {
	t.Run("should rehydrate with existing identity and status", func(t *testing.T) {
		id := kernel.NewUUID()
		status, err := RestoreLineStatus(2, LineReleased, "sent to warehouse", time.Now().UTC())
		require.NoError(t, err)

		line, err := RestoreOrderLine(id, validLineParams(t), status)

		require.NoError(t, err)
		assert.True(t, line.ID().IsEqual(id))
		assert.Equal(t, LineReleased, line.LineStatus().Status())
	})

	t.Run("should reject a status quantity that differs from the line", func(t *testing.T) {
		status, err := RestoreLineStatus(5, LineCreated, "", time.Now().UTC())
		require.NoError(t, err)

		_, err = RestoreOrderLine(kernel.NewUUID(), validLineParams(t), status)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
