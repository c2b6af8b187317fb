package queries

import (
	"context"
	"database/sql"
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order and its lines from the database.
// Monetary totals are recomputed from the lines so the read model can
// never drift from the stored unit prices.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns an object-not-found error when no
// order with the requested number exists.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.scanOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Lines, err = h.scanLines(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err = h.computeTotals(&resp); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) scanOrder(
	ctx context.Context,
	orderID kernel.OrderID,
) (GetOrderQueryResponse, error) {
	var resp GetOrderQueryResponse
	var externalOrderID sql.NullString
	var billing addressColumns

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			number,
			external_order_id,
			customer_id,
			order_type,
			channel,
			status,
			notes,
			billing_full_name,
			billing_address_line1,
			billing_address_line2,
			billing_city,
			billing_state_province,
			billing_postal_code,
			billing_country,
			billing_phone_number,
			billing_email,
			created_at,
			updated_at
		FROM orders
		WHERE number = ?
	`, orderID.String()).Row()

	err := row.Scan(
		&resp.Number,
		&externalOrderID,
		&resp.CustomerID,
		&resp.OrderType,
		&resp.Channel,
		&resp.Status,
		&resp.Notes,
		&billing.fullName,
		&billing.addressLine1,
		&billing.addressLine2,
		&billing.city,
		&billing.stateProvince,
		&billing.postalCode,
		&billing.country,
		&billing.phoneNumber,
		&billing.email,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", orderID.String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if externalOrderID.Valid {
		id, idErr := kernel.UUIDFromString(externalOrderID.String)
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		resp.ExternalOrderID = &id
	}

	address, err := billing.toAddress()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.BillingAddress = address

	return resp, nil
}

func (h GetOrderQueryHandler) scanLines(
	ctx context.Context,
	orderID kernel.OrderID,
) ([]GetOrderLineResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			line_number,
			item_id,
			item_name,
			item_description,
			quantity,
			unit_price,
			currency,
			tax_rate,
			discount_amount,
			fulfillment_type,
			shipping_full_name,
			shipping_address_line1,
			shipping_address_line2,
			shipping_city,
			shipping_state_province,
			shipping_postal_code,
			shipping_country,
			shipping_phone_number,
			shipping_email,
			estimated_ship_date,
			estimated_delivery_date,
			status,
			status_notes,
			status_updated_at
		FROM order_lines
		WHERE order_number = ?
		ORDER BY line_number
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]GetOrderLineResponse, 0)

	for rows.Next() {
		var line GetOrderLineResponse
		var id uuid.UUID
		var unitPrice decimal.Decimal
		var currencyCode string
		var discountAmount decimal.NullDecimal
		var shipping nullableAddressColumns
		var shipDate, deliveryDate sql.NullTime

		err = rows.Scan(
			&id,
			&line.LineNumber,
			&line.ItemID,
			&line.ItemName,
			&line.ItemDescription,
			&line.Quantity,
			&unitPrice,
			&currencyCode,
			&line.TaxRate,
			&discountAmount,
			&line.FulfillmentType,
			&shipping.fullName,
			&shipping.addressLine1,
			&shipping.addressLine2,
			&shipping.city,
			&shipping.stateProvince,
			&shipping.postalCode,
			&shipping.country,
			&shipping.phoneNumber,
			&shipping.email,
			&shipDate,
			&deliveryDate,
			&line.Status,
			&line.StatusNotes,
			&line.StatusUpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		line.ID, err = kernel.UUIDFromString(id.String())
		if err != nil {
			return nil, err
		}

		currency, currErr := kernel.NewCurrency(currencyCode)
		if currErr != nil {
			return nil, currErr
		}
		line.UnitPrice, err = kernel.NewMoney(unitPrice, currency)
		if err != nil {
			return nil, err
		}
		if discountAmount.Valid {
			discount, moneyErr := kernel.NewMoney(discountAmount.Decimal, currency)
			if moneyErr != nil {
				return nil, moneyErr
			}
			line.DiscountAmount = &discount
		}

		line.ShippingAddress, err = shipping.toAddress()
		if err != nil {
			return nil, err
		}
		if shipDate.Valid {
			value := shipDate.Time
			line.EstimatedShipDate = &value
		}
		if deliveryDate.Valid {
			value := deliveryDate.Time
			line.EstimatedDeliveryDate = &value
		}

		status, statusErr := order.LineStatusFromString(line.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		line.StatusCode = status.Code()

		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// computeTotals folds per-line subtotal, tax and discount into the order
// totals using the same half-up rounding the write side applies.
func (h GetOrderQueryHandler) computeTotals(resp *GetOrderQueryResponse) error {
	if len(resp.Lines) == 0 {
		return nil
	}

	currency := resp.Lines[0].UnitPrice.Currency()
	zero, err := kernel.NewMoney(decimal.Zero, currency)
	if err != nil {
		return err
	}
	subtotal, tax, discount := zero, zero, zero

	for _, line := range resp.Lines {
		lineSubtotal, err := line.UnitPrice.MultiplyInt(line.Quantity)
		if err != nil {
			return err
		}
		lineTax, err := lineSubtotal.Multiply(line.TaxRate)
		if err != nil {
			return err
		}
		lineDiscount := zero
		if line.DiscountAmount != nil {
			lineDiscount = *line.DiscountAmount
		}

		if subtotal, err = subtotal.Add(lineSubtotal); err != nil {
			return err
		}
		if tax, err = tax.Add(lineTax); err != nil {
			return err
		}
		if discount, err = discount.Add(lineDiscount); err != nil {
			return err
		}
	}

	resp.Subtotal = subtotal
	resp.Tax = tax
	resp.Discount = discount

	withTax, err := subtotal.Add(tax)
	if err != nil {
		return err
	}
	resp.TotalAmount, err = withTax.Subtract(discount)
	return err
}
