package http

import (
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/generated/servers"

	"github.com/shopspring/decimal"
)

func addressFromAPI(api servers.Address) (kernel.Address, error) {
	return kernel.NewAddress(kernel.AddressParams{
		FullName:      api.FullName,
		AddressLine1:  api.AddressLine1,
		AddressLine2:  deref(api.AddressLine2),
		City:          api.City,
		StateProvince: deref(api.StateProvince),
		PostalCode:    api.PostalCode,
		Country:       api.Country,
		PhoneNumber:   deref(api.PhoneNumber),
		Email:         deref(api.Email),
	})
}

func lineParamsFromAPI(api servers.NewOrderLine) (order.OrderLineParams, error) {
	currency, err := kernel.NewCurrency(api.Currency)
	if err != nil {
		return order.OrderLineParams{}, err
	}

	unitPrice, err := kernel.NewMoneyFromFloat(api.UnitPrice, currency)
	if err != nil {
		return order.OrderLineParams{}, err
	}

	fulfillment, err := order.FulfillmentTypeFromString(api.FulfillmentType)
	if err != nil {
		return order.OrderLineParams{}, err
	}

	params := order.OrderLineParams{
		LineNumber:            api.LineNumber,
		ItemID:                api.ItemId,
		ItemName:              api.ItemName,
		ItemDescription:       deref(api.ItemDescription),
		Quantity:              api.Quantity,
		UnitPrice:             unitPrice,
		TaxRate:               decimal.NewFromFloat(api.TaxRate),
		FulfillmentType:       fulfillment,
		EstimatedShipDate:     api.EstimatedShipDate,
		EstimatedDeliveryDate: api.EstimatedDeliveryDate,
	}

	if api.DiscountAmount != nil {
		discount, err := kernel.NewMoneyFromFloat(*api.DiscountAmount, currency)
		if err != nil {
			return order.OrderLineParams{}, err
		}
		params.DiscountAmount = &discount
	}

	if api.ShippingAddress != nil {
		shipping, err := addressFromAPI(*api.ShippingAddress)
		if err != nil {
			return order.OrderLineParams{}, err
		}
		params.ShippingAddress = &shipping
	}

	return params, nil
}

func createParamsFromAPI(api servers.NewOrder) (commands.CreateOrderCommandParams, error) {
	channel, err := kernel.ChannelFromString(api.Channel)
	if err != nil {
		return commands.CreateOrderCommandParams{}, err
	}

	orderType, err := order.OrderTypeFromString(api.OrderType)
	if err != nil {
		return commands.CreateOrderCommandParams{}, err
	}

	billing, err := addressFromAPI(api.BillingAddress)
	if err != nil {
		return commands.CreateOrderCommandParams{}, err
	}

	params := commands.CreateOrderCommandParams{
		CustomerID:     api.CustomerId,
		OrderType:      orderType,
		Channel:        channel,
		BillingAddress: billing,
		Notes:          deref(api.Notes),
	}

	if api.ExternalOrderId != nil {
		externalID, err := kernel.UUIDFromString(*api.ExternalOrderId)
		if err != nil {
			return commands.CreateOrderCommandParams{}, err
		}
		params.ExternalOrderID = &externalID
	}

	lines := make([]order.OrderLineParams, 0, len(api.OrderLines))
	for _, apiLine := range api.OrderLines {
		lineParams, err := lineParamsFromAPI(apiLine)
		if err != nil {
			return commands.CreateOrderCommandParams{}, err
		}
		lines = append(lines, lineParams)
	}
	params.Lines = lines

	return params, nil
}

func addressToAPI(address kernel.Address) servers.Address {
	return servers.Address{
		FullName:      address.FullName(),
		AddressLine1:  address.AddressLine1(),
		AddressLine2:  optional(address.AddressLine2()),
		City:          address.City(),
		StateProvince: optional(address.StateProvince()),
		PostalCode:    address.PostalCode(),
		Country:       address.Country(),
		PhoneNumber:   optional(address.PhoneNumber()),
		Email:         optional(address.Email()),
	}
}

func orderToAPI(response queries.GetOrderQueryResponse) servers.Order {
	api := servers.Order{
		Number:         response.Number,
		CustomerId:     response.CustomerID,
		OrderType:      response.OrderType,
		Channel:        response.Channel,
		Status:         response.Status,
		Notes:          optional(response.Notes),
		BillingAddress: addressToAPI(response.BillingAddress),
		Totals: servers.OrderTotals{
			Subtotal: response.Subtotal.Amount().StringFixed(2),
			Tax:      response.Tax.Amount().StringFixed(2),
			Discount: response.Discount.Amount().StringFixed(2),
			Total:    response.TotalAmount.Amount().StringFixed(2),
			Currency: response.TotalAmount.Currency().String(),
		},
		CreatedAt: response.CreatedAt,
		UpdatedAt: response.UpdatedAt,
	}

	if response.ExternalOrderID != nil {
		api.ExternalOrderId = optional(response.ExternalOrderID.String())
	}

	api.OrderLines = make([]servers.OrderLine, len(response.Lines))
	for i, line := range response.Lines {
		api.OrderLines[i] = lineToAPI(line)
	}

	return api
}

func lineToAPI(line queries.GetOrderLineResponse) servers.OrderLine {
	api := servers.OrderLine{
		Id:                    line.ID.String(),
		LineNumber:            line.LineNumber,
		ItemId:                line.ItemID,
		ItemName:              line.ItemName,
		ItemDescription:       optional(line.ItemDescription),
		Quantity:              line.Quantity,
		UnitPrice:             line.UnitPrice.Amount().StringFixed(2),
		Currency:              line.UnitPrice.Currency().String(),
		TaxRate:               line.TaxRate.String(),
		FulfillmentType:       line.FulfillmentType,
		EstimatedShipDate:     line.EstimatedShipDate,
		EstimatedDeliveryDate: line.EstimatedDeliveryDate,
		Status:                line.Status,
		StatusCode:            line.StatusCode,
		StatusNotes:           optional(line.StatusNotes),
		StatusUpdatedAt:       line.StatusUpdatedAt,
	}

	if line.DiscountAmount != nil {
		api.DiscountAmount = optional(line.DiscountAmount.Amount().StringFixed(2))
	}
	if line.ShippingAddress != nil {
		shipping := addressToAPI(*line.ShippingAddress)
		api.ShippingAddress = &shipping
	}

	return api
}

func summaryToAPI(summary queries.OrderSummaryResponse) servers.OrderSummary {
	return servers.OrderSummary{
		Number:     summary.Number,
		CustomerId: summary.CustomerID,
		OrderType:  summary.OrderType,
		Channel:    summary.Channel,
		Status:     summary.Status,
		LineCount:  summary.LineCount,
		CreatedAt:  summary.CreatedAt,
		UpdatedAt:  summary.UpdatedAt,
	}
}

func releaseToAPI(release queries.ReleaseSnapshotResponse) servers.ReleaseSnapshot {
	api := servers.ReleaseSnapshot{
		ReleaseId:   release.ReleaseID,
		OrderNumber: release.OrderNumber,
		Status:      release.Status,
		EventTime:   release.EventTime,
		CreatedAt:   release.CreatedAt,
		UpdatedAt:   release.UpdatedAt,
	}
	if release.Payload != nil {
		api.Payload = &release.Payload
	}
	return api
}

func shipmentToAPI(shipment queries.ShipmentSnapshotResponse) servers.ShipmentSnapshot {
	api := servers.ShipmentSnapshot{
		ShipmentId:     shipment.ShipmentID,
		OrderNumber:    shipment.OrderNumber,
		TrackingNumber: optional(shipment.TrackingNumber),
		Status:         shipment.Status,
		EventTime:      shipment.EventTime,
		CreatedAt:      shipment.CreatedAt,
		UpdatedAt:      shipment.UpdatedAt,
	}
	if shipment.Payload != nil {
		api.Payload = &shipment.Payload
	}
	return api
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// optional maps the empty string to an absent JSON field.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
