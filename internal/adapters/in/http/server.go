// Package http exposes the order lifecycle over a REST API. The Server
// implements the generated ServerInterface and translates between wire
// types and application commands/queries; domain errors map to stable
// HTTP statuses in errors.go.
package http

import (
	"net/http"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderHandler       commands.UpdateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	updateLineStatusHandler  commands.UpdateLineStatusCommandHandler
	deleteOrderHandler       commands.DeleteOrderCommandHandler

	// Query handlers
	getOrderHandler           queries.GetOrderQueryHandler
	listOrdersHandler         queries.ListOrdersQueryHandler
	getOrderSnapshotsHandler  queries.GetOrderSnapshotsQueryHandler
	getShipmentByTrackHandler queries.GetShipmentByTrackingQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	updateLineStatusHandler commands.UpdateLineStatusCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getOrderSnapshotsHandler queries.GetOrderSnapshotsQueryHandler,
	getShipmentByTrackHandler queries.GetShipmentByTrackingQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		updateOrderHandler:        updateOrderHandler,
		updateOrderStatusHandler:  updateOrderStatusHandler,
		updateLineStatusHandler:   updateLineStatusHandler,
		deleteOrderHandler:        deleteOrderHandler,
		getOrderHandler:           getOrderHandler,
		listOrdersHandler:         listOrdersHandler,
		getOrderSnapshotsHandler:  getOrderSnapshotsHandler,
		getShipmentByTrackHandler: getShipmentByTrackHandler,
	}
}

var _ servers.ServerInterface = (*Server)(nil)

// CreateOrder handles POST /api/v1/orders - accepts a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder servers.NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	params, err := createParamsFromAPI(newOrder)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(params)
	if err != nil {
		return errorResponse(ctx, err)
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.CreatedOrder{
		OrderNumber: orderID.String(),
	})
}

// GetOrders handles GET /api/v1/orders - lists orders with optional
// customer filter and pagination.
func (s *Server) GetOrders(ctx echo.Context, params servers.GetOrdersParams) error {
	var page, size int
	if params.Page != nil {
		page = *params.Page
	}
	if params.Size != nil {
		size = *params.Size
	}

	query, err := queries.NewListOrdersQuery(deref(params.CustomerId), page, size)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := servers.OrderList{
		Orders: make([]servers.OrderSummary, len(result.Orders)),
		Total:  result.Total,
		Page:   result.Page,
		Size:   result.Size,
	}
	for i, summary := range result.Orders {
		response.Orders[i] = summaryToAPI(summary)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderNumber} - retrieves one order
// with its lines and derived totals.
func (s *Server) GetOrder(ctx echo.Context, orderNumber string) error {
	orderID, err := kernel.OrderIDFromString(orderNumber)
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToAPI(result))
}

// UpdateOrder handles PATCH /api/v1/orders/{orderNumber} - updates notes
// and/or billing address.
func (s *Server) UpdateOrder(ctx echo.Context, orderNumber string) error {
	orderID, err := kernel.OrderIDFromString(orderNumber)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var update servers.OrderUpdate
	if err := ctx.Bind(&update); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var billingAddress *kernel.Address
	if update.BillingAddress != nil {
		address, addrErr := addressFromAPI(*update.BillingAddress)
		if addrErr != nil {
			return errorResponse(ctx, addrErr)
		}
		billingAddress = &address
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, update.Notes, billingAddress)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/{orderNumber}/status -
// transitions an order to a new lifecycle status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderNumber string) error {
	orderID, err := kernel.OrderIDFromString(orderNumber)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var update servers.OrderStatusUpdate
	if err := ctx.Bind(&update); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(update.Status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateLineStatus handles PATCH /api/v1/orders/{orderNumber}/lines/{lineId}/status -
// transitions one order line through its own state machine.
func (s *Server) UpdateLineStatus(ctx echo.Context, orderNumber string, lineId string) error {
	orderID, err := kernel.OrderIDFromString(orderNumber)
	if err != nil {
		return errorResponse(ctx, err)
	}

	lineID, err := kernel.UUIDFromString(lineId)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var update servers.LineStatusUpdate
	if err := ctx.Bind(&update); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.LineStatusFromString(update.Status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewUpdateLineStatusCommand(orderID, lineID, target, deref(update.Notes))
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.updateLineStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/{orderNumber} - cancels an
// order. The record is kept with status CANCELLED.
func (s *Server) DeleteOrder(ctx echo.Context, orderNumber string) error {
	orderID, err := kernel.OrderIDFromString(orderNumber)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderSnapshots handles GET /api/v1/orders/{orderNumber}/snapshots -
// returns the release and shipment events mirrored for an order.
func (s *Server) GetOrderSnapshots(ctx echo.Context, orderNumber string) error {
	orderID, err := kernel.OrderIDFromString(orderNumber)
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderSnapshotsQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.getOrderSnapshotsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := servers.OrderSnapshots{
		Releases:  make([]servers.ReleaseSnapshot, len(result.Releases)),
		Shipments: make([]servers.ShipmentSnapshot, len(result.Shipments)),
	}
	for i, release := range result.Releases {
		response.Releases[i] = releaseToAPI(release)
	}
	for i, shipment := range result.Shipments {
		response.Shipments[i] = shipmentToAPI(shipment)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetShipmentByTracking handles GET /api/v1/shipments/{trackingNumber} -
// returns the latest shipment snapshot for a tracking number.
func (s *Server) GetShipmentByTracking(ctx echo.Context, trackingNumber string) error {
	query, err := queries.NewGetShipmentByTrackingQuery(trackingNumber)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.getShipmentByTrackHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentToAPI(result))
}
