package commands

import (
	"context"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation:
// duplicate detection by external order ID, order number allocation,
// aggregate construction, and transactional persistence. The created
// notification fires only after the transaction commits.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	generator  ports.OrderNumberGenerator
	notifier   ports.Notifier
}

// NewCreateOrderCommandHandler creates a handler for order creation
// operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory, generator ports.OrderNumberGenerator, notifier ports.Notifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		generator:  generator,
		notifier:   notifier,
	}
}

// Handle processes the order creation command and returns the allocated
// business order ID. A second creation carrying an already-known external
// order ID fails with a Conflict error before anything is inserted.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.OrderID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.OrderID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.OrderID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	if externalID := cmd.ExternalOrderID(); externalID != nil {
		exists, err := orderRepo.ExistsByExternalOrderID(ctx, *externalID)
		if err != nil {
			return kernel.OrderID{}, err
		}
		if exists {
			return kernel.OrderID{}, errs.NewConflictErrorWithCause("externalOrderId", externalID.String(),
				fmt.Errorf("an order with this external order id was already accepted"))
		}
	}

	orderID, err := h.generator.Next(cmd.Channel())
	if err != nil {
		return kernel.OrderID{}, err
	}

	aggregate, err := order.NewOrder(order.NewOrderParams{
		ID:              orderID,
		ExternalOrderID: cmd.ExternalOrderID(),
		CustomerID:      cmd.CustomerID(),
		OrderType:       cmd.OrderType(),
		Channel:         cmd.Channel(),
		Lines:           cmd.Lines(),
		BillingAddress:  cmd.BillingAddress(),
		Notes:           cmd.Notes(),
	})
	if err != nil {
		return kernel.OrderID{}, err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return kernel.OrderID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.OrderID{}, err
	}

	h.notifier.NotifyCreated(ctx, aggregate)

	return orderID, nil
}
