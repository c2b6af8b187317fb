package commands

import (
	"context"
)

// UpdateOrderCommandHandler applies partial updates to an order's notes and
// billing address.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderCommandHandler creates a handler for partial order updates.
func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order and applies only the fields the command carries.
// A billing address change on a terminal order fails and nothing is
// persisted.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if notes := cmd.Notes(); notes != nil {
		if aggregate, err = aggregate.UpdateNotes(*notes); err != nil {
			return err
		}
	}

	if address := cmd.BillingAddress(); address != nil {
		if aggregate, err = aggregate.UpdateBillingAddress(*address); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
