package commands

import (
	"context"

	"orders/internal/core/ports"
)

// DeleteOrderCommandHandler soft-deletes an order by transitioning it to
// Cancelled. The physical record is never removed here.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewDeleteOrderCommandHandler creates a handler for order soft deletion.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle loads the order and cancels it. Orders past the cancellable
// stages fail with an InvalidStateTransition error. The cancelled
// notification fires after commit.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
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

	cancelled, err := aggregate.Cancel()
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, cancelled); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyCancelled(ctx, cancelled)

	return nil
}
