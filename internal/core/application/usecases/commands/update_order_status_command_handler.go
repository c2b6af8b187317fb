package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// UpdateOrderStatusCommandHandler dispatches a requested target status to
// the matching aggregate transition and persists the result. Each
// successful transition fires the corresponding lifecycle notification
// after commit.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewUpdateOrderStatusCommandHandler creates a handler for status
// transition operations.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory, notifier ports.Notifier,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle loads the order, applies the transition matching the requested
// target, and persists the updated aggregate. Requesting Created on an
// order still in Created returns without change; any other disallowed
// move fails with an InvalidStateTransition error before persistence.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	if cmd.Target() == order.StatusCreated && aggregate.Status() == order.StatusCreated {
		return uow.Commit(ctx)
	}

	updated, notify, err := h.transition(aggregate, cmd.Target())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, updated); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notify(ctx, updated)

	return nil
}

func (h *UpdateOrderStatusCommandHandler) transition(
	aggregate *order.Order, target order.Status,
) (*order.Order, func(context.Context, *order.Order), error) {
	switch target {
	case order.StatusInRelease:
		updated, err := aggregate.InRelease()
		return updated, h.notifier.NotifyInRelease, err
	case order.StatusReleased:
		updated, err := aggregate.Release()
		return updated, h.notifier.NotifyReleased, err
	case order.StatusInShipment:
		updated, err := aggregate.InShipment()
		return updated, h.notifier.NotifyInShipment, err
	case order.StatusShipped:
		updated, err := aggregate.Ship()
		return updated, h.notifier.NotifyShipped, err
	case order.StatusDelivered:
		updated, err := aggregate.Deliver()
		return updated, h.notifier.NotifyDelivered, err
	case order.StatusCancelled:
		updated, err := aggregate.Cancel()
		return updated, h.notifier.NotifyCancelled, err
	default:
		// Created and Unknown have no transition; surface the table error.
		_, err := aggregate.Status().TransitionTo(target)
		return nil, nil, err
	}
}
