package commands

import (
	"context"
)

// UpdateLineStatusCommandHandler transitions one line of an order through
// the line-level state machine and persists the whole aggregate.
type UpdateLineStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateLineStatusCommandHandler creates a handler for line status
// updates.
func NewUpdateLineStatusCommandHandler(uowFactory OrderUoWFactory) UpdateLineStatusCommandHandler {
	return UpdateLineStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, locates the line, applies the line state machine,
// and persists the updated aggregate. An unknown line fails with a
// not-found error; a forbidden move fails with an InvalidStateTransition
// error, in both cases before anything is persisted.
func (h *UpdateLineStatusCommandHandler) Handle(ctx context.Context, cmd UpdateLineStatusCommand) error {
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

	updated, err := aggregate.UpdateLineStatus(cmd.LineID(), cmd.NewStatus(), cmd.Notes())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, updated); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
