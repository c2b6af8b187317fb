package commands

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/snapshot"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// ApplyShipmentSnapshotCommandHandler reconciles upstream shipment events
// into the snapshot store with the same insert-or-replace semantics as the
// release handler.
type ApplyShipmentSnapshotCommandHandler struct {
	uowFactory ShipmentSnapshotUoWFactory
}

// NewApplyShipmentSnapshotCommandHandler creates a handler for shipment
// snapshot reconciliation.
func NewApplyShipmentSnapshotCommandHandler(
	uowFactory ShipmentSnapshotUoWFactory,
) ApplyShipmentSnapshotCommandHandler {
	return ApplyShipmentSnapshotCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle upserts the shipment snapshot keyed by its business ID.
func (h *ApplyShipmentSnapshotCommandHandler) Handle(ctx context.Context, cmd ApplyShipmentSnapshotCommand) error {
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

	repo := uow.ShipmentSnapshotRepository()

	record, err := h.reconcile(ctx, repo, cmd)
	if err != nil {
		return err
	}

	if err = repo.Upsert(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *ApplyShipmentSnapshotCommandHandler) reconcile(
	ctx context.Context, repo ports.ShipmentSnapshotRepository, cmd ApplyShipmentSnapshotCommand,
) (snapshot.ShipmentSnapshot, error) {
	existing, err := repo.GetByShipmentID(ctx, cmd.ShipmentID())
	switch {
	case err == nil:
		return existing.Overwrite(cmd.TrackingNumber(), cmd.Status(), cmd.EventTime(), cmd.Payload())
	case errors.Is(err, errs.ErrObjectNotFound):
		return snapshot.NewShipmentSnapshot(snapshot.ShipmentSnapshotParams{
			ShipmentID:     cmd.ShipmentID(),
			OrderID:        cmd.OrderID(),
			TrackingNumber: cmd.TrackingNumber(),
			Status:         cmd.Status(),
			EventTime:      cmd.EventTime(),
			Payload:        cmd.Payload(),
		})
	default:
		return snapshot.ShipmentSnapshot{}, err
	}
}
