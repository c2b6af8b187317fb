package commands

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/snapshot"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// ApplyReleaseSnapshotCommandHandler reconciles upstream release events
// into the snapshot store: insert on first sight of a release ID, replace
// on redelivery. The order's own state machine is never touched here.
type ApplyReleaseSnapshotCommandHandler struct {
	uowFactory ReleaseSnapshotUoWFactory
}

// NewApplyReleaseSnapshotCommandHandler creates a handler for release
// snapshot reconciliation.
func NewApplyReleaseSnapshotCommandHandler(uowFactory ReleaseSnapshotUoWFactory) ApplyReleaseSnapshotCommandHandler {
	return ApplyReleaseSnapshotCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle upserts the release snapshot keyed by its business ID. Redelivery
// of the same event is idempotent: the stored record ends up identical
// after any number of applications.
func (h *ApplyReleaseSnapshotCommandHandler) Handle(ctx context.Context, cmd ApplyReleaseSnapshotCommand) error {
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

	repo := uow.ReleaseSnapshotRepository()

	record, err := h.reconcile(ctx, repo, cmd)
	if err != nil {
		return err
	}

	if err = repo.Upsert(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *ApplyReleaseSnapshotCommandHandler) reconcile(
	ctx context.Context, repo ports.ReleaseSnapshotRepository, cmd ApplyReleaseSnapshotCommand,
) (snapshot.ReleaseSnapshot, error) {
	existing, err := repo.GetByReleaseID(ctx, cmd.ReleaseID())
	switch {
	case err == nil:
		return existing.Overwrite(cmd.Status(), cmd.EventTime(), cmd.Payload())
	case errors.Is(err, errs.ErrObjectNotFound):
		return snapshot.NewReleaseSnapshot(snapshot.ReleaseSnapshotParams{
			ReleaseID: cmd.ReleaseID(),
			OrderID:   cmd.OrderID(),
			Status:    cmd.Status(),
			EventTime: cmd.EventTime(),
			Payload:   cmd.Payload(),
		})
	default:
		return snapshot.ReleaseSnapshot{}, err
	}
}
