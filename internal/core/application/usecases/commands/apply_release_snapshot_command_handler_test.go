package commands_test

import (
	"testing"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/snapshot"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func releaseCommand(t *testing.T) commands.ApplyReleaseSnapshotCommand {
	t.Helper()
	cmd, err := commands.NewApplyReleaseSnapshotCommand(
		"REL-2026-000981", testOrderID(t), "RELEASED",
		time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC),
		map[string]any{"warehouse": "CMH-1"},
	)
	require.NoError(t, err)
	return cmd
}

func TestApplyReleaseSnapshotCommandHandler_Handle_InsertsNewRelease(t *testing.T) {
	ctx := t.Context()
	cmd := releaseCommand(t)

	repo := new(MockReleaseSnapshotRepository)
	uow := new(MockReleaseSnapshotUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReleaseSnapshotRepository").Return(repo).Once(),
		repo.On("GetByReleaseID", mock.Anything, cmd.ReleaseID()).
			Return(snapshot.ReleaseSnapshot{}, errs.NewObjectNotFoundError("releaseId", cmd.ReleaseID())).Once(),
		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(s snapshot.ReleaseSnapshot) bool {
			return s.ReleaseID() == cmd.ReleaseID() && s.Status() == "RELEASED"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReleaseSnapshotUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyReleaseSnapshotCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestApplyReleaseSnapshotCommandHandler_Handle_OverwritesExistingRelease(t *testing.T) {
	ctx := t.Context()
	cmd := releaseCommand(t)

	existing, err := snapshot.NewReleaseSnapshot(snapshot.ReleaseSnapshotParams{
		ReleaseID: cmd.ReleaseID(),
		OrderID:   cmd.OrderID(),
		Status:    "PENDING",
		EventTime: cmd.EventTime().Add(-time.Hour),
		Payload:   map[string]any{"warehouse": "CMH-0"},
	})
	require.NoError(t, err)

	repo := new(MockReleaseSnapshotRepository)
	uow := new(MockReleaseSnapshotUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReleaseSnapshotRepository").Return(repo).Once(),
		repo.On("GetByReleaseID", mock.Anything, cmd.ReleaseID()).Return(existing, nil).Once(),
		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(s snapshot.ReleaseSnapshot) bool {
			return s.ReleaseID() == cmd.ReleaseID() &&
				s.Status() == "RELEASED" &&
				s.CreatedAt().Equal(existing.CreatedAt()) &&
				s.Payload()["warehouse"] == "CMH-1"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReleaseSnapshotUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyReleaseSnapshotCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestApplyReleaseSnapshotCommandHandler_Handle_SecondDeliveryIsIdempotent(t *testing.T) {
	ctx := t.Context()
	cmd := releaseCommand(t)

	// The store already holds exactly what this event carries; the upserted
	// record must come out unchanged in its indexed fields and payload.
	existing, err := snapshot.NewReleaseSnapshot(snapshot.ReleaseSnapshotParams{
		ReleaseID: cmd.ReleaseID(),
		OrderID:   cmd.OrderID(),
		Status:    cmd.Status(),
		EventTime: cmd.EventTime(),
		Payload:   cmd.Payload(),
	})
	require.NoError(t, err)

	repo := new(MockReleaseSnapshotRepository)
	uow := new(MockReleaseSnapshotUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReleaseSnapshotRepository").Return(repo).Once(),
		repo.On("GetByReleaseID", mock.Anything, cmd.ReleaseID()).Return(existing, nil).Once(),
		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(s snapshot.ReleaseSnapshot) bool {
			return s.Status() == existing.Status() &&
				s.EventTime().Equal(existing.EventTime()) &&
				assert.ObjectsAreEqual(s.Payload(), existing.Payload())
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReleaseSnapshotUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyReleaseSnapshotCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestNewApplyReleaseSnapshotCommand_Validation(t *testing.T) {
	t.Run("should reject a missing release id", func(t *testing.T) {
		_, err := commands.NewApplyReleaseSnapshotCommand(
			"", testOrderID(t), "RELEASED", time.Now().UTC(), nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a zero event time", func(t *testing.T) {
		_, err := commands.NewApplyReleaseSnapshotCommand(
			"REL-1", testOrderID(t), "RELEASED", time.Time{}, nil)

		require.Error(t, err)
	})
}
