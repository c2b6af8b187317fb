// Package postgres provides the GORM-based implementation of the Unit of
// Work pattern. A unit of work spans one business transaction: it hands
// out repositories bound to the active database transaction and tracks
// the stored version of every order aggregate loaded through it, so
// updates can be checked optimistically against what was actually read.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each business operation must use its own unit of work instance;
// instances are not safe for concurrent use.
package postgres

import (
	"context"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/postgres/snapshotrepo"
	"orders/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool. Each Create call returns a fresh instance with its
// own transaction state and version tracking.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:       f.db,
		versions: make(map[string]int),
	}
}

// GormUnitOfWork coordinates a database transaction across the order and
// snapshot repositories. It also implements orderrepo.VersionTracker:
// repositories record the version of every aggregate they load, and
// consult it again on update for the optimistic concurrency check.
type GormUnitOfWork struct {
	db       *gorm.DB
	tx       *gorm.DB
	versions map[string]int
}

// Begin initiates a new database transaction. Calling Begin on an
// instance with an active transaction is a no-op; transactions never
// nest.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction when no transaction is active, so
// the deferred rollback after a successful commit is a harmless no-op
// for callers that ignore the error.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns an order repository bound to the current
// transaction, or to the main connection when none is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// ReleaseSnapshotRepository returns a release snapshot repository bound
// to the current transaction, or to the main connection when none is
// active.
func (uow *GormUnitOfWork) ReleaseSnapshotRepository() ports.ReleaseSnapshotRepository {
	return snapshotrepo.NewGormReleaseSnapshotRepository(uow.conn())
}

// ShipmentSnapshotRepository returns a shipment snapshot repository
// bound to the current transaction, or to the main connection when none
// is active.
func (uow *GormUnitOfWork) ShipmentSnapshotRepository() ports.ShipmentSnapshotRepository {
	return snapshotrepo.NewGormShipmentSnapshotRepository(uow.conn())
}

// TrackVersion records the stored version of an order aggregate read
// within this unit of work.
func (uow *GormUnitOfWork) TrackVersion(number string, version int) {
	uow.versions[number] = version
}

// VersionOf returns the recorded version of an order aggregate, if it
// was read within this unit of work.
func (uow *GormUnitOfWork) VersionOf(number string) (int, bool) {
	version, ok := uow.versions[number]
	return version, ok
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
