package snapshotrepo

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/snapshot"
	"orders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReleaseSnapshotRepository implements
// ports.ReleaseSnapshotRepository backed by PostgreSQL through GORM.
type GormReleaseSnapshotRepository struct {
	db *gorm.DB
}

// NewGormReleaseSnapshotRepository creates a repository bound to the
// given connection or transaction.
func NewGormReleaseSnapshotRepository(db *gorm.DB) *GormReleaseSnapshotRepository {
	return &GormReleaseSnapshotRepository{db: db}
}

// Upsert inserts the snapshot or replaces the stored record carrying the
// same release ID. ON CONFLICT keeps redelivered events idempotent even
// under concurrent consumers.
func (r *GormReleaseSnapshotRepository) Upsert(ctx context.Context, s snapshot.ReleaseSnapshot) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := releaseFromDomain(s)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "release_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"order_number", "status", "event_time", "payload", "updated_at",
			}),
		}).
		Create(&dto).Error
}

// GetByReleaseID retrieves a snapshot by its external business ID.
func (r *GormReleaseSnapshotRepository) GetByReleaseID(
	ctx context.Context,
	releaseID string,
) (snapshot.ReleaseSnapshot, error) {
	var dto ReleaseSnapshotDTO

	err := r.db.WithContext(ctx).
		Where("release_id = ?", releaseID).
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return snapshot.ReleaseSnapshot{}, errs.NewObjectNotFoundError("releaseId", releaseID)
	}
	if err != nil {
		return snapshot.ReleaseSnapshot{}, err
	}

	return dto.toDomain()
}

// GetByOrderID retrieves all release snapshots for an order, oldest
// first.
func (r *GormReleaseSnapshotRepository) GetByOrderID(
	ctx context.Context,
	orderID kernel.OrderID,
) ([]snapshot.ReleaseSnapshot, error) {
	var dtos []ReleaseSnapshotDTO

	err := r.db.WithContext(ctx).
		Where("order_number = ?", orderID.String()).
		Order("event_time").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	snapshots := make([]snapshot.ReleaseSnapshot, 0, len(dtos))
	for _, dto := range dtos {
		s, convErr := dto.toDomain()
		if convErr != nil {
			return nil, convErr
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, nil
}

// GormShipmentSnapshotRepository implements
// ports.ShipmentSnapshotRepository backed by PostgreSQL through GORM.
type GormShipmentSnapshotRepository struct {
	db *gorm.DB
}

// NewGormShipmentSnapshotRepository creates a repository bound to the
// given connection or transaction.
func NewGormShipmentSnapshotRepository(db *gorm.DB) *GormShipmentSnapshotRepository {
	return &GormShipmentSnapshotRepository{db: db}
}

// Upsert inserts the snapshot or replaces the stored record carrying the
// same shipment ID.
func (r *GormShipmentSnapshotRepository) Upsert(ctx context.Context, s snapshot.ShipmentSnapshot) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := shipmentFromDomain(s)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "shipment_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"order_number", "tracking_number", "status", "event_time", "payload", "updated_at",
			}),
		}).
		Create(&dto).Error
}

// GetByShipmentID retrieves a snapshot by its external business ID.
func (r *GormShipmentSnapshotRepository) GetByShipmentID(
	ctx context.Context,
	shipmentID string,
) (snapshot.ShipmentSnapshot, error) {
	var dto ShipmentSnapshotDTO

	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return snapshot.ShipmentSnapshot{}, errs.NewObjectNotFoundError("shipmentId", shipmentID)
	}
	if err != nil {
		return snapshot.ShipmentSnapshot{}, err
	}

	return dto.toDomain()
}

// GetByOrderID retrieves all shipment snapshots for an order, oldest
// first.
func (r *GormShipmentSnapshotRepository) GetByOrderID(
	ctx context.Context,
	orderID kernel.OrderID,
) ([]snapshot.ShipmentSnapshot, error) {
	var dtos []ShipmentSnapshotDTO

	err := r.db.WithContext(ctx).
		Where("order_number = ?", orderID.String()).
		Order("event_time").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	snapshots := make([]snapshot.ShipmentSnapshot, 0, len(dtos))
	for _, dto := range dtos {
		s, convErr := dto.toDomain()
		if convErr != nil {
			return nil, convErr
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, nil
}

// GetByTrackingNumber retrieves the latest snapshot carrying the given
// carrier tracking number.
func (r *GormShipmentSnapshotRepository) GetByTrackingNumber(
	ctx context.Context,
	trackingNumber string,
) (snapshot.ShipmentSnapshot, error) {
	var dto ShipmentSnapshotDTO

	err := r.db.WithContext(ctx).
		Where("tracking_number = ?", trackingNumber).
		Order("event_time DESC").
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return snapshot.ShipmentSnapshot{}, errs.NewObjectNotFoundError("trackingNumber", trackingNumber)
	}
	if err != nil {
		return snapshot.ShipmentSnapshot{}, err
	}

	return dto.toDomain()
}
