package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// VersionTracker records the stored version of each aggregate loaded
// during a unit of work, so a later Update can perform an optimistic
// concurrency check against the version it actually read.
type VersionTracker interface {
	TrackVersion(number string, version int)
	VersionOf(number string) (int, bool)
}

// GormOrderRepository implements ports.OrderRepository backed by
// PostgreSQL through GORM. Updates replace the line set wholesale:
// lines are owned sub-entities without independent lifecycles, so
// delete-and-recreate is simpler than diffing.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker VersionTracker
}

// NewGormOrderRepository creates a repository bound to the given
// connection or transaction.
func NewGormOrderRepository(db *gorm.DB, tracker VersionTracker) *GormOrderRepository {
	return &GormOrderRepository{db: db, tracker: tracker}
}

// Add persists a new order aggregate with its lines. A duplicate order
// number or external order ID surfaces as a Conflict error.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate, 1)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("orderId", dto.Number, err)
		}
		return err
	}

	r.tracker.TrackVersion(dto.Number, dto.Version)
	return nil
}

// Update persists changes to an existing aggregate. The order row is
// updated with an optimistic version check; the line rows are deleted
// and recreated from the aggregate.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	number := aggregate.ID().String()
	currentVersion, ok := r.tracker.VersionOf(number)
	if !ok {
		var err error
		if currentVersion, err = r.readVersion(ctx, number); err != nil {
			return err
		}
	}

	dto := fromDomain(aggregate, currentVersion+1)

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("number = ? AND version = ?", number, currentVersion).
		Select("*").
		Omit("id", "number", "created_at", clause.Associations).
		Updates(dto)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return errs.NewConflictErrorWithCause("orderId", number, result.Error)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the row vanished or someone else bumped the version.
		if _, err := r.readVersion(ctx, number); err != nil {
			return err
		}
		return errs.NewVersionIsInvalidErrorWithCause("version",
			fmt.Errorf("order %s was modified concurrently (expected version %d)", number, currentVersion))
	}

	if err := r.db.WithContext(ctx).
		Where("order_number = ?", number).
		Delete(&OrderLineDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Lines) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Lines).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackVersion(number, dto.Version)
	return nil
}

// Get retrieves an order aggregate with all of its lines.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	var dto OrderDTO

	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("line_number") }).
		Where("number = ?", id.String()).
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	if err != nil {
		return nil, err
	}

	r.tracker.TrackVersion(dto.Number, dto.Version)
	return dto.toDomain()
}

// GetByCustomer retrieves all orders placed by the given customer,
// newest first.
func (r *GormOrderRepository) GetByCustomer(ctx context.Context, customerID string) ([]*order.Order, error) {
	var dtos []OrderDTO

	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("line_number") }).
		Where("customer_id = ?", customerID).
		Order("created_at DESC, number DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toAggregates(dtos)
}

// GetAll retrieves a zero-based page of orders, newest first.
func (r *GormOrderRepository) GetAll(ctx context.Context, page, size int) ([]*order.Order, error) {
	var dtos []OrderDTO

	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("line_number") }).
		Order("created_at DESC, number DESC").
		Limit(size).
		Offset(page * size).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toAggregates(dtos)
}

// ExistsByExternalOrderID reports whether any order carries the given
// upstream checkout identifier.
func (r *GormOrderRepository) ExistsByExternalOrderID(ctx context.Context, externalOrderID kernel.UUID) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("external_order_id = ?", externalOrderID.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Delete physically removes the order row and its lines.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.OrderID) error {
	number := id.String()

	if err := r.db.WithContext(ctx).
		Where("order_number = ?", number).
		Delete(&OrderLineDTO{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("number = ?", number).
		Delete(&OrderDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", number)
	}

	return nil
}

// Count returns the total number of stored orders.
func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *GormOrderRepository) toAggregates(dtos []OrderDTO) ([]*order.Order, error) {
	aggregates := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		r.tracker.TrackVersion(dto.Number, dto.Version)
		aggregates = append(aggregates, aggregate)
	}
	return aggregates, nil
}

func (r *GormOrderRepository) readVersion(ctx context.Context, number string) (int, error) {
	var version int

	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("version").
		Where("number = ?", number).
		Take(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, errs.NewObjectNotFoundError("orderId", number)
	}
	if err != nil {
		return 0, err
	}

	return version, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
