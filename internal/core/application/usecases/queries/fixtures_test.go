package queries_test

import (
	"context"
	"sync/atomic"
	"time"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/postgres/snapshotrepo"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/snapshot"

	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// startPostgres boots a disposable PostgreSQL container with the full
// schema migrated, shared by every query handler suite.
func startPostgres(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&snapshotrepo.ReleaseSnapshotDTO{},
		&snapshotrepo.ShipmentSnapshotDTO{},
	)
	if err != nil {
		return nil, nil, err
	}

	return container, db, nil
}

// noopVersionTracker satisfies orderrepo.VersionTracker for seeding data
// outside a unit of work.
type noopVersionTracker struct{}

func (noopVersionTracker) TrackVersion(_ string, _ int) {}

func (noopVersionTracker) VersionOf(_ string) (int, bool) { return 0, false }

var fixtureSequence atomic.Int64

func fixtureOrderID(channel kernel.Channel) kernel.OrderID {
	id, err := kernel.NewOrderID(channel, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		int(fixtureSequence.Add(1)))
	if err != nil {
		panic(err)
	}
	return id
}

func fixtureAddress() kernel.Address {
	address, err := kernel.NewAddress(kernel.AddressParams{
		FullName:      "Jordan Smith",
		AddressLine1:  "500 Main St",
		City:          "Columbus",
		StateProvince: "OH",
		PostalCode:    "43004",
		Country:       "US",
	})
	if err != nil {
		panic(err)
	}
	return address
}

func fixtureLine(lineNumber int) order.OrderLine {
	unitPrice, err := kernel.NewMoneyFromFloat(29.99, "USD")
	if err != nil {
		panic(err)
	}
	shipping := fixtureAddress()
	line, err := order.NewOrderLine(order.OrderLineParams{
		LineNumber:      lineNumber,
		ItemID:          1234567890,
		ItemName:        "Wireless Mouse",
		Quantity:        2,
		UnitPrice:       unitPrice,
		TaxRate:         decimal.RequireFromString("0.08"),
		FulfillmentType: order.ShipToHome,
		ShippingAddress: &shipping,
	})
	if err != nil {
		panic(err)
	}
	return line
}

func seedOrder(ctx context.Context, db *gorm.DB, customerID string, lines ...order.OrderLine) *order.Order {
	if len(lines) == 0 {
		lines = []order.OrderLine{fixtureLine(1)}
	}
	aggregate, err := order.NewOrder(order.NewOrderParams{
		ID:             fixtureOrderID(kernel.ChannelWeb),
		CustomerID:     customerID,
		OrderType:      order.OrderTypeStandard,
		Channel:        kernel.ChannelWeb,
		Lines:          lines,
		BillingAddress: fixtureAddress(),
		Notes:          "leave at door",
	})
	if err != nil {
		panic(err)
	}

	repo := orderrepo.NewGormOrderRepository(db, noopVersionTracker{})
	if err := repo.Add(ctx, aggregate); err != nil {
		panic(err)
	}
	return aggregate
}

func seedRelease(ctx context.Context, db *gorm.DB, releaseID string, orderID kernel.OrderID,
	status string, eventTime time.Time,
) snapshot.ReleaseSnapshot {
	s, err := snapshot.NewReleaseSnapshot(snapshot.ReleaseSnapshotParams{
		ReleaseID: releaseID,
		OrderID:   orderID,
		Status:    status,
		EventTime: eventTime,
		Payload:   map[string]any{"warehouse": "CMH-1"},
	})
	if err != nil {
		panic(err)
	}
	if err := snapshotrepo.NewGormReleaseSnapshotRepository(db).Upsert(ctx, s); err != nil {
		panic(err)
	}
	return s
}

func seedShipment(ctx context.Context, db *gorm.DB, shipmentID string, orderID kernel.OrderID,
	tracking, status string, eventTime time.Time,
) snapshot.ShipmentSnapshot {
	s, err := snapshot.NewShipmentSnapshot(snapshot.ShipmentSnapshotParams{
		ShipmentID:     shipmentID,
		OrderID:        orderID,
		TrackingNumber: tracking,
		Status:         status,
		EventTime:      eventTime,
		Payload:        map[string]any{"carrier": "UPS"},
	})
	if err != nil {
		panic(err)
	}
	if err := snapshotrepo.NewGormShipmentSnapshotRepository(db).Upsert(ctx, s); err != nil {
		panic(err)
	}
	return s
}
