package commands_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/snapshot"
	"orders/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByCustomer(ctx context.Context, customerID string) ([]*order.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAll(ctx context.Context, page, size int) ([]*order.Order, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ExistsByExternalOrderID(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.OrderID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockReleaseSnapshotRepository struct{ mock.Mock }

func (m *MockReleaseSnapshotRepository) Upsert(ctx context.Context, s snapshot.ReleaseSnapshot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockReleaseSnapshotRepository) GetByReleaseID(
	ctx context.Context, releaseID string,
) (snapshot.ReleaseSnapshot, error) {
	args := m.Called(ctx, releaseID)
	return args.Get(0).(snapshot.ReleaseSnapshot), args.Error(1)
}

func (m *MockReleaseSnapshotRepository) GetByOrderID(
	ctx context.Context, orderID kernel.OrderID,
) ([]snapshot.ReleaseSnapshot, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]snapshot.ReleaseSnapshot), args.Error(1)
}

type MockReleaseSnapshotUoW struct{ mock.Mock }

func (m *MockReleaseSnapshotUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReleaseSnapshotUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReleaseSnapshotUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReleaseSnapshotUoW) ReleaseSnapshotRepository() ports.ReleaseSnapshotRepository {
	args := m.Called()
	return args.Get(0).(ports.ReleaseSnapshotRepository)
}

type MockReleaseSnapshotUoWFactory struct{ mock.Mock }

func (m *MockReleaseSnapshotUoWFactory) Create() commands.ReleaseSnapshotUoW {
	args := m.Called()
	return args.Get(0).(commands.ReleaseSnapshotUoW)
}

type MockShipmentSnapshotRepository struct{ mock.Mock }

func (m *MockShipmentSnapshotRepository) Upsert(ctx context.Context, s snapshot.ShipmentSnapshot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentSnapshotRepository) GetByShipmentID(
	ctx context.Context, shipmentID string,
) (snapshot.ShipmentSnapshot, error) {
	args := m.Called(ctx, shipmentID)
	return args.Get(0).(snapshot.ShipmentSnapshot), args.Error(1)
}

func (m *MockShipmentSnapshotRepository) GetByOrderID(
	ctx context.Context, orderID kernel.OrderID,
) ([]snapshot.ShipmentSnapshot, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]snapshot.ShipmentSnapshot), args.Error(1)
}

func (m *MockShipmentSnapshotRepository) GetByTrackingNumber(
	ctx context.Context, trackingNumber string,
) (snapshot.ShipmentSnapshot, error) {
	args := m.Called(ctx, trackingNumber)
	return args.Get(0).(snapshot.ShipmentSnapshot), args.Error(1)
}

type MockShipmentSnapshotUoW struct{ mock.Mock }

func (m *MockShipmentSnapshotUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentSnapshotUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentSnapshotUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentSnapshotUoW) ShipmentSnapshotRepository() ports.ShipmentSnapshotRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentSnapshotRepository)
}

type MockShipmentSnapshotUoWFactory struct{ mock.Mock }

func (m *MockShipmentSnapshotUoWFactory) Create() commands.ShipmentSnapshotUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentSnapshotUoW)
}

// MockNotifier records which lifecycle notifications fired.
type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyCreated(ctx context.Context, o *order.Order)    { m.Called(ctx, o) }
func (m *MockNotifier) NotifyInRelease(ctx context.Context, o *order.Order)  { m.Called(ctx, o) }
func (m *MockNotifier) NotifyReleased(ctx context.Context, o *order.Order)   { m.Called(ctx, o) }
func (m *MockNotifier) NotifyInShipment(ctx context.Context, o *order.Order) { m.Called(ctx, o) }
func (m *MockNotifier) NotifyShipped(ctx context.Context, o *order.Order)    { m.Called(ctx, o) }
func (m *MockNotifier) NotifyDelivered(ctx context.Context, o *order.Order)  { m.Called(ctx, o) }
func (m *MockNotifier) NotifyCancelled(ctx context.Context, o *order.Order)  { m.Called(ctx, o) }

// fixedGenerator hands out one predetermined order ID.
type fixedGenerator struct {
	id  kernel.OrderID
	err error
}

func (g fixedGenerator) Next(kernel.Channel) (kernel.OrderID, error) {
	return g.id, g.err
}

func testOrderID(t *testing.T) kernel.OrderID {
	t.Helper()
	id, err := kernel.NewOrderID(kernel.ChannelWeb, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 7)
	require.NoError(t, err)
	return id
}

func testAddress(t *testing.T) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(kernel.AddressParams{
		FullName:     "Jordan Smith",
		AddressLine1: "500 Main St",
		City:         "Columbus",
		PostalCode:   "43004",
		Country:      "US",
	})
	require.NoError(t, err)
	return a
}

func testLineParams(t *testing.T) order.OrderLineParams {
	t.Helper()
	address := testAddress(t)
	price, err := kernel.NewMoneyFromFloat(29.99, "USD")
	require.NoError(t, err)
	return order.OrderLineParams{
		LineNumber:      1,
		ItemID:          1234567890,
		ItemName:        "Wireless Mouse",
		Quantity:        2,
		UnitPrice:       price,
		TaxRate:         decimal.NewFromFloat(0.08),
		FulfillmentType: order.ShipToHome,
		ShippingAddress: &address,
	}
}

func testCreateOrderParams(t *testing.T) commands.CreateOrderCommandParams {
	t.Helper()
	externalID := kernel.NewUUID()
	return commands.CreateOrderCommandParams{
		ExternalOrderID: &externalID,
		CustomerID:      "CUST-000123",
		OrderType:       order.OrderTypeStandard,
		Channel:         kernel.ChannelWeb,
		Lines:           []order.OrderLineParams{testLineParams(t)},
		BillingAddress:  testAddress(t),
	}
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	line, err := order.NewOrderLine(testLineParams(t))
	require.NoError(t, err)

	o, err := order.NewOrder(order.NewOrderParams{
		ID:             testOrderID(t),
		CustomerID:     "CUST-000123",
		OrderType:      order.OrderTypeStandard,
		Channel:        kernel.ChannelWeb,
		Lines:          []order.OrderLine{line},
		BillingAddress: testAddress(t),
	})
	require.NoError(t, err)
	return o
}
