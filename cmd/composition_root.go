package cmd

import (
	"orders/internal/adapters/out/postgres"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	allocator  *services.OrderNumberAllocator
	notifier   ports.Notifier
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, notifier ports.Notifier) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		allocator:  services.NewOrderNumberAllocator(),
		notifier:   notifier,
	}
}

// Allocator exposes the shared order number allocator for background jobs.
func (c *CompositionRoot) Allocator() *services.OrderNumberAllocator {
	return c.allocator
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.allocator, c.notifier)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateUpdateLineStatusCommandHandler() commands.UpdateLineStatusCommandHandler {
	return commands.NewUpdateLineStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateApplyReleaseSnapshotCommandHandler() commands.ApplyReleaseSnapshotCommandHandler {
	var f commands.ReleaseSnapshotUoWFactory = FuncReleaseSnapshotUoWFactory(func() commands.ReleaseSnapshotUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyReleaseSnapshotCommandHandler(f)
}

func (c *CompositionRoot) CreateApplyShipmentSnapshotCommandHandler() commands.ApplyShipmentSnapshotCommandHandler {
	var f commands.ShipmentSnapshotUoWFactory = FuncShipmentSnapshotUoWFactory(func() commands.ShipmentSnapshotUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyShipmentSnapshotCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderSnapshotsQueryHandler() queries.GetOrderSnapshotsQueryHandler {
	return queries.NewGetOrderSnapshotsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentByTrackingQueryHandler() queries.GetShipmentByTrackingQueryHandler {
	return queries.NewGetShipmentByTrackingQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncReleaseSnapshotUoWFactory func() commands.ReleaseSnapshotUoW

func (f FuncReleaseSnapshotUoWFactory) Create() commands.ReleaseSnapshotUoW {
	return f()
}

type FuncShipmentSnapshotUoWFactory func() commands.ShipmentSnapshotUoW

func (f FuncShipmentSnapshotUoWFactory) Create() commands.ShipmentSnapshotUoW {
	return f()
}
