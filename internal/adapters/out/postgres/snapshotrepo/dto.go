// Package snapshotrepo implements the release and shipment snapshot
// repository ports on PostgreSQL via GORM. Snapshots mirror external
// fulfillment events, so writes are idempotent upserts keyed by the
// external business ID and the raw event document is kept as JSONB.
package snapshotrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/snapshot"
)

// ReleaseSnapshotDTO maps a warehouse release event to the
// release_snapshots table.
type ReleaseSnapshotDTO struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement"`
	ReleaseID   string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	OrderNumber string         `gorm:"type:varchar(20);index;not null"`
	Status      string         `gorm:"type:varchar(32);not null"`
	EventTime   time.Time      `gorm:"not null"`
	Payload     map[string]any `gorm:"type:jsonb;serializer:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the table name used by ReleaseSnapshotDTO to
// `release_snapshots`.
func (ReleaseSnapshotDTO) TableName() string {
	return "release_snapshots"
}

// ShipmentSnapshotDTO maps a carrier shipment event to the
// shipment_snapshots table.
type ShipmentSnapshotDTO struct {
	ID             uint64         `gorm:"primaryKey;autoIncrement"`
	ShipmentID     string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	OrderNumber    string         `gorm:"type:varchar(20);index;not null"`
	TrackingNumber string         `gorm:"type:varchar(64);index;not null"`
	Status         string         `gorm:"type:varchar(32);not null"`
	EventTime      time.Time      `gorm:"not null"`
	Payload        map[string]any `gorm:"type:jsonb;serializer:json"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides the table name used by ShipmentSnapshotDTO to
// `shipment_snapshots`.
func (ShipmentSnapshotDTO) TableName() string {
	return "shipment_snapshots"
}

func releaseFromDomain(s snapshot.ReleaseSnapshot) ReleaseSnapshotDTO {
	return ReleaseSnapshotDTO{
		ReleaseID:   s.ReleaseID(),
		OrderNumber: s.OrderID().String(),
		Status:      s.Status(),
		EventTime:   s.EventTime(),
		Payload:     s.Payload(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

func (dto ReleaseSnapshotDTO) toDomain() (snapshot.ReleaseSnapshot, error) {
	orderID, err := kernel.OrderIDFromString(dto.OrderNumber)
	if err != nil {
		return snapshot.ReleaseSnapshot{}, err
	}
	return snapshot.RestoreReleaseSnapshot(snapshot.ReleaseSnapshotParams{
		ReleaseID: dto.ReleaseID,
		OrderID:   orderID,
		Status:    dto.Status,
		EventTime: dto.EventTime,
		Payload:   dto.Payload,
	}, dto.CreatedAt, dto.UpdatedAt)
}

func shipmentFromDomain(s snapshot.ShipmentSnapshot) ShipmentSnapshotDTO {
	return ShipmentSnapshotDTO{
		ShipmentID:     s.ShipmentID(),
		OrderNumber:    s.OrderID().String(),
		TrackingNumber: s.TrackingNumber(),
		Status:         s.Status(),
		EventTime:      s.EventTime(),
		Payload:        s.Payload(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}
}

func (dto ShipmentSnapshotDTO) toDomain() (snapshot.ShipmentSnapshot, error) {
	orderID, err := kernel.OrderIDFromString(dto.OrderNumber)
	if err != nil {
		return snapshot.ShipmentSnapshot{}, err
	}
	return snapshot.RestoreShipmentSnapshot(snapshot.ShipmentSnapshotParams{
		ShipmentID:     dto.ShipmentID,
		OrderID:        orderID,
		TrackingNumber: dto.TrackingNumber,
		Status:         dto.Status,
		EventTime:      dto.EventTime,
		Payload:        dto.Payload,
	}, dto.CreatedAt, dto.UpdatedAt)
}
