package snapshot

import (
	"errors"
	"maps"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrReleaseSnapshotIsNotConstructed is returned when a ReleaseSnapshot was
// not created via its constructors.
var ErrReleaseSnapshotIsNotConstructed = errs.NewValueIsRequiredError(
	"ReleaseSnapshot must be created via NewReleaseSnapshot or RestoreReleaseSnapshot constructors")

// ReleaseSnapshot is the latest known state of one upstream release,
// identified by the externally issued release ID. Indexed fields (status,
// event time) live alongside the opaque payload map preserving the full
// upstream event for display.
type ReleaseSnapshot struct { //nolint:recvcheck //pointer receivers used for construction-time setters
	releaseID string
	orderID   kernel.OrderID
	status    string
	eventTime time.Time
	payload   map[string]any
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// ReleaseSnapshotParams carries the fields extracted from an upstream
// release event.
type ReleaseSnapshotParams struct {
	ReleaseID string
	OrderID   kernel.OrderID
	Status    string
	EventTime time.Time
	Payload   map[string]any
}

// NewReleaseSnapshot creates a snapshot for a release seen for the first
// time.
func NewReleaseSnapshot(params ReleaseSnapshotParams) (ReleaseSnapshot, error) {
	now := time.Now().UTC()
	return RestoreReleaseSnapshot(params, now, now)
}

// RestoreReleaseSnapshot rehydrates a snapshot from persistence.
func RestoreReleaseSnapshot(params ReleaseSnapshotParams, createdAt, updatedAt time.Time) (ReleaseSnapshot, error) {
	s := ReleaseSnapshot{
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setReleaseID(params.ReleaseID),
		s.setOrderID(params.OrderID),
		s.setStatus(params.Status),
		s.setEventTime(params.EventTime),
		s.setPayload(params.Payload),
	); err != nil {
		return ReleaseSnapshot{}, err
	}

	return s, nil
}

// Validate checks that the snapshot was properly constructed.
func (s ReleaseSnapshot) Validate() error {
	return s.guard.Validate(ErrReleaseSnapshotIsNotConstructed)
}

// ReleaseID returns the external business identifier of the release.
func (s ReleaseSnapshot) ReleaseID() string { return s.releaseID }

// OrderID returns the business identifier of the associated order.
func (s ReleaseSnapshot) OrderID() kernel.OrderID { return s.orderID }

// Status returns the upstream release status string.
func (s ReleaseSnapshot) Status() string { return s.status }

// EventTime returns the upstream event timestamp.
func (s ReleaseSnapshot) EventTime() time.Time { return s.eventTime }

// Payload returns a copy of the opaque upstream event payload.
func (s ReleaseSnapshot) Payload() map[string]any { return maps.Clone(s.payload) }

// CreatedAt returns the time the release was first seen.
func (s ReleaseSnapshot) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the time of the last overwrite.
func (s ReleaseSnapshot) UpdatedAt() time.Time { return s.updatedAt }

// IsEqual compares two snapshots by their business identity.
func (s ReleaseSnapshot) IsEqual(other ReleaseSnapshot) bool {
	return s.releaseID == other.releaseID
}

// Overwrite replaces the indexed fields and payload with a newly delivered
// event for the same release, keeping identity and creation time. Returns a
// new instance; the receiver is left unchanged.
func (s ReleaseSnapshot) Overwrite(status string, eventTime time.Time, payload map[string]any) (ReleaseSnapshot, error) {
	if err := s.Validate(); err != nil {
		return ReleaseSnapshot{}, err
	}

	updated := s
	if err := errors.Join(
		updated.setStatus(status),
		updated.setEventTime(eventTime),
		updated.setPayload(payload),
	); err != nil {
		return ReleaseSnapshot{}, err
	}
	updated.updatedAt = time.Now().UTC()
	return updated, nil
}

func (s *ReleaseSnapshot) setReleaseID(releaseID string) error {
	if releaseID == "" {
		return errs.NewValueIsRequiredError("releaseId")
	}
	s.releaseID = releaseID
	return nil
}

func (s *ReleaseSnapshot) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *ReleaseSnapshot) setStatus(status string) error {
	if status == "" {
		return errs.NewValueIsRequiredError("status")
	}
	s.status = status
	return nil
}

func (s *ReleaseSnapshot) setEventTime(eventTime time.Time) error {
	if eventTime.IsZero() {
		return errs.NewValueIsRequiredError("eventTime")
	}
	s.eventTime = eventTime.UTC()
	return nil
}

func (s *ReleaseSnapshot) setPayload(payload map[string]any) error {
	s.payload = maps.Clone(payload)
	return nil
}
