package services

import (
	"sync"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

// OrderNumberAllocator is a domain service producing externally visible
// order identifiers of the form CC-YYYYMMDD-NNNNNNN: a 2-digit channel
// prefix, the current UTC date, and a 7-digit sequence incremented per
// (channel, date) pair.
//
// Key properties:
//   - Each (channel, date) pair owns an independent, monotonically
//     increasing counter starting at 1
//   - Counters conceptually reset at the UTC day boundary: a new day simply
//     starts a new key
//   - Allocation is safe for concurrent use within one process
//
// The counters are process-local. Running multiple service instances
// against the same order space requires an external coordinator behind the
// same port; a database sequence is the usual replacement.
//
// Example usage:
//
//	allocator := services.NewOrderNumberAllocator()
//	id, err := allocator.Next(kernel.ChannelWeb)
//	// id.String() == "10-20260825-0000001"
type OrderNumberAllocator struct {
	mu       sync.Mutex
	counters map[counterKey]int
	now      func() time.Time
}

type counterKey struct {
	channel kernel.Channel
	date    time.Time
}

// NewOrderNumberAllocator creates an allocator using the system UTC clock.
func NewOrderNumberAllocator() *OrderNumberAllocator {
	return NewOrderNumberAllocatorWithClock(time.Now)
}

// NewOrderNumberAllocatorWithClock creates an allocator with an injected
// clock, letting tests pin the date and exercise day rollover.
func NewOrderNumberAllocatorWithClock(now func() time.Time) *OrderNumberAllocator {
	return &OrderNumberAllocator{
		counters: make(map[counterKey]int),
		now:      now,
	}
}

// Next allocates the next order identifier for the given channel on the
// current UTC date. Fails when the channel is invalid or the daily sequence
// space for the channel is exhausted.
func (a *OrderNumberAllocator) Next(channel kernel.Channel) (kernel.OrderID, error) {
	if err := channel.Validate(); err != nil {
		return kernel.OrderID{}, err
	}

	day := a.today()

	a.mu.Lock()
	defer a.mu.Unlock()

	key := counterKey{channel: channel, date: day}
	next := a.counters[key] + 1
	if next > kernel.OrderIDMaxSequence {
		return kernel.OrderID{}, errs.NewValueIsOutOfRangeError(
			"sequence", next, kernel.OrderIDMinSequence, kernel.OrderIDMaxSequence)
	}
	a.counters[key] = next

	return kernel.NewOrderID(channel, day, next)
}

// PruneBefore drops counters for days earlier than the given cutoff,
// keeping the map from growing one entry per channel per day forever.
// Returns the number of counters removed.
func (a *OrderNumberAllocator) PruneBefore(cutoff time.Time) int {
	day := cutoff.UTC().Truncate(24 * time.Hour)

	a.mu.Lock()
	defer a.mu.Unlock()

	removed := 0
	for key := range a.counters {
		if key.date.Before(day) {
			delete(a.counters, key)
			removed++
		}
	}
	return removed
}

func (a *OrderNumberAllocator) today() time.Time {
	return a.now().UTC().Truncate(24 * time.Hour)
}
