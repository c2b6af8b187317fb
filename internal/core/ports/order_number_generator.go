package ports

import (
	"orders/internal/core/domain/model/kernel"
)

// OrderNumberGenerator allocates the next externally visible order
// identifier for a channel. The in-process implementation keeps one counter
// per (channel, UTC date) pair; a cross-instance deployment swaps in a
// coordinated allocator behind this same interface.
type OrderNumberGenerator interface {
	Next(channel kernel.Channel) (kernel.OrderID, error)
}
