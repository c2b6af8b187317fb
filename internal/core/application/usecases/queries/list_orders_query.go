package queries

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

const (
	// ListOrdersMaxPageSize caps a single page of order summaries.
	ListOrdersMaxPageSize = 100
	// ListOrdersDefaultPageSize is used when the caller passes size 0.
	ListOrdersDefaultPageSize = 20
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves a page of order summaries, optionally
// filtered to a single customer. Pages are zero-based.
type ListOrdersQuery struct {
	customerID string
	page       int
	size       int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a paginated listing query. An empty
// customerID lists orders across all customers. A size of 0 falls back
// to ListOrdersDefaultPageSize.
func NewListOrdersQuery(customerID string, page, size int) (ListOrdersQuery, error) {
	if page < 0 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("page",
			fmt.Errorf("%d is not a zero-based page index", page))
	}
	if size == 0 {
		size = ListOrdersDefaultPageSize
	}
	if size < 1 || size > ListOrdersMaxPageSize {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("size", size, 1, ListOrdersMaxPageSize)
	}

	return ListOrdersQuery{
		customerID: customerID,
		page:       page,
		size:       size,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// CustomerID returns the customer filter, empty for no filter.
func (q ListOrdersQuery) CustomerID() string { return q.customerID }

// Page returns the zero-based page index.
func (q ListOrdersQuery) Page() int { return q.page }

// Size returns the page size.
func (q ListOrdersQuery) Size() int { return q.size }

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// ListOrdersQueryResponse is one page of order summaries plus the total
// number of orders matching the filter.
type ListOrdersQueryResponse struct {
	Orders []OrderSummaryResponse
	Total  int64
	Page   int
	Size   int
}

// OrderSummaryResponse is a lightweight listing row; full order detail
// comes from GetOrderQuery.
type OrderSummaryResponse struct {
	Number     string
	CustomerID string
	OrderType  string
	Channel    string
	Status     string
	LineCount  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
