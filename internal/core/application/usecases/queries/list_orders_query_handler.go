package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads pages of order summaries from the
// database, newest first.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listing queries.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the query. An empty page is a valid result, not an
// error.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	resp := ListOrdersQueryResponse{
		Orders: make([]OrderSummaryResponse, 0),
		Page:   query.Page(),
		Size:   query.Size(),
	}

	filter := ""
	args := []any{}
	if query.CustomerID() != "" {
		filter = "WHERE o.customer_id = ?"
		args = append(args, query.CustomerID())
	}

	countSQL := "SELECT COUNT(*) FROM orders o " + filter
	row := h.db.WithContext(ctx).Raw(countSQL, args...).Row()
	if err := row.Scan(&resp.Total); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	listSQL := `
		SELECT
			o.number,
			o.customer_id,
			o.order_type,
			o.channel,
			o.status,
			COUNT(l.id) AS line_count,
			o.created_at,
			o.updated_at
		FROM orders o
		LEFT JOIN order_lines l ON l.order_number = o.number
		` + filter + `
		GROUP BY o.number, o.customer_id, o.order_type, o.channel, o.status, o.created_at, o.updated_at
		ORDER BY o.created_at DESC, o.number DESC
		LIMIT ? OFFSET ?
	`
	args = append(args, query.Size(), query.Page()*query.Size())

	rows, err := h.db.WithContext(ctx).Raw(listSQL, args...).Rows()
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var summary OrderSummaryResponse
		err = rows.Scan(
			&summary.Number,
			&summary.CustomerID,
			&summary.OrderType,
			&summary.Channel,
			&summary.Status,
			&summary.LineCount,
			&summary.CreatedAt,
			&summary.UpdatedAt,
		)
		if err != nil {
			return ListOrdersQueryResponse{}, err
		}
		resp.Orders = append(resp.Orders, summary)
	}

	if err = rows.Err(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return resp, nil
}
