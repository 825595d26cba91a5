package queries

import (
	"context"

	"orderflow/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetStalePaymentOrdersQueryHandler scans for orders whose payment never
// arrived. Results are sorted by number for deterministic job runs.
type GetStalePaymentOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetStalePaymentOrdersQueryHandler creates a handler for stale payment scans.
// Requires a GORM database connection for query execution.
func NewGetStalePaymentOrdersQueryHandler(db *gorm.DB) GetStalePaymentOrdersQueryHandler {
	return GetStalePaymentOrdersQueryHandler{db: db}
}

// Handle executes the query and returns the numbers of all orders in
// PaymentWaiting last touched before the cutoff.
func (h GetStalePaymentOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStalePaymentOrdersQuery,
) ([]GetStalePaymentOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stale := make([]GetStalePaymentOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT number
		FROM orders
		WHERE status = ?
		  AND updated_at < ?
		ORDER BY number
	`, order.PaymentWaiting, query.Cutoff()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetStalePaymentOrdersQueryResponse
		if err = rows.Scan(&resp.OrderNumber); err != nil {
			return nil, err
		}
		stale = append(stale, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stale, nil
}
