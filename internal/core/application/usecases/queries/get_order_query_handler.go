package queries

import (
	"context"
	"database/sql"
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves an order read model from the database.
// Bypasses the aggregate and reads the rows directly.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query.
// Returns errs.ObjectNotFoundError when no order carries the number.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	var orderID string

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			total_amount,
			total_currency
		FROM orders
		WHERE number = ?
	`, query.OrderNumber()).Row()

	err := row.Scan(&orderID, &resp.Number, &resp.Status, &resp.TotalAmount, &resp.TotalCurrency)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderNumber", query.OrderNumber())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			number,
			status,
			carrier,
			tracking_number
		FROM deliveries
		WHERE order_id = ?
		ORDER BY number
	`, orderID).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	resp.Deliveries = make([]GetOrderQueryDeliveryResponse, 0)
	for rows.Next() {
		var delivery GetOrderQueryDeliveryResponse
		var status order.DeliveryStatus

		if err = rows.Scan(&delivery.Number, &status, &delivery.Carrier, &delivery.TrackingNumber); err != nil {
			return GetOrderQueryResponse{}, err
		}
		delivery.Status = status
		resp.Deliveries = append(resp.Deliveries, delivery)
	}

	if err = rows.Err(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}
