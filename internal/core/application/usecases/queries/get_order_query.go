package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
	ErrOrderNumberIsRequired = errors.New("order number is required")
)

// GetOrderQuery retrieves a single order with its deliveries by business number.
//
// Example:
//
//	query, err := NewGetOrderQuery("ORD-1001")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", resp.Number, resp.Status)
type GetOrderQuery struct {
	orderNumber string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query addressing an order by its business number.
func NewGetOrderQuery(orderNumber string) (GetOrderQuery, error) {
	if orderNumber == "" {
		return GetOrderQuery{}, ErrOrderNumberIsRequired
	}

	return GetOrderQuery{
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderNumber returns the addressed order's business identifier.
func (q GetOrderQuery) OrderNumber() string {
	return q.orderNumber
}

// GetOrderQueryResponse represents an order read model with its deliveries.
type GetOrderQueryResponse struct {
	Number        string
	Status        order.Status
	TotalAmount   int64
	TotalCurrency string
	Deliveries    []GetOrderQueryDeliveryResponse
}

// GetOrderQueryDeliveryResponse represents one delivery of the order.
type GetOrderQueryDeliveryResponse struct {
	Number         string
	Status         order.DeliveryStatus
	Carrier        string
	TrackingNumber string
}
