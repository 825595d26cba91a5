package queries

import (
	"errors"
	"time"

	"orderflow/internal/pkg/guard"
)

var (
	ErrGetStalePaymentOrdersQueryIsNotConstructed = errors.New(
		"GetStalePaymentOrdersQuery must be created via NewGetStalePaymentOrdersQuery constructor",
	)
	ErrCutoffIsRequired = errors.New("cutoff time is required")
)

// GetStalePaymentOrdersQuery retrieves orders stuck in PaymentWaiting.
// The payment timeout job feeds the numbers back into the transition engine
// as payment.failed events.
type GetStalePaymentOrdersQuery struct {
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewGetStalePaymentOrdersQuery creates a query for orders that entered
// PaymentWaiting before the cutoff and were not updated since.
func NewGetStalePaymentOrdersQuery(cutoff time.Time) (GetStalePaymentOrdersQuery, error) {
	if cutoff.IsZero() {
		return GetStalePaymentOrdersQuery{}, ErrCutoffIsRequired
	}

	return GetStalePaymentOrdersQuery{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStalePaymentOrdersQueryIsNotConstructed if validation fails.
func (q GetStalePaymentOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStalePaymentOrdersQueryIsNotConstructed)
}

// Cutoff returns the staleness threshold.
func (q GetStalePaymentOrdersQuery) Cutoff() time.Time {
	return q.cutoff
}

// GetStalePaymentOrdersQueryResponse identifies one stale order.
type GetStalePaymentOrdersQueryResponse struct {
	OrderNumber string
}
