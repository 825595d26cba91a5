// Package ports defines repository interfaces for the order domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// together with their deliveries.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate,
	// including its deliveries.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with all deliveries.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its business number.
	// Returns the complete order with all deliveries.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetByNumberForUpdate retrieves an order aggregate by its business number
	// and locks the order row for the duration of the current transaction.
	// Concurrent transitions against the same order serialize on this lock.
	GetByNumberForUpdate(ctx context.Context, number string) (*order.Order, error)
}
