package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/shop"
)

// ShopRepository defines the persistence contract for shop aggregates.
type ShopRepository interface {
	// Add persists a new shop aggregate to storage.
	Add(ctx context.Context, aggregate *shop.Shop) error

	// Update persists changes to an existing shop aggregate,
	// including its attributes.
	Update(ctx context.Context, aggregate *shop.Shop) error

	// Get retrieves a shop aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error)

	// GetByCode retrieves a shop aggregate by its business code.
	GetByCode(ctx context.Context, code string) (*shop.Shop, error)
}
