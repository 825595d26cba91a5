// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by business number and status.
type OrderDTO struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Number        string        `gorm:"uniqueIndex;not null"`
	CustomerID    uuid.UUID     `gorm:"type:uuid;index"`
	ShopID        uuid.UUID     `gorm:"type:uuid;index"`
	TotalAmount   int64         `gorm:"not null"`
	TotalCurrency string        `gorm:"type:varchar(3);not null"`
	Status        int           `gorm:"index"`
	Deliveries    []DeliveryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// DeliveryDTO represents one delivery row of an order.
type DeliveryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index;not null"`
	Number         string    `gorm:"index;not null"`
	Status         int
	Carrier        string
	TrackingNumber string
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts an order domain aggregate to its database representation,
// including delivery child rows.
func fromDomain(aggregate *order.Order) OrderDTO {
	deliveries := make([]DeliveryDTO, 0, len(aggregate.Deliveries()))
	for _, delivery := range aggregate.Deliveries() {
		deliveries = append(deliveries, DeliveryDTO{
			ID:             delivery.ID().Bytes(),
			OrderID:        aggregate.ID().Bytes(),
			Number:         delivery.Number(),
			Status:         int(delivery.Status()),
			Carrier:        delivery.Carrier(),
			TrackingNumber: delivery.TrackingNumber(),
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		Number:        aggregate.Number(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		ShopID:        aggregate.ShopID().Bytes(),
		TotalAmount:   aggregate.Total().Amount(),
		TotalCurrency: aggregate.Total().Currency(),
		Status:        int(aggregate.Status()),
		Deliveries:    deliveries,
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including deliveries using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.TotalAmount, dto.TotalCurrency)
	if err != nil {
		return nil, err
	}

	deliveries := make([]*order.Delivery, 0, len(dto.Deliveries))
	for _, deliveryDTO := range dto.Deliveries {
		deliveryID, idErr := kernel.UUIDFromBytes(deliveryDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}

		delivery, restoreErr := order.RestoreDelivery(
			deliveryID,
			deliveryDTO.Number,
			order.DeliveryStatus(deliveryDTO.Status),
			deliveryDTO.Carrier,
			deliveryDTO.TrackingNumber,
		)
		if restoreErr != nil {
			return nil, restoreErr
		}
		deliveries = append(deliveries, delivery)
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		customerID,
		shopID,
		total,
		order.Status(dto.Status),
		deliveries,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
