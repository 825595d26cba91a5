// Package customerrepo provides data transfer objects and mapping functions
// for customer persistence.
package customerrepo

import (
	"time"

	"orderflow/internal/core/domain/model/customer"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerDTO represents the database structure for persisting customer aggregates.
type CustomerDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	FirstName    string
	LastName     string
	Locale       string `gorm:"type:varchar(8)"`
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for customer entities.
func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(aggregate *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:           aggregate.ID().Bytes(),
		Email:        aggregate.Email(),
		FirstName:    aggregate.FirstName(),
		LastName:     aggregate.LastName(),
		Locale:       aggregate.Locale(),
		PasswordHash: aggregate.PasswordHash(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(
		id,
		dto.Email,
		dto.FirstName,
		dto.LastName,
		dto.Locale,
		dto.PasswordHash,
	)
}
