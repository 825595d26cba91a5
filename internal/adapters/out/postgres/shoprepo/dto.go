// Package shoprepo provides data transfer objects and mapping functions for
// shop persistence. Shop attributes are stored as child rows keyed by code.
package shoprepo

import (
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/shop"

	"github.com/google/uuid"
)

// ShopDTO represents the database structure for persisting shop aggregates.
type ShopDTO struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Code       string             `gorm:"uniqueIndex;not null"`
	Name       string             `gorm:"not null"`
	DefaultURL string
	Attributes []ShopAttributeDTO `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for shop entities.
func (ShopDTO) TableName() string {
	return "shops"
}

// ShopAttributeDTO represents one string-keyed attribute of a shop.
type ShopAttributeDTO struct {
	ShopID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code   string    `gorm:"primaryKey"`
	Value  string
}

// TableName specifies the database table name for shop attributes.
func (ShopAttributeDTO) TableName() string {
	return "shop_attributes"
}

func fromDomain(aggregate *shop.Shop) ShopDTO {
	attributes := aggregate.Attributes()
	attributeDTOs := make([]ShopAttributeDTO, 0, len(attributes))
	for code, value := range attributes {
		attributeDTOs = append(attributeDTOs, ShopAttributeDTO{
			ShopID: aggregate.ID().Bytes(),
			Code:   code,
			Value:  value,
		})
	}

	return ShopDTO{
		ID:         aggregate.ID().Bytes(),
		Code:       aggregate.Code(),
		Name:       aggregate.Name(),
		DefaultURL: aggregate.DefaultURL(),
		Attributes: attributeDTOs,
	}
}

func toDomain(dto ShopDTO) (*shop.Shop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	attributes := make(map[string]string, len(dto.Attributes))
	for _, attribute := range dto.Attributes {
		attributes[attribute.Code] = attribute.Value
	}

	return shop.RestoreShop(id, dto.Code, dto.Name, dto.DefaultURL, attributes)
}
