package models

import (
	"time"

	"github.com/google/uuid"
)

// OwnerType names the kind of entity an address belongs to.
type OwnerType string

const (
	OwnerProvider OwnerType = "provider"
)

type Address struct {
	ID           string    `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OwnerType    OwnerType `gorm:"type:varchar(50);not null;index:idx_addresses_owner"`
	OwnerID      string    `gorm:"size:36;not null;index:idx_addresses_owner"`
	Zipcode      string    `gorm:"type:varchar(10);not null"`
	Street       string    `gorm:"size:255;not null"`
	Number       string    `gorm:"size:20;not null"`
	Neighborhood string    `gorm:"size:100;not null"`
	State        string    `gorm:"size:100;not null"`
	City         string    `gorm:"size:100;not null"`
	Complement   *string   `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type AddressAttributes struct {
	Zipcode      string
	Street       string
	Number       string
	Neighborhood string
	State        string
	City         string
	Complement   *string
}

func NewAddress(ownerType OwnerType, ownerID string, attrs AddressAttributes) *Address {
	now := time.Now()
	a := &Address{
		ID:        uuid.New().String(),
		OwnerType: ownerType,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	a.Apply(attrs)
	return a
}

func (a *Address) Apply(attrs AddressAttributes) {
	a.Zipcode = attrs.Zipcode
	a.Street = attrs.Street
	a.Number = attrs.Number
	a.Neighborhood = attrs.Neighborhood
	a.State = attrs.State
	a.City = attrs.City
	a.Complement = attrs.Complement
}
