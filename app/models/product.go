package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          string    `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text"`
	Length      *string   `gorm:"size:50"`
	Height      *string   `gorm:"size:50"`
	Depth       *string   `gorm:"size:50"`
	Weight      *string   `gorm:"size:50"`
	Line        string    `gorm:"size:255"`
	Materials   string    `gorm:"size:255"`
	Photo       string    `gorm:"size:255"`
	CategoryID  string    `gorm:"size:36;not null;index"`
	Category    *Category `gorm:"foreignKey:CategoryID"`
	ProviderID  string    `gorm:"size:36;not null;index"`
	Provider    *Provider `gorm:"foreignKey:ProviderID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductAttributes holds everything a client may set on a product except the photo.
type ProductAttributes struct {
	Name        string
	Description string
	Length      *string
	Height      *string
	Depth       *string
	Weight      *string
	Line        string
	Materials   string
	CategoryID  string
	ProviderID  string
}

func NewProduct(attrs ProductAttributes, photoKey string) *Product {
	now := time.Now()
	p := &Product{
		ID:        uuid.New().String(),
		Photo:     photoKey,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.Apply(attrs)
	return p
}

func (p *Product) Apply(attrs ProductAttributes) {
	p.Name = attrs.Name
	p.Description = attrs.Description
	p.Length = attrs.Length
	p.Height = attrs.Height
	p.Depth = attrs.Depth
	p.Weight = attrs.Weight
	p.Line = attrs.Line
	p.Materials = attrs.Materials
	p.CategoryID = attrs.CategoryID
	p.ProviderID = attrs.ProviderID
}
