package models

import (
	"time"

	"github.com/google/uuid"
)

type Provider struct {
	ID        string  `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name      string  `gorm:"size:255;not null"`
	TaxID     *string `gorm:"size:20;uniqueIndex"`
	Email     string  `gorm:"size:100;not null"`
	Phone     *string `gorm:"size:20"`
	Cellphone *string `gorm:"size:20"`
	Logo      *string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Address is resolved by the address repository through the owner reference,
	// never by gorm.
	Address *Address `gorm:"-"`
}

type ProviderAttributes struct {
	Name      string
	TaxID     *string
	Email     string
	Phone     *string
	Cellphone *string
}

func NewProvider(attrs ProviderAttributes) *Provider {
	now := time.Now()
	p := &Provider{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.Apply(attrs)
	return p
}

func (p *Provider) Apply(attrs ProviderAttributes) {
	p.Name = attrs.Name
	p.TaxID = attrs.TaxID
	p.Email = attrs.Email
	p.Phone = attrs.Phone
	p.Cellphone = attrs.Cellphone
}

// LogoKey returns the object key of the logo, or "" when none was uploaded.
func (p *Provider) LogoKey() string {
	if p.Logo == nil {
		return ""
	}
	return *p.Logo
}
