// Package resources turns models into the JSON documents the API answers
// with. Relations are rendered only when they were loaded; nothing here
// queries the database.
package resources

import (
	"context"
	"log"
	"time"

	"github.com/Rakhulsr/go-catalog/app/models"
)

// URLSigner resolves a blob key to a time-limited URL.
type URLSigner interface {
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type Transformer struct {
	signer URLSigner
	ttl    time.Duration
}

func NewTransformer(signer URLSigner, ttl time.Duration) *Transformer {
	return &Transformer{signer: signer, ttl: ttl}
}

type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProviderSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Address struct {
	ID           string    `json:"id"`
	Zipcode      string    `json:"zipcode"`
	Street       string    `json:"street"`
	Number       string    `json:"number"`
	Neighborhood string    `json:"neighborhood"`
	State        string    `json:"state"`
	City         string    `json:"city"`
	Complement   *string   `json:"complement"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Provider struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     *string   `json:"tax_id"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Cellphone *string   `json:"cellphone"`
	Logo      *string   `json:"logo"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	Address   *Address  `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Length      *string          `json:"length"`
	Height      *string          `json:"height"`
	Depth       *string          `json:"depth"`
	Weight      *string          `json:"weight"`
	Line        string           `json:"line"`
	Materials   string           `json:"materials"`
	Photo       string           `json:"photo"`
	PhotoURL    *string          `json:"photo_url,omitempty"`
	CategoryID  string           `json:"category_id"`
	ProviderID  string           `json:"provider_id"`
	Category    *CategorySummary `json:"category,omitempty"`
	Provider    *ProviderSummary `json:"provider,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// sign returns nil when there is no key or signing failed.
func (t *Transformer) sign(ctx context.Context, key string) *string {
	if key == "" || t.signer == nil {
		return nil
	}
	url, err := t.signer.SignedURL(ctx, key, t.ttl)
	if err != nil {
		log.Printf("Transformer.sign: failed to sign %s: %v", key, err)
		return nil
	}
	return &url
}

func (t *Transformer) Category(c *models.Category) Category {
	return Category{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func (t *Transformer) Categories(list []models.Category) []Category {
	out := make([]Category, 0, len(list))
	for i := range list {
		out = append(out, t.Category(&list[i]))
	}
	return out
}

func (t *Transformer) Address(a *models.Address) *Address {
	if a == nil {
		return nil
	}
	return &Address{
		ID:           a.ID,
		Zipcode:      a.Zipcode,
		Street:       a.Street,
		Number:       a.Number,
		Neighborhood: a.Neighborhood,
		State:        a.State,
		City:         a.City,
		Complement:   a.Complement,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (t *Transformer) Provider(ctx context.Context, p *models.Provider) Provider {
	return Provider{
		ID:        p.ID,
		Name:      p.Name,
		TaxID:     p.TaxID,
		Email:     p.Email,
		Phone:     p.Phone,
		Cellphone: p.Cellphone,
		Logo:      p.Logo,
		LogoURL:   t.sign(ctx, p.LogoKey()),
		Address:   t.Address(p.Address),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (t *Transformer) Providers(ctx context.Context, list []models.Provider) []Provider {
	out := make([]Provider, 0, len(list))
	for i := range list {
		out = append(out, t.Provider(ctx, &list[i]))
	}
	return out
}

func (t *Transformer) Product(ctx context.Context, p *models.Product) Product {
	res := Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Length:      p.Length,
		Height:      p.Height,
		Depth:       p.Depth,
		Weight:      p.Weight,
		Line:        p.Line,
		Materials:   p.Materials,
		Photo:       p.Photo,
		PhotoURL:    t.sign(ctx, p.Photo),
		CategoryID:  p.CategoryID,
		ProviderID:  p.ProviderID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Category != nil {
		res.Category = &CategorySummary{ID: p.Category.ID, Name: p.Category.Name}
	}
	if p.Provider != nil {
		res.Provider = &ProviderSummary{ID: p.Provider.ID, Name: p.Provider.Name}
	}
	return res
}

func (t *Transformer) Products(ctx context.Context, list []models.Product) []Product {
	out := make([]Product, 0, len(list))
	for i := range list {
		out = append(out, t.Product(ctx, &list[i]))
	}
	return out
}

func (t *Transformer) User(u *models.User) User {
	return User{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}
