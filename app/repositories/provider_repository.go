package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-catalog/app/models"
	"gorm.io/gorm"
)

// ProviderRepositoryImpl returns providers with their address attached.
type ProviderRepositoryImpl interface {
	Create(ctx context.Context, provider *models.Provider) error
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	GetByTaxID(ctx context.Context, taxID string) (*models.Provider, error)
	GetAll(ctx context.Context) ([]models.Provider, error)
	Update(ctx context.Context, provider *models.Provider) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	WithTx(tx *gorm.DB) ProviderRepositoryImpl
}

type providerRepository struct {
	db        *gorm.DB
	addresses AddressRepository
}

func NewProviderRepository(db *gorm.DB) ProviderRepositoryImpl {
	return &providerRepository{db: db, addresses: NewGormAddressRepository(db)}
}

func (r *providerRepository) WithTx(tx *gorm.DB) ProviderRepositoryImpl {
	return &providerRepository{db: tx, addresses: r.addresses.WithTx(tx)}
}

func (r *providerRepository) Create(ctx context.Context, provider *models.Provider) error {
	return r.db.WithContext(ctx).Create(provider).Error
}

func (r *providerRepository) first(ctx context.Context, query string, args ...interface{}) (*models.Provider, error) {
	var provider models.Provider
	err := r.db.WithContext(ctx).Where(query, args...).First(&provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	address, err := r.addresses.FindByOwner(ctx, models.OwnerProvider, provider.ID)
	if err != nil {
		return nil, err
	}
	provider.Address = address
	return &provider, nil
}

func (r *providerRepository) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *providerRepository) GetByTaxID(ctx context.Context, taxID string) (*models.Provider, error) {
	return r.first(ctx, "tax_id = ?", taxID)
}

func (r *providerRepository) GetAll(ctx context.Context) ([]models.Provider, error) {
	var providers []models.Provider
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&providers).Error; err != nil {
		return nil, err
	}

	ids := make([]string, len(providers))
	for i := range providers {
		ids[i] = providers[i].ID
	}
	byOwner, err := r.addresses.FindByOwners(ctx, models.OwnerProvider, ids)
	if err != nil {
		return nil, err
	}
	for i := range providers {
		providers[i].Address = byOwner[providers[i].ID]
	}
	return providers, nil
}

func (r *providerRepository) Update(ctx context.Context, provider *models.Provider) error {
	return r.db.WithContext(ctx).Save(provider).Error
}

func (r *providerRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Provider{}, "id = ?", id).Error
}

func (r *providerRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Provider{}).Count(&total).Error
	return total, err
}
