package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-catalog/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepositoryImpl interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByCategoryID(ctx context.Context, categoryID string) ([]models.Product, error)
	GetByProviderID(ctx context.Context, providerID string) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByCategoryID(ctx context.Context, categoryID string) (int64, error)
	CountByProviderID(ctx context.Context, providerID string) (int64, error)
	WithTx(tx *gorm.DB) ProductRepositoryImpl
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) WithTx(tx *gorm.DB) ProductRepositoryImpl {
	return &productRepository{tx}
}

// listing order: newest first, id as tie breaker so pages are stable.
func (p *productRepository) listQuery(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx).
		Preload("Category").
		Preload("Provider").
		Order("created_at DESC, id ASC")
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Category").
		Preload("Provider").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := p.listQuery(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) GetByCategoryID(ctx context.Context, categoryID string) ([]models.Product, error) {
	var products []models.Product
	err := p.listQuery(ctx).
		Where("category_id = ?", categoryID).
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetByProviderID(ctx context.Context, providerID string) ([]models.Product, error) {
	var products []models.Product
	err := p.listQuery(ctx).
		Where("provider_id = ?", providerID).
		Find(&products).Error
	return products, err
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func (p *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error
	return total, err
}

func (p *productRepository) CountByCategoryID(ctx context.Context, categoryID string) (int64, error) {
	var total int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&total).Error
	return total, err
}

func (p *productRepository) CountByProviderID(ctx context.Context, providerID string) (int64, error) {
	var total int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Where("provider_id = ?", providerID).Count(&total).Error
	return total, err
}
