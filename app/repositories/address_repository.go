package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Rakhulsr/go-catalog/app/models"
	"gorm.io/gorm"
)

// AddressRepository resolves addresses through their (owner_type, owner_id)
// reference. Callers always name the owner type explicitly.
type AddressRepository interface {
	CreateAddress(ctx context.Context, address *models.Address) error
	UpdateAddress(ctx context.Context, address *models.Address) error
	FindByOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) (*models.Address, error)
	FindByOwners(ctx context.Context, ownerType models.OwnerType, ownerIDs []string) (map[string]*models.Address, error)
	CountByOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) (int64, error)
	DeleteByOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) error
	WithTx(tx *gorm.DB) AddressRepository
}

type GormAddressRepository struct {
	db *gorm.DB
}

func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

func (r *GormAddressRepository) WithTx(tx *gorm.DB) AddressRepository {
	return &GormAddressRepository{db: tx}
}

func (r *GormAddressRepository) CreateAddress(ctx context.Context, address *models.Address) error {
	if err := r.db.WithContext(ctx).Create(address).Error; err != nil {
		log.Printf("GormAddressRepository: Failed to create address for %s %s: %v", address.OwnerType, address.OwnerID, err)
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

func (r *GormAddressRepository) UpdateAddress(ctx context.Context, address *models.Address) error {
	if err := r.db.WithContext(ctx).Save(address).Error; err != nil {
		log.Printf("GormAddressRepository: Failed to update address %s: %v", address.ID, err)
		return fmt.Errorf("failed to update address: %w", err)
	}
	return nil
}

// FindByOwner returns the oldest address of the owner, or nil.
func (r *GormAddressRepository) FindByOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) (*models.Address, error) {
	var address models.Address
	err := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("created_at ASC, id ASC").
		First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("GormAddressRepository: Failed to find address for %s %s: %v", ownerType, ownerID, err)
		return nil, fmt.Errorf("failed to find address by owner: %w", err)
	}
	return &address, nil
}

func (r *GormAddressRepository) FindByOwners(ctx context.Context, ownerType models.OwnerType, ownerIDs []string) (map[string]*models.Address, error) {
	result := make(map[string]*models.Address, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return result, nil
	}

	var addresses []models.Address
	err := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id IN ?", ownerType, ownerIDs).
		Order("created_at ASC, id ASC").
		Find(&addresses).Error
	if err != nil {
		log.Printf("GormAddressRepository: Failed to find addresses for %d %s owners: %v", len(ownerIDs), ownerType, err)
		return nil, fmt.Errorf("failed to find addresses by owners: %w", err)
	}

	for i := range addresses {
		a := &addresses[i]
		if _, seen := result[a.OwnerID]; !seen {
			result[a.OwnerID] = a
		}
	}
	return result, nil
}

func (r *GormAddressRepository) CountByOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Address{}).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Count(&total).Error
	return total, err
}

func (r *GormAddressRepository) DeleteByOwner(ctx context.Context, ownerType models.OwnerType, ownerID string) error {
	err := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Delete(&models.Address{}).Error
	if err != nil {
		log.Printf("GormAddressRepository: Failed to delete addresses for %s %s: %v", ownerType, ownerID, err)
		return fmt.Errorf("failed to delete addresses: %w", err)
	}
	return nil
}
