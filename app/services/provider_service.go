package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/Rakhulsr/go-catalog/app/storage"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type AddressInput struct {
	Zipcode      string `json:"zipcode" validate:"required,zipcode"`
	Street       string `json:"street" validate:"required,max=255"`
	Number       string `json:"number" validate:"required,max=20"`
	Neighborhood string `json:"neighborhood" validate:"required,max=100"`
	State        string `json:"state" validate:"required,max=100"`
	City         string `json:"city" validate:"required,max=100"`
	Complement   string `json:"complement" validate:"omitempty,max=255"`
}

func (in AddressInput) attributes() models.AddressAttributes {
	return models.AddressAttributes{
		Zipcode:      strings.TrimSpace(in.Zipcode),
		Street:       strings.TrimSpace(in.Street),
		Number:       strings.TrimSpace(in.Number),
		Neighborhood: strings.TrimSpace(in.Neighborhood),
		State:        strings.TrimSpace(in.State),
		City:         strings.TrimSpace(in.City),
		Complement:   helpers.NilIfEmpty(in.Complement),
	}
}

type ProviderInput struct {
	Name      string       `json:"name" validate:"required,max=255"`
	TaxID     string       `json:"tax_id" validate:"omitempty,taxid"`
	Email     string       `json:"email" validate:"required,email,max=100"`
	Phone     string       `json:"phone" validate:"omitempty,max=20"`
	Cellphone string       `json:"cellphone" validate:"omitempty,max=20"`
	Address   AddressInput `json:"address"`
	Logo      *Upload      `json:"-"`
}

func (in ProviderInput) attributes() models.ProviderAttributes {
	return models.ProviderAttributes{
		Name:      strings.TrimSpace(in.Name),
		TaxID:     helpers.NilIfEmpty(in.TaxID),
		Email:     strings.TrimSpace(in.Email),
		Phone:     helpers.NilIfEmpty(in.Phone),
		Cellphone: helpers.NilIfEmpty(in.Cellphone),
	}
}

type ProviderService struct {
	db        *gorm.DB
	providers repositories.ProviderRepositoryImpl
	addresses repositories.AddressRepository
	products  repositories.ProductRepositoryImpl
	store     storage.BlobStore
	validator *validator.Validate
}

func NewProviderService(
	db *gorm.DB,
	providers repositories.ProviderRepositoryImpl,
	addresses repositories.AddressRepository,
	products repositories.ProductRepositoryImpl,
	store storage.BlobStore,
	v *validator.Validate,
) *ProviderService {
	return &ProviderService{
		db:        db,
		providers: providers,
		addresses: addresses,
		products:  products,
		store:     store,
		validator: v,
	}
}

func (s *ProviderService) List(ctx context.Context) ([]models.Provider, error) {
	return s.providers.GetAll(ctx)
}

func (s *ProviderService) Get(ctx context.Context, id string) (*models.Provider, error) {
	provider, err := s.providers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("provider %s: %w", id, ErrNotFound)
	}
	return provider, nil
}

func (s *ProviderService) Products(ctx context.Context, id string) ([]models.Product, error) {
	provider, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.products.GetByProviderID(ctx, provider.ID)
}

func (s *ProviderService) validate(ctx context.Context, in *ProviderInput, exceptID string) (*inspectedUpload, error) {
	in.TaxID = strings.TrimSpace(in.TaxID)
	fields := validationFields(s.validator, in)

	if _, bad := fields["tax_id"]; !bad && in.TaxID != "" {
		existing, err := s.providers.GetByTaxID(ctx, in.TaxID)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != exceptID {
			fields["tax_id"] = "The tax id has already been taken."
		}
	}

	logo := inspectImage("logo", in.Logo, false, fields)
	return logo, failed(fields)
}

// Create writes the provider, its address and its logo as one unit.
func (s *ProviderService) Create(ctx context.Context, in ProviderInput) (*models.Provider, error) {
	logo, err := s.validate(ctx, &in, "")
	if err != nil {
		return nil, err
	}

	provider := models.NewProvider(in.attributes())
	address := models.NewAddress(models.OwnerProvider, provider.ID, in.Address.attributes())
	if logo != nil {
		key := storage.NewKey(storage.PrefixProviders, logo.extension)
		provider.Logo = &key
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.providers.WithTx(tx).Create(ctx, provider); err != nil {
			return err
		}
		if err := s.addresses.WithTx(tx).CreateAddress(ctx, address); err != nil {
			return err
		}
		if logo != nil {
			if err := s.store.Put(ctx, *provider.Logo, in.Logo.Data, logo.contentType); err != nil {
				return blobError("put", *provider.Logo, err)
			}
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("provider tax id %q: %w", in.TaxID, ErrConflict)
		}
		log.Printf("ProviderService.Create: failed to create provider %q: %v", in.Name, txErr)
		return nil, txErr
	}

	provider.Address = address
	return provider, nil
}

// Update replaces the provider fields and address. A new logo is uploaded
// before anything is written; the old one is removed only after the commit.
func (s *ProviderService) Update(ctx context.Context, id string, in ProviderInput) error {
	provider, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	logo, err := s.validate(ctx, &in, provider.ID)
	if err != nil {
		return err
	}

	oldKey := provider.LogoKey()
	newKey := ""
	if logo != nil {
		newKey = storage.NewKey(storage.PrefixProviders, logo.extension)
		if err := s.store.Put(ctx, newKey, in.Logo.Data, logo.contentType); err != nil {
			return blobError("put", newKey, err)
		}
	}

	provider.Apply(in.attributes())
	provider.UpdatedAt = time.Now()
	if newKey != "" {
		provider.Logo = &newKey
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.providers.WithTx(tx).Update(ctx, provider); err != nil {
			return err
		}

		addresses := s.addresses.WithTx(tx)
		if provider.Address == nil {
			return addresses.CreateAddress(ctx, models.NewAddress(models.OwnerProvider, provider.ID, in.Address.attributes()))
		}
		provider.Address.Apply(in.Address.attributes())
		provider.Address.UpdatedAt = time.Now()
		return addresses.UpdateAddress(ctx, provider.Address)
	})
	if txErr != nil {
		if newKey != "" {
			s.discard(ctx, newKey)
		}
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("provider tax id %q: %w", in.TaxID, ErrConflict)
		}
		log.Printf("ProviderService.Update: failed to update provider %s: %v", id, txErr)
		return txErr
	}

	if newKey != "" && oldKey != "" {
		s.discard(ctx, oldKey)
	}
	return nil
}

// Delete removes the logo first, then the address rows and the provider.
func (s *ProviderService) Delete(ctx context.Context, id string) error {
	provider, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	inUse, err := s.products.CountByProviderID(ctx, provider.ID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return fmt.Errorf("provider %s has %d products: %w", id, inUse, ErrConflict)
	}

	if key := provider.LogoKey(); key != "" {
		if err := s.store.Delete(ctx, key); err != nil {
			return blobError("delete", key, err)
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.addresses.WithTx(tx).DeleteByOwner(ctx, models.OwnerProvider, provider.ID); err != nil {
			return err
		}
		return s.providers.WithTx(tx).Delete(ctx, provider.ID)
	})
}

// discard deletes a blob whose reference is gone. Failures leave an orphan
// behind and are only logged.
func (s *ProviderService) discard(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		log.Printf("ProviderService: orphaned blob %s: %v", key, err)
	}
}
