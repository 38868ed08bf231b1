package services

import (
	"context"
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

type ProductInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description" validate:"required"`
	Length      string  `json:"length" validate:"omitempty,max=50"`
	Height      string  `json:"height" validate:"omitempty,max=50"`
	Depth       string  `json:"depth" validate:"omitempty,max=50"`
	Weight      string  `json:"weight" validate:"omitempty,max=50"`
	Line        string  `json:"line" validate:"omitempty,max=255"`
	Materials   string  `json:"materials" validate:"omitempty,max=255"`
	CategoryID  string  `json:"category_id" validate:"required"`
	ProviderID  string  `json:"provider_id" validate:"required"`
	Photo       *Upload `json:"-"`
}

func (in ProductInput) attributes() models.ProductAttributes {
	return models.ProductAttributes{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Length:      helpers.NilIfEmpty(in.Length),
		Height:      helpers.NilIfEmpty(in.Height),
		Depth:       helpers.NilIfEmpty(in.Depth),
		Weight:      helpers.NilIfEmpty(in.Weight),
		Line:        strings.TrimSpace(in.Line),
		Materials:   strings.TrimSpace(in.Materials),
		CategoryID:  strings.TrimSpace(in.CategoryID),
		ProviderID:  strings.TrimSpace(in.ProviderID),
	}
}

type ProductService struct {
	db         *gorm.DB
	products   repositories.ProductRepositoryImpl
	categories repositories.CategoryRepositoryImpl
	providers  repositories.ProviderRepositoryImpl
	store      storage.BlobStore
	validator  *validator.Validate
}

func NewProductService(
	db *gorm.DB,
	products repositories.ProductRepositoryImpl,
	categories repositories.CategoryRepositoryImpl,
	providers repositories.ProviderRepositoryImpl,
	store storage.BlobStore,
	v *validator.Validate,
) *ProductService {
	return &ProductService{
		db:         db,
		products:   products,
		categories: categories,
		providers:  providers,
		store:      store,
		validator:  v,
	}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.GetAll(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return product, nil
}

// validate checks the tags, that both references exist and the photo.
// The loaded category and provider are returned so the created product can
// be answered with its relations.
func (s *ProductService) validate(ctx context.Context, in *ProductInput, photoRequired bool) (*inspectedUpload, *models.Category, *models.Provider, error) {
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.ProviderID = strings.TrimSpace(in.ProviderID)
	fields := validationFields(s.validator, in)

	var category *models.Category
	if _, bad := fields["category_id"]; !bad {
		found, err := s.categories.GetByID(ctx, in.CategoryID)
		if err != nil {
			return nil, nil, nil, err
		}
		if found == nil {
			fields["category_id"] = "The selected category id is invalid."
		}
		category = found
	}

	var provider *models.Provider
	if _, bad := fields["provider_id"]; !bad {
		found, err := s.providers.GetByID(ctx, in.ProviderID)
		if err != nil {
			return nil, nil, nil, err
		}
		if found == nil {
			fields["provider_id"] = "The selected provider id is invalid."
		}
		provider = found
	}

	photo := inspectImage("photo", in.Photo, photoRequired, fields)
	if err := failed(fields); err != nil {
		return nil, nil, nil, err
	}
	return photo, category, provider, nil
}

// Create stores the row and uploads the photo inside one transaction. A
// failed upload rolls the row back.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	photo, category, provider, err := s.validate(ctx, &in, true)
	if err != nil {
		return nil, err
	}

	key := storage.NewKey(storage.PrefixProducts, photo.extension)
	product := models.NewProduct(in.attributes(), key)

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.products.WithTx(tx).Create(ctx, product); err != nil {
			return err
		}
		if err := s.store.Put(ctx, key, in.Photo.Data, photo.contentType); err != nil {
			return blobError("put", key, err)
		}
		return nil
	})
	if txErr != nil {
		log.Printf("ProductService.Create: failed to create product %q: %v", in.Name, txErr)
		return nil, txErr
	}

	product.Category = category
	product.Provider = provider
	return product, nil
}

// Update replaces the product fields. A new photo is uploaded first and the
// previous blob is deleted once the row points at the new key.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	photo, _, _, err := s.validate(ctx, &in, false)
	if err != nil {
		return err
	}

	oldKey := product.Photo
	newKey := ""
	if photo != nil {
		newKey = storage.NewKey(storage.PrefixProducts, photo.extension)
		if err := s.store.Put(ctx, newKey, in.Photo.Data, photo.contentType); err != nil {
			return blobError("put", newKey, err)
		}
	}

	product.Apply(in.attributes())
	product.UpdatedAt = time.Now()
	if newKey != "" {
		product.Photo = newKey
	}
	// the preloaded relations may belong to the previous references
	product.Category = nil
	product.Provider = nil

	if err := s.products.Update(ctx, product); err != nil {
		if newKey != "" {
			s.discard(ctx, newKey)
		}
		log.Printf("ProductService.Update: failed to update product %s: %v", id, err)
		return err
	}

	if newKey != "" && oldKey != "" {
		s.discard(ctx, oldKey)
	}
	return nil
}

// Delete removes the photo before the row. A blob failure keeps the row.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if product.Photo != "" {
		if err := s.store.Delete(ctx, product.Photo); err != nil {
			return blobError("delete", product.Photo, err)
		}
	}

	if err := s.products.Delete(ctx, product.ID); err != nil {
		log.Printf("ProductService.Delete: failed to delete product %s: %v", id, err)
		return err
	}
	return nil
}

func (s *ProductService) discard(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		log.Printf("ProductService: orphaned blob %s: %v", key, err)
	}
}
