package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CategoryService struct {
	categories repositories.CategoryRepositoryImpl
	products   repositories.ProductRepositoryImpl
	validator  *validator.Validate
}

func NewCategoryService(categories repositories.CategoryRepositoryImpl, products repositories.ProductRepositoryImpl, v *validator.Validate) *CategoryService {
	return &CategoryService{categories: categories, products: products, validator: v}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.GetAll(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return category, nil
}

// checkName validates in and reports a taken name unless it belongs to
// exceptID.
func (s *CategoryService) checkName(ctx context.Context, in *CategoryInput, exceptID string) error {
	in.Name = strings.TrimSpace(in.Name)
	fields := validationFields(s.validator, in)

	if _, bad := fields["name"]; !bad {
		existing, err := s.categories.GetByName(ctx, in.Name)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != exceptID {
			fields["name"] = "The name has already been taken."
		}
	}
	return failed(fields)
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if err := s.checkName(ctx, &in, ""); err != nil {
		return nil, err
	}

	category := models.NewCategory(in.Name)
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("category %q: %w", in.Name, ErrConflict)
		}
		log.Printf("CategoryService.Create: failed to create category %q: %v", in.Name, err)
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput) error {
	category, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkName(ctx, &in, category.ID); err != nil {
		return err
	}

	category.Name = in.Name
	category.UpdatedAt = time.Now()
	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("category %q: %w", in.Name, ErrConflict)
		}
		log.Printf("CategoryService.Update: failed to update category %s: %v", id, err)
		return err
	}
	return nil
}

// Delete refuses to remove a category that products still point at.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	category, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	inUse, err := s.products.CountByCategoryID(ctx, category.ID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return fmt.Errorf("category %s has %d products: %w", id, inUse, ErrConflict)
	}

	if err := s.categories.Delete(ctx, category.ID); err != nil {
		log.Printf("CategoryService.Delete: failed to delete category %s: %v", id, err)
		return err
	}
	return nil
}

func (s *CategoryService) Products(ctx context.Context, id string) ([]models.Product, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.products.GetByCategoryID(ctx, category.ID)
}
