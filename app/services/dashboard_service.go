package services

import (
	"context"

	"github.com/Rakhulsr/go-catalog/app/repositories"
)

type Counts struct {
	Products   int64 `json:"products"`
	Providers  int64 `json:"providers"`
	Categories int64 `json:"categories"`
}

type DashboardService struct {
	products   repositories.ProductRepositoryImpl
	providers  repositories.ProviderRepositoryImpl
	categories repositories.CategoryRepositoryImpl
}

func NewDashboardService(products repositories.ProductRepositoryImpl, providers repositories.ProviderRepositoryImpl, categories repositories.CategoryRepositoryImpl) *DashboardService {
	return &DashboardService{products: products, providers: providers, categories: categories}
}

func (s *DashboardService) Counts(ctx context.Context) (*Counts, error) {
	var counts Counts
	var err error

	if counts.Products, err = s.products.Count(ctx); err != nil {
		return nil, err
	}
	if counts.Providers, err = s.providers.Count(ctx); err != nil {
		return nil, err
	}
	if counts.Categories, err = s.categories.Count(ctx); err != nil {
		return nil, err
	}
	return &counts, nil
}
