package seeders

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/Rakhulsr/go-catalog/app/db/fakers"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/storage"
	"gorm.io/gorm"
)

// placeholder is a 1x1 transparent PNG used as every seeded photo.
var placeholder = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

type Options struct {
	Providers int
	Products  int
}

// DBSeed inserts the fixed categories (once), then random providers and
// products. Each product photo is uploaded to store.
func DBSeed(ctx context.Context, db *gorm.DB, store storage.BlobStore, opts Options) error {
	var categories []models.Category
	for _, c := range fakers.CategoryFakers() {
		// Look up into a zero value so the fresh id stays out of the WHERE clause.
		var category models.Category
		err := db.WithContext(ctx).
			Where(models.Category{Name: c.Name}).
			Attrs(*c).
			FirstOrCreate(&category).Error
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
		}
		categories = append(categories, category)
	}

	providers := make([]*models.Provider, 0, opts.Providers)
	for i := 0; i < opts.Providers; i++ {
		provider, address := fakers.ProviderFaker()
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(provider).Error; err != nil {
				return err
			}
			return tx.Create(address).Error
		})
		if err != nil {
			return fmt.Errorf("failed to seed provider: %w", err)
		}
		providers = append(providers, provider)
	}
	if len(providers) == 0 {
		log.Printf("DBSeed: %d categories, no providers so no products", len(categories))
		return nil
	}

	for i := 0; i < opts.Products; i++ {
		key := storage.NewKey(storage.PrefixProducts, ".png")
		if err := store.Put(ctx, key, placeholder, "image/png"); err != nil {
			return fmt.Errorf("failed to upload seed photo: %w", err)
		}
		category := categories[rand.Intn(len(categories))]
		provider := providers[rand.Intn(len(providers))]
		product := fakers.ProductFaker(&category, provider, key)
		if err := db.WithContext(ctx).Omit("Category", "Provider").Create(product).Error; err != nil {
			return fmt.Errorf("failed to seed product: %w", err)
		}
	}

	log.Printf("✅ Seeded %d categories, %d providers, %d products", len(categories), len(providers), opts.Products)
	return nil
}
