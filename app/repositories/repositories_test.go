package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Rakhulsr/go-catalog/app/db/testdb"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func seedCatalog(t *testing.T, db *gorm.DB) (*models.Category, *models.Category, *models.Provider) {
	t.Helper()
	ctx := context.Background()

	chairs := models.NewCategory("Chairs")
	tables := models.NewCategory("Tables")
	require.NoError(t, NewCategoryRepository(db).Create(ctx, chairs))
	require.NoError(t, NewCategoryRepository(db).Create(ctx, tables))

	provider := models.NewProvider(models.ProviderAttributes{Name: "Acme", Email: "acme@example.com", TaxID: strPtr("12345678000190")})
	require.NoError(t, NewProviderRepository(db).Create(ctx, provider))

	return chairs, tables, provider
}

func TestCategoryRepository(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := NewCategoryRepository(db)

	chairs, tables, _ := seedCatalog(t, db)

	found, err := repo.GetByName(ctx, "Chairs")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, chairs.ID, found.ID)

	missing, err := repo.GetByID(ctx, "does-not-exist")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Chairs", all[0].Name)
	assert.Equal(t, "Tables", all[1].Name)

	dup := models.NewCategory("Chairs")
	assert.ErrorIs(t, repo.Create(ctx, dup), gorm.ErrDuplicatedKey)

	tables.Name = "Desks"
	require.NoError(t, repo.Update(ctx, tables))
	renamed, err := repo.GetByID(ctx, tables.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desks", renamed.Name)

	require.NoError(t, repo.Delete(ctx, chairs.ID))
	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestProductRepositoryFilters(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := NewProductRepository(db)

	chairs, tables, provider := seedCatalog(t, db)
	other := models.NewProvider(models.ProviderAttributes{Name: "Other", Email: "other@example.com"})
	require.NoError(t, NewProviderRepository(db).Create(ctx, other))

	base := time.Now().Add(-time.Hour)
	mk := func(name string, category *models.Category, p *models.Provider, offset time.Duration) *models.Product {
		product := models.NewProduct(models.ProductAttributes{
			Name:       name,
			CategoryID: category.ID,
			ProviderID: p.ID,
			Length:     strPtr("40 cm"),
		}, "products/"+name+".png")
		product.CreatedAt = base.Add(offset)
		require.NoError(t, repo.Create(ctx, product))
		return product
	}
	stool := mk("stool", chairs, provider, 0)
	armchair := mk("armchair", chairs, other, time.Minute)
	desk := mk("desk", tables, provider, 2*time.Minute)

	byCategory, err := repo.GetByCategoryID(ctx, chairs.ID)
	require.NoError(t, err)
	require.Len(t, byCategory, 2)
	assert.Equal(t, armchair.ID, byCategory[0].ID)
	assert.Equal(t, stool.ID, byCategory[1].ID)
	require.NotNil(t, byCategory[0].Category)
	assert.Equal(t, "Chairs", byCategory[0].Category.Name)

	byProvider, err := repo.GetByProviderID(ctx, provider.ID)
	require.NoError(t, err)
	require.Len(t, byProvider, 2)
	assert.Equal(t, desk.ID, byProvider[0].ID)
	assert.Equal(t, stool.ID, byProvider[1].ID)
	require.NotNil(t, byProvider[0].Provider)
	assert.Equal(t, "Acme", byProvider[0].Provider.Name)

	count, err := repo.CountByCategoryID(ctx, tables.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	count, err = repo.CountByProviderID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetByID(ctx, stool.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "40 cm", *got.Length)
	assert.Nil(t, got.Weight)

	got.Name = "tall stool"
	require.NoError(t, repo.Update(ctx, got))
	require.NoError(t, repo.Delete(ctx, desk.ID))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "tall stool", all[1].Name)

	// the update must not have touched the preloaded category
	cat, err := NewCategoryRepository(db).GetByID(ctx, chairs.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chairs", cat.Name)
}

func TestProviderRepositoryAttachesAddress(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	providers := NewProviderRepository(db)
	addresses := NewGormAddressRepository(db)

	_, _, acme := seedCatalog(t, db)
	bare := models.NewProvider(models.ProviderAttributes{Name: "Bare", Email: "bare@example.com"})
	require.NoError(t, providers.Create(ctx, bare))

	address := models.NewAddress(models.OwnerProvider, acme.ID, models.AddressAttributes{
		Zipcode: "01310-100", Street: "Av. Paulista", Number: "1000",
		Neighborhood: "Bela Vista", State: "SP", City: "São Paulo",
	})
	require.NoError(t, addresses.CreateAddress(ctx, address))

	got, err := providers.GetByID(ctx, acme.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Address)
	assert.Equal(t, "Av. Paulista", got.Address.Street)

	byTax, err := providers.GetByTaxID(ctx, "12345678000190")
	require.NoError(t, err)
	require.NotNil(t, byTax)
	assert.Equal(t, acme.ID, byTax.ID)

	all, err := providers.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Acme", all[0].Name)
	assert.NotNil(t, all[0].Address)
	assert.Nil(t, all[1].Address)

	require.NoError(t, addresses.DeleteByOwner(ctx, models.OwnerProvider, acme.ID))
	n, err := addresses.CountByOwner(ctx, models.OwnerProvider, acme.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAddressOwnerTypeIsPartOfTheLookup(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	addresses := NewGormAddressRepository(db)

	attrs := models.AddressAttributes{Zipcode: "01310100", Street: "s", Number: "1", Neighborhood: "n", State: "SP", City: "c"}
	require.NoError(t, addresses.CreateAddress(ctx, models.NewAddress(models.OwnerProvider, "owner-1", attrs)))
	require.NoError(t, addresses.CreateAddress(ctx, models.NewAddress(models.OwnerType("warehouse"), "owner-1", attrs)))

	n, err := addresses.CountByOwner(ctx, models.OwnerProvider, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	byOwner, err := addresses.FindByOwners(ctx, models.OwnerProvider, []string{"owner-1", "owner-2"})
	require.NoError(t, err)
	assert.Len(t, byOwner, 1)
	assert.Equal(t, models.OwnerProvider, byOwner["owner-1"].OwnerType)
}

func TestTokenRepository(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	tokens := NewTokenRepository(db)

	user := models.NewUser("Ana", "ana@example.com", "hash")
	require.NoError(t, users.Create(ctx, user))

	byEmail, err := users.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	for _, selector := range []string{"sel-1", "sel-2"} {
		tk := models.NewPersonalAccessToken(user.ID, "login", selector, "hash", time.Now().Add(time.Hour))
		require.NoError(t, tokens.Create(ctx, tk))
	}

	tk, err := tokens.FindBySelector(ctx, "sel-1")
	require.NoError(t, err)
	require.NotNil(t, tk)
	assert.Nil(t, tk.LastUsedAt)

	require.NoError(t, tokens.Touch(ctx, tk.ID, time.Now()))
	tk, err = tokens.FindBySelector(ctx, "sel-1")
	require.NoError(t, err)
	assert.NotNil(t, tk.LastUsedAt)

	require.NoError(t, tokens.DeleteByUserID(ctx, user.ID))
	n, err := tokens.CountByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
