package fakers

import (
	"fmt"
	"math/rand"

	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/go-faker/faker/v4"
)

var materials = []string{"Oak", "Walnut", "Steel", "Rattan", "Linen", "Leather"}

func dimension(unit string, max int) *string {
	return ptr(fmt.Sprintf("%d %s", rand.Intn(max)+1, unit))
}

func ProductFaker(category *models.Category, provider *models.Provider, photoKey string) *models.Product {
	return models.NewProduct(models.ProductAttributes{
		Name:        faker.Word() + " " + category.Name,
		Description: faker.Paragraph(),
		Length:      dimension("cm", 200),
		Height:      dimension("cm", 120),
		Depth:       dimension("cm", 100),
		Weight:      dimension("kg", 60),
		Line:        faker.Word(),
		Materials:   materials[rand.Intn(len(materials))],
		CategoryID:  category.ID,
		ProviderID:  provider.ID,
	}, photoKey)
}
