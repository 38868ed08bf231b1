package fakers

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/go-faker/faker/v4"
)

func digits(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	return b.String()
}

func ptr(s string) *string { return &s }

// ProviderFaker returns a provider and its address, not yet persisted.
func ProviderFaker() (*models.Provider, *models.Address) {
	d := digits(14)
	taxID := fmt.Sprintf("%s.%s.%s/%s-%s", d[0:2], d[2:5], d[5:8], d[8:12], d[12:14])

	provider := models.NewProvider(models.ProviderAttributes{
		Name:      faker.Name() + " Furniture",
		TaxID:     ptr(taxID),
		Email:     strings.ToLower(faker.Email()),
		Phone:     ptr(digits(10)),
		Cellphone: ptr(digits(11)),
	})

	zip := digits(8)
	address := models.NewAddress(models.OwnerProvider, provider.ID, models.AddressAttributes{
		Zipcode:      zip[:5] + "-" + zip[5:],
		Street:       faker.Word() + " Street",
		Number:       fmt.Sprintf("%d", rand.Intn(2000)+1),
		Neighborhood: faker.Word(),
		State:        faker.Word(),
		City:         faker.Word(),
	})
	return provider, address
}
