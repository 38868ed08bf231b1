package fakers

import (
	"github.com/Rakhulsr/go-catalog/app/models"
)

var categoryNames = []string{"Chairs", "Tables", "Sofas", "Lighting", "Storage", "Outdoor"}

func CategoryFakers() []*models.Category {
	categories := make([]*models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		categories = append(categories, models.NewCategory(name))
	}
	return categories
}
